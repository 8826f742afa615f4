/*
Package operation applies a change set to a project tree.

	+-------------+
	|  Discovery  |
	| (walk once) |
	+------+------+
	       |
	+------+------+
	|  Rewriters  |
	| (per kind)  |
	+------+------+
	       |
	+------+------+
	|    Tree     |
	| (overwrite) |
	+-------------+

🎯 Purpose:
- Walks the tree once and splits files into templates and sources
- Runs each change category over its file set
- Writes a file back only when its content changed

🔄 Flow:
1. Discover templates (*component.html) and sources (*.ts)
2. For selectors, outputs, classes and imports, in that order:
  - read each file of the category's kind
  - apply every change of the category, in list order
  - overwrite the file if the content differs
3. Return a Report with the state of every file

⚡ Ordering:
Categories never interleave. A file rewritten by the selector pass is read
again, with its new content, by the output pass. Within one category files are
independent and may be processed concurrently (Options.Jobs).

🔍 Example:

	op, err := operation.New(operation.Options{
		Tree:    tree.NewOs("."),
		Changes: cs,
	})
	if err != nil {
		return err
	}
	report, err := op.ApplyChanges(ctx)
*/
package operation

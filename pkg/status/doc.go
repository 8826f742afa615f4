/*
Package status tracks what a migration run did to each file.

	            +-------------+
	            |   Tracker   |
	            |  (per file) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Lines  |
	|  (state)  |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Records the state of every discovered file
- Keeps states moving forward only
- Formats per-file lines for the console

🔄 States:

	unmodified -> candidate -> rewritten -> committed

A file is a candidate once any change passed its substring pre-check, rewritten
once its content actually changed and committed once the new content was
written back. A file that never becomes a candidate is never touched.

🔍 Example:

	tracker := status.NewTracker()
	tracker.Track(ctx, "src/app/app.component.html")
	tracker.Observe(ctx, "src/app/app.component.html", changes.Selectors, res.Candidate, res.WasModified, res.ReplacementCount)
	tracker.Commit(ctx, "src/app/app.component.html")

	for _, info := range tracker.Changed() {
		fmt.Println(status.FormatFileOperation(info))
	}
*/
package status

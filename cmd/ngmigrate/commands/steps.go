package commands

import (
	"context"
	"fmt"

	"github.com/blang/semver"
	"github.com/spf13/afero"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/opts"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/log"
	"github.com/walteh/ngmigrate/pkg/migration"
	"github.com/walteh/ngmigrate/pkg/operation"
	"github.com/walteh/ngmigrate/pkg/state"
	"github.com/walteh/ngmigrate/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// ErrPending is returned by status --check when files would change
var ErrPending = errors.Base("migrations pending")

// runFlags are shared by apply and status
type runFlags struct {
	from    string
	to      string
	changes string
	jobs    int
}

// resolve fills unset flags from the config file
func (f runFlags) resolve(o *opts.RootOpts, jobsSet bool) runFlags {
	if f.from == "" {
		f.from = o.Config.From
	}
	if f.to == "" {
		f.to = o.Config.To
	}
	if f.changes == "" {
		f.changes = o.Config.Changes
	}
	if !jobsSet {
		f.jobs = o.Config.Jobs
	}
	return f
}

// 🪜 selectSteps picks a changes directory or a version range of the built-in
// collection
func selectSteps(ctx context.Context, f runFlags) ([]migration.Step, error) {
	if f.changes != "" {
		c, err := migration.FromDir(f.changes)
		if err != nil {
			return nil, err
		}
		return c.Steps, nil
	}

	if f.from == "" {
		return nil, errors.Errorf("--from is required unless --changes is given or a lock file exists")
	}
	c, err := migration.Default(ctx)
	if err != nil {
		return nil, errors.Errorf("loading migrations: %w", err)
	}
	steps, err := c.Between(f.from, f.to)
	if err != nil {
		return nil, errors.Errorf("selecting migrations: %w", err)
	}
	return steps, nil
}

// runResult is a migration result plus the overwrites the tree performed
type runResult struct {
	*migration.Result
	Writes int
}

// 🚀 run executes steps on the configured root. dryRun keeps every write in
// memory; otherwise the applied steps are recorded in the lock file, whose
// version is the default for --from.
func run(ctx context.Context, o *opts.RootOpts, f runFlags, dryRun bool, base afero.Fs) (*runResult, error) {
	st, err := state.New(base, o.Config.Root)
	if err != nil {
		return nil, err
	}
	if err := st.Load(ctx); err != nil {
		return nil, errors.Errorf("loading state: %w", err)
	}
	if f.from == "" && f.changes == "" {
		f.from = st.Version()
	}

	steps, err := selectSteps(ctx, f)
	if err != nil {
		return nil, err
	}

	var t *tree.FsTree
	if dryRun {
		t = tree.NewDryRun(base, o.Config.Root)
	} else {
		t = tree.New(base, o.Config.Root, tree.WithAtomicWrites())
	}

	if o.Console != nil {
		ctx = log.NewContext(ctx, o.Console)
		o.Console.Header(fmt.Sprintf("%d steps • %s", len(steps), t.Root()))
		if len(steps) == 0 {
			o.Console.Infof("no migrations newer than %s", f.from)
		}
	}

	mres, err := migration.Run(ctx, t, steps, migration.RunOptions{
		Predicates: operation.PredicatesFromConfig(o.Config),
		Jobs:       f.jobs,
		DryRun:     dryRun,
		Root:       t.Root(),
	})
	if err != nil {
		return nil, err
	}
	res := &runResult{Result: mres, Writes: t.WriteCount()}

	if o.Console != nil {
		o.Console.LogNewline()
		if dryRun && res.Writes > 0 {
			o.Console.Warningf("dry run, %d writes kept in memory", res.Writes)
		}
	}

	if dryRun || len(res.Steps) == 0 {
		return res, nil
	}
	for _, sr := range res.Steps {
		st.Record(state.AppliedStep{
			Name:         sr.Step.Name,
			Version:      stepVersion(sr.Step),
			Replacements: total(sr.Report.Replacements),
			Writes:       sr.Report.Writes,
		})
	}
	if err := st.Save(ctx); err != nil {
		return res, errors.Errorf("saving state: %w", err)
	}
	return res, nil
}

// stepVersion is empty for steps loaded with --changes
func stepVersion(s migration.Step) string {
	if s.Version.EQ(semver.Version{}) {
		return ""
	}
	return s.Version.String()
}

func total(counts map[changes.Category]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

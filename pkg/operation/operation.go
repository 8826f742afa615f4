package operation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/log"
	"github.com/walteh/ngmigrate/pkg/status"
	"github.com/walteh/ngmigrate/pkg/text"
	"github.com/walteh/ngmigrate/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work over a project tree
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for UpdateChanges
type Options struct {
	// Tree is the project being migrated
	Tree tree.Tree
	// Changes is the change set to apply
	Changes *changes.ChangeSet
	// Predicates select template and source files
	Predicates Predicates
	// Discovery reuses an earlier walk of Tree; nil walks the tree on first use
	Discovery *Discovery
	// Tracker records file states; nil creates a fresh one
	Tracker *status.Tracker
	// Jobs bounds concurrent files per category; 0 or 1 is sequential
	Jobs int
	// DryRun only changes how results are reported; pair it with a dry-run tree
	DryRun bool
}

// 🏭 New creates a new orchestrator with the given options
func New(opts Options) (*UpdateChanges, error) {
	if opts.Tree == nil {
		return nil, errors.Errorf("tree is required")
	}
	if opts.Changes == nil {
		return nil, errors.Errorf("change set is required")
	}
	if opts.Jobs < 0 {
		return nil, errors.Errorf("jobs must not be negative, got %d", opts.Jobs)
	}
	if opts.Predicates.TemplateSuffix == "" && opts.Predicates.SourceSuffix == "" {
		opts.Predicates = DefaultPredicates()
	}
	if opts.Tracker == nil {
		opts.Tracker = status.NewTracker()
	}
	return &UpdateChanges{
		tree:       opts.Tree,
		changes:    opts.Changes,
		predicates: opts.Predicates,
		discovery:  opts.Discovery,
		tracker:    opts.Tracker,
		runner:     NewRunner(opts.Jobs),
		dryRun:     opts.DryRun,
	}, nil
}

// 🎮 UpdateChanges applies one change set to a tree
type UpdateChanges struct {
	tree       tree.Tree
	changes    *changes.ChangeSet
	predicates Predicates
	discovery  *Discovery
	tracker    *status.Tracker
	runner     *Runner
	dryRun     bool
}

var _ Operation = (*UpdateChanges)(nil)

// 📊 Report summarizes one ApplyChanges call
type Report struct {
	// Files holds every tracked file with its state after the call, sorted by
	// path. A tracker shared between calls makes this cumulative.
	Files []status.FileInfo
	// Replacements counts replacements per category
	Replacements map[changes.Category]int
	// Writes is the number of overwrites performed
	Writes int

	changed []status.FileInfo
}

// Changed returns the files written by this call, sorted by path
func (r *Report) Changed() []status.FileInfo {
	return r.changed
}

// Discovery returns the file discovery, walking the tree on first use
func (u *UpdateChanges) Discovery(ctx context.Context) (*Discovery, error) {
	if u.discovery != nil {
		return u.discovery, nil
	}
	d, err := Discover(ctx, u.tree, u.predicates)
	if err != nil {
		return nil, err
	}
	u.discovery = d
	return d, nil
}

// Execute implements Operation
func (u *UpdateChanges) Execute(ctx context.Context) error {
	_, err := u.ApplyChanges(ctx)
	return err
}

// 🚀 ApplyChanges runs every non-empty category in order. A category finishes
// and writes its files before the next one starts; nothing is rolled back.
func (u *UpdateChanges) ApplyChanges(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	report := &Report{Replacements: make(map[changes.Category]int)}
	if u.changes.IsEmpty() {
		logger.Debug().Msg("no changes to apply")
		return report, nil
	}

	d, err := u.Discovery(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Templates {
		u.tracker.Track(ctx, p)
	}
	for _, p := range d.Sources {
		u.tracker.Track(ctx, p)
	}

	written := map[string]bool{}
	for _, rw := range text.Rewriters(u.changes) {
		files := d.Files(rw.Category())
		logger.Debug().
			Str("category", string(rw.Category())).
			Int("changes", u.changes.Len(rw.Category())).
			Int("files", len(files)).
			Int("jobs", u.runner.Jobs()).
			Msg("applying category")

		writes := make(chan fileWrite, len(files))
		err := u.runner.Run(ctx, files, func(ctx context.Context, p string) error {
			n, err := u.processFile(ctx, rw, p)
			if err != nil {
				return errors.Errorf("processing %s: %w", p, err)
			}
			if n > 0 {
				writes <- fileWrite{path: p, replacements: n}
			}
			return nil
		})
		close(writes)
		for w := range writes {
			report.Replacements[rw.Category()] += w.replacements
			report.Writes++
			written[w.path] = true
		}
		if err != nil {
			return nil, errors.Errorf("applying %s changes: %w", rw.Category(), err)
		}
	}

	report.Files = u.tracker.List()
	for _, p := range sortedKeys(written) {
		info, err := u.tracker.Get(p)
		if err != nil {
			return nil, err
		}
		report.changed = append(report.changed, info)
	}

	logger.Debug().
		Int("changed", len(report.changed)).
		Int("candidates", u.tracker.Count(status.StatusCandidate)).
		Msg("changes applied")
	return report, nil
}

// fileWrite is one overwrite made by a category
type fileWrite struct {
	path         string
	replacements int
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// 📄 processFile rewrites one file and writes it back when its content changed.
// It returns the number of replacements written.
func (u *UpdateChanges) processFile(ctx context.Context, rw text.Rewriter, p string) (int, error) {
	content, err := u.tree.Read(ctx, p)
	if err != nil {
		return 0, err
	}

	res := rw.Rewrite(ctx, content)
	u.tracker.Observe(ctx, p, rw.Category(), res.Candidate, res.WasModified, res.ReplacementCount)
	if !res.WasModified || res.Content == content {
		return 0, nil
	}

	op := log.FileOperation{
		Path:         p,
		Kind:         Kind(rw.Category()),
		Category:     string(rw.Category()),
		Status:       u.statusLabel(),
		IsRewritten:  true,
		IsPending:    u.dryRun,
		Replacements: res.ReplacementCount,
	}

	if err := u.tree.Overwrite(ctx, p, res.Content); err != nil {
		u.tracker.Fail(ctx, p, err)
		op.IsFailed = true
		op.Status = "FAILED"
		logFile(ctx, op)
		return 0, err
	}
	u.tracker.Commit(ctx, p)
	logFile(ctx, op)
	return res.ReplacementCount, nil
}

func (u *UpdateChanges) statusLabel() string {
	if u.dryRun {
		return "PENDING"
	}
	return "UPDATED"
}

// logFile prints op when a console logger is carried in ctx
func logFile(ctx context.Context, op log.FileOperation) {
	if l, ok := log.Lookup(ctx); ok {
		l.LogFileOperation(ctx, op)
	}
}

// 📝 String returns a one-line summary of the report
func (r *Report) String() string {
	total := 0
	for _, n := range r.Replacements {
		total += n
	}
	return fmt.Sprintf("%d files changed, %d replacements, %d writes", len(r.Changed()), total, r.Writes)
}

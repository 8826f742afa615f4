package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/opts"
	"github.com/walteh/ngmigrate/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	return newApplyCmd(opts, afero.NewOsFs())
}

func newApplyCmd(opts *opts.RootOpts, fsys afero.Fs) *cobra.Command {
	var (
		flags  runFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply migrations to the project",
		Long: `Apply runs every migration step newer than --from and up to --to.
It will:
1. Select the steps of the version range (or the --changes directory)
2. Find component templates and TypeScript sources under the root
3. Apply selector, output, class and import changes, in that order
4. Write back only the files whose content changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := flags.resolve(opts, cmd.Flags().Changed("jobs"))

			res, err := run(ctx, opts, f, dryRun, fsys)
			if err != nil {
				return errors.Errorf("applying migrations: %w", err)
			}

			for _, sr := range res.Steps {
				opts.UserLogger.LogStepChange(fmt.Sprintf("%s: %s", sr.Step, sr.Report))
			}

			changeType := log.FileRewritten
			if dryRun {
				changeType = log.FilePending
			}
			for _, info := range res.Changed() {
				opts.UserLogger.LogFileChange(log.FileChange{
					Type:        changeType,
					Path:        info.Path,
					Description: fmt.Sprintf("%d replacements", info.Replacements),
				})
			}

			summary := fmt.Sprintf("%d steps applied, %d files changed, %d writes", len(res.Steps), len(res.Changed()), res.Writes)
			if dryRun {
				summary += " (dry run)"
			}
			opts.UserLogger.LogValidation(true, summary, nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "version the project currently uses")
	cmd.Flags().StringVar(&flags.to, "to", "", "version to migrate to (default: latest)")
	cmd.Flags().StringVar(&flags.changes, "changes", "", "directory with a changes/ folder to apply instead of the built-in migrations")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "files processed concurrently")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute changes without writing files")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/opts"
	"github.com/walteh/ngmigrate/pkg/log"
	"github.com/walteh/ngmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	return newStatusCmd(opts, afero.NewOsFs())
}

func newStatusCmd(opts *opts.RootOpts, fsys afero.Fs) *cobra.Command {
	var (
		flags runFlags
		check bool
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which files a migration would change",
		Long: `Status runs the selected migrations in memory and lists the files they
would change. Nothing is written. With --check it fails when any file would
change, which suits CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := flags.resolve(opts, cmd.Flags().Changed("jobs"))

			res, err := run(ctx, opts, f, true, fsys)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if all {
				for _, info := range res.Tracker.List() {
					fmt.Fprintln(cmd.OutOrStdout(), status.FormatFileOperation(info))
				}
			}

			changed := res.Changed()
			if len(changed) == 0 {
				opts.UserLogger.LogValidation(true, "Project is up to date", nil)
				return nil
			}

			for _, info := range changed {
				opts.UserLogger.LogFileChange(log.FileChange{
					Type:        log.FilePending,
					Path:        info.Path,
					Description: fmt.Sprintf("%d replacements", info.Replacements),
				})
			}
			msg := fmt.Sprintf("%d files need migration", len(changed))
			opts.UserLogger.LogValidation(false, msg, nil)

			if check {
				return errors.Errorf("%s: %w", msg, ErrPending)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "version the project currently uses")
	cmd.Flags().StringVar(&flags.to, "to", "", "version to migrate to (default: latest)")
	cmd.Flags().StringVar(&flags.changes, "changes", "", "directory with a changes/ folder to check instead of the built-in migrations")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "files processed concurrently")
	cmd.Flags().BoolVar(&check, "check", false, "exit with an error when files would change")
	cmd.Flags().BoolVar(&all, "all", false, "print the state of every discovered file")

	return cmd
}

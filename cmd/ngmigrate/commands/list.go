package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/opts"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/migration"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := migration.Default(ctx)
			if err != nil {
				return errors.Errorf("loading migrations: %w", err)
			}
			data := pterm.TableData{{"Step", "Version", "Selectors", "Outputs", "Classes", "Imports", "Description"}}
			for _, s := range c.Steps {
				cs, err := s.Changes(ctx)
				if err != nil {
					return errors.Errorf("loading %s: %w", s.Name, err)
				}
				row := []string{s.Name, s.Version.String()}
				for _, cat := range changes.Categories {
					row = append(row, fmt.Sprint(cs.Len(cat)))
				}
				data = append(data, append(row, s.Description))
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			if latest, ok := c.Latest(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "latest: %s\n", latest)
			}
			return nil
		},
	}
}

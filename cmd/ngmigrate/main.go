// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/commands"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/opts"
	"github.com/walteh/ngmigrate/pkg/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.NewUserLogger(ctx).LogValidation(false, "Command failed", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "ngmigrate",
		Short: "Migrate Angular projects between Ignite UI versions",
		Long: `ngmigrate rewrites the templates and sources of an Angular project to match
a newer version of the Ignite UI component library. Each migration step renames
or removes component selectors, directive attributes, event outputs, class
names and import paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())
			cmd.SetContext(ctx)

			loaded, err := newRootOpts(ctx)
			if err != nil {
				return err
			}
			*rootOpts = *loaded
			zerolog.Ctx(ctx).Debug().Str("config", rootOpts.Config.String()).Msg("configuration ready")
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewStatusCmd(rootOpts),
		commands.NewListCmd(rootOpts),
	)

	return rootCmd
}

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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ngmigrate/cmd/ngmigrate/opts"
	"github.com/walteh/ngmigrate/pkg/config"
	"github.com/walteh/ngmigrate/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	rootDir    string
	debug      bool
)

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	dir := rootDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	// Load config
	cfg, err := config.LoadOrDefault(ctx, configFile, dir)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// --root wins over the config file
	if rootDir != "" {
		cfg.Root = rootDir
	}
	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Errorf("getting absolute root path: %w", err)
	}
	cfg.Root = abs

	// console events are mirrored to zerolog only when debugging
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:     cfg,
		Console:    log.New(os.Stdout, level),
		UserLogger: log.NewUserLogger(ctx),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: .ngmigrate.{yaml,yml,json,hcl} in the root)")
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "project root (default: current directory)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags and returns a context carrying it
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

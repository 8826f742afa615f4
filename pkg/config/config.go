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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/config/parser"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultTemplateSuffix marks component template files
	DefaultTemplateSuffix = "component.html"
	// DefaultSourceSuffix marks source files
	DefaultSourceSuffix = ".ts"
)

// 🗂️ DefaultFiles are tried in order when no config path is given
var DefaultFiles = []string{".ngmigrate.yaml", ".ngmigrate.yml", ".ngmigrate.json", ".ngmigrate.hcl"}

// 📚 Config represents the complete tool configuration
type Config struct {
	Root           string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`                                  // Project root to migrate
	TemplateSuffix string   `json:"template_suffix,omitempty" yaml:"template_suffix,omitempty" hcl:"template_suffix,optional"` // Suffix of template files
	SourceSuffix   string   `json:"source_suffix,omitempty" yaml:"source_suffix,omitempty" hcl:"source_suffix,optional"`       // Suffix of source files
	Ignore         []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`                            // Doublestar globs skipped during discovery
	Jobs           int      `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`                                  // Files processed concurrently per category
	From           string   `json:"from,omitempty" yaml:"from,omitempty" hcl:"from,optional"`                                  // Version migrated from
	To             string   `json:"to,omitempty" yaml:"to,omitempty" hcl:"to,optional"`                                        // Version migrated to, empty for latest
	Changes        string   `json:"changes,omitempty" yaml:"changes,omitempty" hcl:"changes,optional"`                         // Directory holding a changes/ folder to apply instead of the collection

	location string
}

// 🏭 Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := parser.Decode(ctx, path, data, &cfg); err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// relative roots resolve against the config file's directory
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔎 LoadOrDefault loads path when given. Without a path it looks for one of
// DefaultFiles in dir and falls back to Default when none exists.
func LoadOrDefault(ctx context.Context, path, dir string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		}
	}
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	cfg := Default()
	if cfg.Root == "" || cfg.Root == "." {
		cfg.Root = dir
	}
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if cfg.TemplateSuffix == "" {
		cfg.TemplateSuffix = DefaultTemplateSuffix
	}
	if cfg.SourceSuffix == "" {
		cfg.SourceSuffix = DefaultSourceSuffix
	}
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = 1
	}

	for _, pattern := range cfg.Ignore {
		if strings.TrimSpace(pattern) == "" {
			return errors.Errorf("ignore patterns must not be empty")
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	return nil
}

// 📍 Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	to := cfg.To
	if to == "" {
		to = "latest"
	}
	return cfg.From + " -> " + to + " @ " + cfg.Root
}

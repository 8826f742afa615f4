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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: ".ngmigrate.yaml",
			config: `
root: app
from: 6.0.0
to: 6.1.0
ignore:
  - "**/dist/**"
jobs: 4
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "app"), cfg.Root, "root should resolve against config dir")
				assert.Equal(t, "6.0.0", cfg.From)
				assert.Equal(t, "6.1.0", cfg.To)
				assert.Equal(t, []string{"**/dist/**"}, cfg.Ignore)
				assert.Equal(t, 4, cfg.Jobs)
				assert.Equal(t, DefaultTemplateSuffix, cfg.TemplateSuffix, "template suffix should default")
				assert.Equal(t, DefaultSourceSuffix, cfg.SourceSuffix, "source suffix should default")
			},
		},
		{
			name:   "valid_json",
			file:   ".ngmigrate.json",
			config: `{"from": "6.0.0", "template_suffix": ".html"}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, dir, cfg.Root, "empty root should be the config dir")
				assert.Equal(t, ".html", cfg.TemplateSuffix)
				assert.Equal(t, 1, cfg.Jobs, "jobs should default to 1")
			},
		},
		{
			name: "valid_hcl",
			file: ".ngmigrate.hcl",
			config: `
from    = "6.0.1"
changes = "/opt/changes"
jobs    = 2
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "6.0.1", cfg.From)
				assert.Equal(t, "/opt/changes", cfg.Changes)
				assert.Equal(t, 2, cfg.Jobs)
			},
		},
		{
			name:        "unknown_field",
			file:        ".ngmigrate.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing config",
		},
		{
			name:        "negative_jobs",
			file:        ".ngmigrate.yaml",
			config:      "jobs: -1\n",
			wantErr:     true,
			errContains: "jobs must not be negative",
		},
		{
			name:        "invalid_ignore",
			file:        ".ngmigrate.yaml",
			config:      "ignore: [\"[\"]\n",
			wantErr:     true,
			errContains: "invalid ignore pattern",
		},
		{
			name:        "unsupported_extension",
			file:        "ngmigrate.toml",
			config:      "",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.file)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, configPath, cfg.Location())
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("no_file_uses_defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := LoadOrDefault(ctx, "", dir)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.Root)
		assert.Equal(t, DefaultTemplateSuffix, cfg.TemplateSuffix)
		assert.Empty(t, cfg.Location())
	})

	t.Run("finds_default_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".ngmigrate.yml"), []byte("from: 6.0.0\n"), 0644))
		cfg, err := LoadOrDefault(ctx, "", dir)
		require.NoError(t, err)
		assert.Equal(t, "6.0.0", cfg.From)
	})

	t.Run("explicit_missing_file_fails", func(t *testing.T) {
		_, err := LoadOrDefault(ctx, filepath.Join(t.TempDir(), "nope.yaml"), ".")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "full_config",
			cfg:  &Config{From: "6.0.0", To: "6.1.0", Root: "/app"},
			want: "6.0.0 -> 6.1.0 @ /app",
		},
		{
			name: "latest",
			cfg:  &Config{From: "6.0.0", Root: "/app"},
			want: "6.0.0 -> latest @ /app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.String(), "String() should match")
		})
	}
}

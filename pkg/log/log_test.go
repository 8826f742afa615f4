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

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(symbol, path, kind, status string) string {
	return strings.TrimSpace(fmt.Sprintf("    %s %-45s %-10s %-15s", symbol, path, kind, status))
}

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "src/app/app.component.html",
					Kind:         "template",
					Category:     "outputs",
					Status:       "UPDATED",
					IsRewritten:  true,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				line("⟳", "src/app/app.component.html", "template", "UPDATED"),
			},
		},
		{
			name: "log_step",
			op: func(t *testing.T, logger *Logger) {
				logger.StartStep(context.Background(), StepOperation{
					Name:    "migration-02",
					Version: "6.0.1",
					Root:    "/tmp/app",
				})
			},
			wantLogs: []string{
				"[migrating /tmp/app]",
				"◆ migration-02 • 6.0.1",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying migrations")
			},
			wantLogs: []string{
				"ngmigrate • applying migrations",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	found, ok := Lookup(ctx)
	assert.True(t, ok)
	assert.Same(t, logger, found)

	_, ok = Lookup(context.Background())
	assert.False(t, ok, "lookup should report a missing logger")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestStepCollectsOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)
	ctx := context.Background()

	assert.Nil(t, logger.EndStep(ctx), "ending without a step should return nothing")

	logger.StartStep(ctx, StepOperation{Name: "migration-01", Version: "6.0.0"})
	logger.LogFileOperation(ctx, FileOperation{Path: "a.ts", Kind: "source", IsRewritten: true})
	logger.LogFileOperation(ctx, FileOperation{Path: "b.ts", Kind: "source", IsRewritten: true})
	ops := logger.EndStep(ctx)

	require.Len(t, ops, 2)
	assert.Equal(t, "a.ts", ops[0].Path)
	assert.Nil(t, logger.EndStep(ctx))
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "rewritten_template",
			op: FileOperation{
				Path:        "app.component.html",
				Kind:        "template",
				Status:      "UPDATED",
				IsRewritten: true,
			},
			want: line("⟳", "app.component.html", "template", "UPDATED"),
		},
		{
			name: "pending_source",
			op: FileOperation{
				Path:        "app.module.ts",
				Kind:        "source",
				Status:      "PENDING",
				IsRewritten: true,
				IsPending:   true,
			},
			want: line("~", "app.module.ts", "source", "PENDING"),
		},
		{
			name: "failed_file",
			op: FileOperation{
				Path:     "app.module.ts",
				Kind:     "source",
				Status:   "FAILED",
				IsFailed: true,
			},
			want: line("✗", "app.module.ts", "source", "FAILED"),
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "app.module.ts",
				Kind:   "source",
				Status: "no change",
			},
			want: line("-", "app.module.ts", "source", "no change"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			// Log operation
			logger.LogFileOperation(context.Background(), tt.op)

			// Check output
			output := strings.TrimSpace(buf.String())
			assert.Equal(t, tt.want, output, "formatted output should match")
		})
	}
}

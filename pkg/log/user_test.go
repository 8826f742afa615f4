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
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestUserLogger(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name string
		op   func(u *UserLogger)
		want []string
	}{
		{
			name: "rewritten_file",
			op: func(u *UserLogger) {
				u.LogFileChange(FileChange{Type: FileRewritten, Path: "src/app.component.html", Description: "2 replacements"})
			},
			want: []string{"🔄", "Updated src/app.component.html (2 replacements)"},
		},
		{
			name: "pending_file",
			op: func(u *UserLogger) {
				u.LogFileChange(FileChange{Type: FilePending, Path: "src/app.module.ts"})
			},
			want: []string{"Would update src/app.module.ts"},
		},
		{
			name: "failed_file",
			op: func(u *UserLogger) {
				u.LogFileChange(FileChange{Type: FileError, Path: "src/app.module.ts", Error: errors.New("permission denied")})
			},
			want: []string{"Error src/app.module.ts", "permission denied"},
		},
		{
			name: "step_change",
			op: func(u *UserLogger) {
				u.LogStepChange("migration-02 (6.0.1)")
			},
			want: []string{"📦", "migration-02 (6.0.1)"},
		},
		{
			name: "validation_results",
			op: func(u *UserLogger) {
				u.LogValidation(true, "project is up to date", nil)
				u.LogValidation(false, "3 files need migration", nil)
				u.LogValidation(false, "migration failed", errors.New("boom"))
			},
			want: []string{"project is up to date", "3 files need migration", "migration failed", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.op(NewUserLoggerTo(context.Background(), buf))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

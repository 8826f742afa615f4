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

package operation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/config"
)

func TestDiscover(t *testing.T) {
	files := map[string]string{
		"src/app/app.component.html":          "",
		"src/app/app.component.ts":            "",
		"src/app/app.module.ts":               "",
		"src/app/grid/grid.component.html":    "",
		"src/index.html":                      "",
		"src/styles.scss":                     "",
		"node_modules/lib/lib.component.html": "",
		"dist/out/app.component.ts":           "",
		"e2e/app.e2e-spec.ts":                 "",
	}

	tests := []struct {
		name          string
		predicates    Predicates
		wantTemplates []string
		wantSources   []string
	}{
		{
			name:          "default_predicates",
			predicates:    DefaultPredicates(),
			wantTemplates: []string{"src/app/app.component.html", "src/app/grid/grid.component.html"},
			wantSources:   []string{"dist/out/app.component.ts", "e2e/app.e2e-spec.ts", "src/app/app.component.ts", "src/app/app.module.ts"},
		},
		{
			name: "ignore_globs",
			predicates: Predicates{
				TemplateSuffix: "component.html",
				SourceSuffix:   ".ts",
				Ignore:         []string{"dist", "**/*.e2e-spec.ts", "src/app/grid/**"},
			},
			wantTemplates: []string{"src/app/app.component.html"},
			wantSources:   []string{"src/app/app.component.ts", "src/app/app.module.ts"},
		},
		{
			name:          "custom_template_suffix",
			predicates:    Predicates{TemplateSuffix: ".html"},
			wantTemplates: []string{"src/app/app.component.html", "src/app/grid/grid.component.html", "src/index.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := memTree(t, files)
			d, err := Discover(context.Background(), tr, tt.predicates)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplates, d.Templates)
			assert.Equal(t, tt.wantSources, d.Sources)
			assert.Equal(t, len(tt.wantTemplates)+len(tt.wantSources), d.Len())
		})
	}
}

func TestDiscoveryFiles(t *testing.T) {
	d := &Discovery{Templates: []string{"a.component.html"}, Sources: []string{"a.ts"}}

	assert.Equal(t, d.Templates, d.Files(changes.Selectors))
	assert.Equal(t, d.Templates, d.Files(changes.Outputs))
	assert.Equal(t, d.Sources, d.Files(changes.Classes))
	assert.Equal(t, d.Sources, d.Files(changes.Imports))
	assert.Nil(t, d.Files(changes.Category("styles")))

	assert.Equal(t, "template", Kind(changes.Outputs))
	assert.Equal(t, "source", Kind(changes.Imports))
}

func TestPredicatesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ignore = []string{"dist/**"}

	p := PredicatesFromConfig(cfg)
	assert.True(t, p.IsTemplate("x/app.component.html"))
	assert.False(t, p.IsTemplate("x/index.html"))
	assert.True(t, p.IsSource("x/app.ts"))
	assert.False(t, p.IsSource("x/app.js"))
	assert.Equal(t, []string{"dist/**"}, p.Ignore)
}

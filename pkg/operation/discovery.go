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
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/config"
	"github.com/walteh/ngmigrate/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// directories never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// 🔎 Predicates decide which files a run touches
type Predicates struct {
	TemplateSuffix string   // Suffix of component templates
	SourceSuffix   string   // Suffix of source files
	Ignore         []string // Doublestar globs, relative to the root
}

// DefaultPredicates matches *component.html templates and *.ts sources
func DefaultPredicates() Predicates {
	return Predicates{
		TemplateSuffix: config.DefaultTemplateSuffix,
		SourceSuffix:   config.DefaultSourceSuffix,
	}
}

// PredicatesFromConfig builds predicates from the tool config
func PredicatesFromConfig(cfg *config.Config) Predicates {
	return Predicates{
		TemplateSuffix: cfg.TemplateSuffix,
		SourceSuffix:   cfg.SourceSuffix,
		Ignore:         cfg.Ignore,
	}
}

// IsTemplate reports whether p is a template file
func (p Predicates) IsTemplate(name string) bool {
	return p.TemplateSuffix != "" && strings.HasSuffix(name, p.TemplateSuffix)
}

// IsSource reports whether p is a source file
func (p Predicates) IsSource(name string) bool {
	return p.SourceSuffix != "" && strings.HasSuffix(name, p.SourceSuffix)
}

// 🔍 shouldIgnore checks if a path matches one of the ignore globs
func (p Predicates) shouldIgnore(ctx context.Context, name string) bool {
	for _, pattern := range p.Ignore {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", name).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("path", name).Str("pattern", pattern).Msg("ignored by pattern")
			return true
		}
	}
	return false
}

// 📂 Discovery is the result of walking a tree once: template and source
// paths in visit order. It stays valid for as long as the tree does not gain
// or lose files.
type Discovery struct {
	Templates []string
	Sources   []string
}

// Files returns the file set a category applies to
func (d *Discovery) Files(c changes.Category) []string {
	switch c {
	case changes.Selectors, changes.Outputs:
		return d.Templates
	case changes.Classes, changes.Imports:
		return d.Sources
	}
	return nil
}

// Kind names the file kind a category applies to
func Kind(c changes.Category) string {
	switch c {
	case changes.Selectors, changes.Outputs:
		return "template"
	default:
		return "source"
	}
}

// Len returns the number of discovered files
func (d *Discovery) Len() int {
	return len(d.Templates) + len(d.Sources)
}

// 🚶 Discover walks t once and records template and source files
func Discover(ctx context.Context, t tree.Tree, p Predicates) (*Discovery, error) {
	logger := zerolog.Ctx(ctx)

	d := &Discovery{}
	err := t.Visit(ctx, func(name string, info fs.FileInfo) error {
		if info.IsDir() {
			if skipDirs[path.Base(name)] || p.shouldIgnore(ctx, name) {
				return fs.SkipDir
			}
			return nil
		}
		if p.shouldIgnore(ctx, name) {
			return nil
		}
		switch {
		case p.IsTemplate(name):
			d.Templates = append(d.Templates, name)
		case p.IsSource(name):
			d.Sources = append(d.Sources, name)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}

	logger.Debug().
		Int("templates", len(d.Templates)).
		Int("sources", len(d.Sources)).
		Msg("discovered files")
	return d, nil
}

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

// Package migration holds versioned migration steps and runs them against a
// project tree.
package migration

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/config/parser"
	"gitlab.com/tozd/go/errors"
)

// CollectionFile is the name of the collection manifest
const CollectionFile = "migration-collection.json"

//go:embed migrations
var embedded embed.FS

// 📜 manifest is the on-disk shape of a collection
type manifest struct {
	Schema     string               `json:"$schema,omitempty"`
	Schematics map[string]schematic `json:"schematics"`
}

type schematic struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	Factory     string `json:"factory"`
}

// 🪜 Step is one versioned migration
type Step struct {
	Name        string
	Version     semver.Version
	Description string
	Dir         string // directory of the step inside its filesystem

	fsys fs.FS
}

// 📥 Changes loads the step's change set from Dir/changes
func (s Step) Changes(ctx context.Context) (*changes.ChangeSet, error) {
	cs, err := changes.Load(ctx, s.fsys, path.Join(s.Dir, "changes"))
	if err != nil {
		return nil, errors.Errorf("loading step %s: %w", s.Name, err)
	}
	return cs, nil
}

// String returns "name (version)"
func (s Step) String() string {
	if s.Version.Equals(semver.Version{}) {
		return s.Name
	}
	return s.Name + " (" + s.Version.String() + ")"
}

// 📚 Collection is an ordered list of steps, ascending by version
type Collection struct {
	Steps []Step
}

// 🏭 Default returns the built-in collection
func Default(ctx context.Context) (*Collection, error) {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return nil, errors.Errorf("opening embedded migrations: %w", err)
	}
	return Load(ctx, sub, CollectionFile)
}

// 🎯 Load reads a collection manifest from fsys. Step directories resolve
// against the manifest's directory.
func Load(ctx context.Context, fsys fs.FS, name string) (*Collection, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Errorf("reading collection: %w", err)
	}

	var m manifest
	if err := parser.Decode(ctx, name, data, &m); err != nil {
		return nil, errors.Errorf("parsing collection: %w", err)
	}

	base := path.Dir(name)
	c := &Collection{}
	for stepName, s := range m.Schematics {
		v, err := semver.ParseTolerant(s.Version)
		if err != nil {
			return nil, errors.Errorf("step %s: invalid version %q: %w", stepName, s.Version, err)
		}
		if s.Factory == "" {
			return nil, errors.Errorf("step %s: factory is required", stepName)
		}
		c.Steps = append(c.Steps, Step{
			Name:        stepName,
			Version:     v,
			Description: s.Description,
			Dir:         path.Join(base, factoryDir(s.Factory)),
			fsys:        fsys,
		})
	}
	c.sort()

	zerolog.Ctx(ctx).Debug().Str("collection", name).Int("steps", len(c.Steps)).Msg("loaded migration collection")
	return c, nil
}

// 📂 FromDir builds a single unversioned step from dir, which holds a
// changes/ directory
func FromDir(dir string) (*Collection, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("opening changes directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}
	return &Collection{Steps: []Step{{
		Name:        filepath.Base(filepath.Clean(dir)),
		Description: "changes from " + dir,
		Dir:         ".",
		fsys:        os.DirFS(dir),
	}}}, nil
}

// factoryDir turns "./update-6/index#default" into "update-6"
func factoryDir(factory string) string {
	if i := strings.IndexByte(factory, '#'); i >= 0 {
		factory = factory[:i]
	}
	factory = path.Clean(factory)
	if path.Base(factory) == "index" {
		factory = path.Dir(factory)
	}
	return factory
}

func (c *Collection) sort() {
	sort.SliceStable(c.Steps, func(i, j int) bool {
		if cmp := c.Steps[i].Version.Compare(c.Steps[j].Version); cmp != 0 {
			return cmp < 0
		}
		return c.Steps[i].Name < c.Steps[j].Name
	})
}

// 🔍 Between returns the steps with from < version <= to, ascending. An empty
// to means no upper bound.
func (c *Collection) Between(from, to string) ([]Step, error) {
	lower, err := semver.ParseTolerant(from)
	if err != nil {
		return nil, errors.Errorf("invalid from version %q: %w", from, err)
	}

	var upper *semver.Version
	if to != "" {
		v, err := semver.ParseTolerant(to)
		if err != nil {
			return nil, errors.Errorf("invalid to version %q: %w", to, err)
		}
		if v.LT(lower) {
			return nil, errors.Errorf("to version %s is lower than from version %s", v, lower)
		}
		upper = &v
	}

	var out []Step
	for _, s := range c.Steps {
		if s.Version.LTE(lower) {
			continue
		}
		if upper != nil && s.Version.GT(*upper) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Latest returns the highest version in the collection
func (c *Collection) Latest() (semver.Version, bool) {
	if len(c.Steps) == 0 {
		return semver.Version{}, false
	}
	return c.Steps[len(c.Steps)-1].Version, true
}

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

package changes

import (
	"context"
	"io/fs"
	"path"

	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/config/parser"
	"gitlab.com/tozd/go/errors"
)

// 📜 document is the on-disk shape of one change file
type document[T any] struct {
	Schema  string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Changes []T    `json:"changes" yaml:"changes"`
}

// extensions tried in order for every category
var extensions = []string{".json", ".yaml", ".yml"}

// 🎯 Load reads dir/selectors.json, dir/outputs.json, dir/classes.json and
// dir/imports.json from fsys. A missing file leaves its category empty; a
// malformed or invalid file aborts the whole load.
func Load(ctx context.Context, fsys fs.FS, dir string) (*ChangeSet, error) {
	cs := &ChangeSet{}

	var err error
	if cs.Selectors, err = loadCategory[SelectorChange](ctx, fsys, dir, Selectors); err != nil {
		return nil, err
	}
	if cs.Outputs, err = loadCategory[OutputChange](ctx, fsys, dir, Outputs); err != nil {
		return nil, err
	}
	if cs.Classes, err = loadCategory[ClassChange](ctx, fsys, dir, Classes); err != nil {
		return nil, err
	}
	if cs.Imports, err = loadCategory[ImportChange](ctx, fsys, dir, Imports); err != nil {
		return nil, err
	}

	if err := cs.Validate(); err != nil {
		return nil, errors.Errorf("validating changes in %s: %w", dir, err)
	}

	return cs, nil
}

func loadCategory[T any](ctx context.Context, fsys fs.FS, dir string, c Category) ([]T, error) {
	logger := zerolog.Ctx(ctx)

	for _, ext := range extensions {
		name := path.Join(dir, string(c)+ext)
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", name, err)
		}

		var doc document[T]
		if err := parser.Decode(ctx, name, data, &doc); err != nil {
			return nil, errors.Errorf("loading %s changes: %w", c, err)
		}
		logger.Debug().Str("file", name).Int("changes", len(doc.Changes)).Msg("loaded change file")
		return doc.Changes, nil
	}

	logger.Debug().Str("dir", dir).Str("category", string(c)).Msg("no change file, category is empty")
	return nil, nil
}

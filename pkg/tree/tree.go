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

// Package tree exposes a migrated project as a set of files that can be
// visited, read and overwritten. It never creates or deletes files.
package tree

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🌳 Tree is the project tree the orchestrator works on. Paths are
// slash-separated and relative to the tree root.
type Tree interface {
	// Visit walks the tree depth-first in lexical order, calling fn for every
	// directory and file. Returning fs.SkipDir from fn on a directory skips it.
	Visit(ctx context.Context, fn VisitFunc) error

	// Read returns the content of the file at path
	Read(ctx context.Context, path string) (string, error)

	// Overwrite replaces the content of an existing file
	Overwrite(ctx context.Context, path string, content string) error
}

// VisitFunc is called by Tree.Visit for each entry
type VisitFunc func(path string, info fs.FileInfo) error

// ErrNotExist is returned when overwriting a file that does not exist
var ErrNotExist = errors.Base("file does not exist")

// 💾 FsTree is a Tree backed by an afero filesystem
type FsTree struct {
	fs     afero.Fs
	root   string
	atomic bool

	mu     sync.Mutex
	writes map[string]int
}

// Option configures an FsTree
type Option func(*FsTree)

// WithAtomicWrites writes through a temp file and a rename
func WithAtomicWrites() Option {
	return func(t *FsTree) { t.atomic = true }
}

// 🏭 New creates a tree rooted at root on fsys
func New(fsys afero.Fs, root string, opts ...Option) *FsTree {
	t := &FsTree{
		fs:     fsys,
		root:   filepath.Clean(root),
		writes: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewOs creates a tree on the real filesystem
func NewOs(root string, opts ...Option) *FsTree {
	return New(afero.NewOsFs(), root, opts...)
}

// 🧪 NewDryRun creates a tree whose writes land in memory on top of a
// read-only view of base. The base filesystem is never modified.
func NewDryRun(base afero.Fs, root string, opts ...Option) *FsTree {
	layer := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
	return New(layer, root, opts...)
}

// Root returns the tree root on the backing filesystem
func (t *FsTree) Root() string {
	return t.root
}

func (t *FsTree) abs(p string) string {
	return filepath.Join(t.root, filepath.FromSlash(p))
}

// Visit implements Tree
func (t *FsTree) Visit(ctx context.Context, fn VisitFunc) error {
	err := afero.Walk(t.fs, t.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(t.root, p)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", p, err)
		}
		if rel == "." {
			return nil
		}
		return fn(filepath.ToSlash(rel), info)
	})
	if err != nil {
		return errors.Errorf("visiting %s: %w", t.root, err)
	}
	return nil
}

// Read implements Tree
func (t *FsTree) Read(ctx context.Context, p string) (string, error) {
	data, err := afero.ReadFile(t.fs, t.abs(p))
	if err != nil {
		return "", errors.Errorf("reading %s: %w", p, err)
	}
	return string(data), nil
}

// Overwrite implements Tree
func (t *FsTree) Overwrite(ctx context.Context, p string, content string) error {
	abs := t.abs(p)
	info, err := t.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("overwriting %s: %w", p, ErrNotExist)
		}
		return errors.Errorf("checking %s: %w", p, err)
	}
	if info.IsDir() {
		return errors.Errorf("overwriting %s: is a directory", p)
	}

	if t.atomic {
		err = t.writeAtomic(abs, []byte(content), info.Mode().Perm())
	} else {
		err = afero.WriteFile(t.fs, abs, []byte(content), info.Mode().Perm())
	}
	if err != nil {
		return errors.Errorf("overwriting %s: %w", p, err)
	}

	t.mu.Lock()
	t.writes[path.Clean(p)]++
	t.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("path", p).Int("bytes", len(content)).Msg("file overwritten")
	return nil
}

func (t *FsTree) writeAtomic(abs string, content []byte, mode os.FileMode) error {
	tempPath := abs + ".tmp"

	if err := afero.WriteFile(t.fs, tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := t.fs.Rename(tempPath, abs); err != nil {
		_ = t.fs.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// 📊 Writes returns how often path was overwritten
func (t *FsTree) Writes(p string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes[path.Clean(p)]
}

// WriteCount returns the total number of overwrites
func (t *FsTree) WriteCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, c := range t.writes {
		n += c
	}
	return n
}

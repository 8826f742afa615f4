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

package status

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/changes"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the current state of a file
type FileStatus int

const (
	StatusUnknown    FileStatus = iota
	StatusUnmodified            // Discovered, nothing applied yet
	StatusCandidate             // A change passed its pre-check
	StatusRewritten             // Content changed in memory
	StatusCommitted             // Content written back
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnmodified:
		return "unmodified"
	case StatusCandidate:
		return "candidate"
	case StatusRewritten:
		return "rewritten"
	case StatusCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// ErrNotTracked is returned for paths the tracker has never seen
var ErrNotTracked = errors.Base("file not tracked")

// 📄 FileInfo contains what happened to one file
type FileInfo struct {
	Path         string             // Path relative to the project root
	Status       FileStatus         // Furthest state reached
	Replacements int                // Replacements made across all categories
	Categories   []changes.Category // Categories that changed the file, in order
	Writes       int                // Times the file was written back
	Error        error              // Any error associated with this file
}

// 🔧 Tracker records file states. It is safe for concurrent use.
type Tracker struct {
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]*FileInfo
}

// 🏭 NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]*FileInfo),
	}
}

func (t *Tracker) entry(path string) *FileInfo {
	info, ok := t.files[path]
	if !ok {
		info = &FileInfo{Path: path, Status: StatusUnmodified}
		t.files[path] = info
	}
	return info
}

// advance moves info forward; lower states are ignored
func advance(info *FileInfo, s FileStatus) bool {
	if s <= info.Status {
		return false
	}
	info.Status = s
	return true
}

// 📥 Track registers path as unmodified if it is not known yet
func (t *Tracker) Track(ctx context.Context, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entry(path)
}

// 🔄 Observe records the outcome of one category on path
func (t *Tracker) Observe(ctx context.Context, path string, category changes.Category, candidate, modified bool, replacements int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := t.entry(path)
	if candidate {
		advance(info, StatusCandidate)
	}
	if modified {
		advance(info, StatusRewritten)
		info.Replacements += replacements
		info.Categories = append(info.Categories, category)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("category", string(category)).
		Str("status", info.Status.String()).
		Int("replacements", replacements).
		Msg(t.formatter.FormatFileOperation(*info))
}

// 💾 Commit marks path as written back
func (t *Tracker) Commit(ctx context.Context, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := t.entry(path)
	advance(info, StatusCommitted)
	info.Writes++

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("writes", info.Writes).
		Msg(t.formatter.FormatFileOperation(*info))
}

// ❌ Fail records err against path
func (t *Tracker) Fail(ctx context.Context, path string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := t.entry(path)
	info.Error = err
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg(t.formatter.FormatError(err))
}

// 🔍 Get returns the info of path
func (t *Tracker) Get(path string) (FileInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("%w: %s", ErrNotTracked, path)
	}
	return clone(info), nil
}

// 📋 List returns every tracked file sorted by path
func (t *Tracker) List() []FileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	files := make([]FileInfo, 0, len(t.files))
	for _, info := range t.files {
		files = append(files, clone(info))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Changed returns the files whose content changed, sorted by path
func (t *Tracker) Changed() []FileInfo {
	var out []FileInfo
	for _, info := range t.List() {
		if info.Status >= StatusRewritten {
			out = append(out, info)
		}
	}
	return out
}

// Count returns how many files are exactly in state s
func (t *Tracker) Count(s FileStatus) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, info := range t.files {
		if info.Status == s {
			n++
		}
	}
	return n
}

func clone(info *FileInfo) FileInfo {
	out := *info
	out.Categories = append([]changes.Category(nil), info.Categories...)
	return out
}

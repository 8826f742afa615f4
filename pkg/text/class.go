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

package text

import (
	"context"
	"strings"

	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/identifier"
)

// 🔤 ClassRewriter applies class changes to source text
type ClassRewriter struct {
	Changes []changes.ClassChange
}

// Category implements Rewriter
func (r *ClassRewriter) Category() changes.Category { return changes.Classes }

// Rewrite implements Rewriter
func (r *ClassRewriter) Rewrite(ctx context.Context, content string) Result {
	res := Result{Content: content}
	for _, c := range r.Changes {
		res.merge(ApplyClassChange(res.Content, c))
	}
	return res
}

// 🔄 ApplyClassChange renames every whole-token occurrence of c.Name. FooBar
// and strings containing Foo are untouched when renaming Foo.
func ApplyClassChange(src string, c changes.ClassChange) Result {
	if !strings.Contains(src, c.Name) {
		return Result{Content: src}
	}

	positions := identifier.Positions(src, c.Name)
	edits := make([]edit, 0, len(positions))
	for _, p := range positions {
		edits = append(edits, edit{start: p.Start, end: p.End, text: c.ReplaceWith})
	}
	return result(src, edits)
}

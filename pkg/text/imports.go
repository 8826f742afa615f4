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
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/identifier"
)

// module specifiers of import/export declarations, dynamic imports and require calls
var specifierRe = regexp.MustCompile(`(?:\bfrom\s*|\bimport\s*\(?\s*|\brequire\s*\(\s*)(["'])([^"'\n]+)["']`)

// 📦 ImportRewriter applies import changes to source text
type ImportRewriter struct {
	Changes []changes.ImportChange
}

// Category implements Rewriter
func (r *ImportRewriter) Category() changes.Category { return changes.Imports }

// Rewrite implements Rewriter
func (r *ImportRewriter) Rewrite(ctx context.Context, content string) Result {
	res := Result{Content: content}
	for _, c := range r.Changes {
		res.merge(ApplyImportChange(res.Content, c))
	}
	return res
}

// literalPrefix is the part of a glob before its first meta character
func literalPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, `*?[{\`); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

// 🔄 ApplyImportChange replaces module specifiers matching c.Module, keeping
// their quote style. Look-alikes inside comments and strings are untouched.
func ApplyImportChange(src string, c changes.ImportChange) Result {
	if !strings.Contains(src, literalPrefix(c.Module)) {
		return Result{Content: src}
	}

	// a specifier counts only when its quotes delimit a real string token
	literals := map[int]int{}
	for _, p := range identifier.StringLiterals(src) {
		literals[p.Start] = p.End
	}

	var edits []edit
	for _, m := range specifierRe.FindAllStringSubmatchIndex(src, -1) {
		start, end := m[4], m[5]
		if litEnd, ok := literals[m[2]]; !ok || litEnd != end+1 {
			continue
		}
		spec := src[start:end]
		if spec == c.ReplaceWith {
			continue
		}
		ok, err := doublestar.Match(c.Module, spec)
		if err != nil || !ok {
			continue
		}
		edits = append(edits, edit{start: start, end: end, text: c.ReplaceWith})
	}
	return result(src, edits)
}

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

// Package text rewrites template and source text according to change records.
// Every rewriter is a pure function over the text; callers decide what to do
// with the result.
package text

import (
	"context"
	"sort"
	"strings"

	"github.com/walteh/ngmigrate/pkg/changes"
)

// 📊 Result contains the outcome of applying changes to one text
type Result struct {
	// Content is the text after all changes, equal to the input when nothing changed
	Content string

	// Candidate is set when at least one change passed its substring pre-check
	Candidate bool

	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int
}

func (r *Result) merge(next Result) {
	r.Content = next.Content
	r.Candidate = r.Candidate || next.Candidate
	r.WasModified = r.WasModified || next.WasModified
	r.ReplacementCount += next.ReplacementCount
}

// 🔌 Rewriter applies one category of changes to file content
type Rewriter interface {
	// Category names the change category the rewriter handles
	Category() changes.Category

	// Rewrite applies every change of the category to content, in order
	Rewrite(ctx context.Context, content string) Result
}

// 🏭 Rewriters returns one rewriter per non-empty category of cs, in
// application order
func Rewriters(cs *changes.ChangeSet) []Rewriter {
	var out []Rewriter
	if len(cs.Selectors) > 0 {
		out = append(out, &SelectorRewriter{Changes: cs.Selectors})
	}
	if len(cs.Outputs) > 0 {
		out = append(out, &OutputRewriter{Changes: cs.Outputs})
	}
	if len(cs.Classes) > 0 {
		out = append(out, &ClassRewriter{Changes: cs.Classes})
	}
	if len(cs.Imports) > 0 {
		out = append(out, &ImportRewriter{Changes: cs.Imports})
	}
	return out
}

// ✂️ edit replaces src[start:end] with text
type edit struct {
	start int
	end   int
	text  string
}

// splice applies non-overlapping edits from the highest offset down so that
// earlier offsets stay valid
func splice(src string, edits []edit) string {
	if len(edits) == 0 {
		return src
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	var b strings.Builder
	b.Grow(len(src))
	tail := len(src)
	parts := make([]string, 0, 2*len(edits)+1)
	for _, e := range edits {
		parts = append(parts, src[e.end:tail], e.text)
		tail = e.start
	}
	parts = append(parts, src[:tail])
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}

func result(src string, edits []edit) Result {
	if len(edits) == 0 {
		return Result{Content: src, Candidate: true}
	}
	out := splice(src, edits)
	return Result{
		Content:          out,
		Candidate:        true,
		WasModified:      out != src,
		ReplacementCount: len(edits),
	}
}

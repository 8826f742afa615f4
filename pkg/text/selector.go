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

	"github.com/rs/zerolog"
	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/markup"
)

// 🏷️ SelectorRewriter applies selector changes to template markup
type SelectorRewriter struct {
	Changes []changes.SelectorChange
}

// Category implements Rewriter
func (r *SelectorRewriter) Category() changes.Category { return changes.Selectors }

// Rewrite implements Rewriter
func (r *SelectorRewriter) Rewrite(ctx context.Context, content string) Result {
	res := Result{Content: content}
	for _, c := range r.Changes {
		res.merge(ApplySelectorChange(ctx, res.Content, c))
	}
	return res
}

// 🔄 ApplySelectorChange renames or removes the component tag or directive
// attribute named by c. It does nothing unless "<selector" (components) or
// "selector" (directives) occurs in src.
func ApplySelectorChange(ctx context.Context, src string, c changes.SelectorChange) Result {
	pattern := c.Selector
	if c.Type == changes.ComponentKind {
		pattern = "<" + pattern
	}
	if !strings.Contains(src, pattern) {
		return Result{Content: src}
	}

	tags := markup.Scan(src)
	var edits []edit
	switch c.Type {
	case changes.ComponentKind:
		if c.Remove {
			edits = removeElements(ctx, src, tags, c.Selector)
		} else {
			edits = renameTags(tags, c.Selector, c.ReplaceWith)
		}
	case changes.DirectiveKind:
		if c.Remove {
			edits = removeDirective(src, tags, c.Selector)
		} else {
			edits = renameDirective(src, tags, c.Selector, c.ReplaceWith)
		}
	}
	return result(src, edits)
}

// removeElements deletes whole elements, nested same-named ones included
func removeElements(ctx context.Context, src string, tags []markup.Tag, name string) []edit {
	elements, unclosed := markup.Elements(tags, name)
	for _, t := range unclosed {
		zerolog.Ctx(ctx).Debug().
			Str("selector", name).
			Int("offset", t.Start).
			Msg("start tag has no matching end tag, leaving it in place")
	}

	edits := make([]edit, 0, len(elements))
	for _, e := range elements {
		edits = append(edits, edit{start: e.Start(), end: e.End()})
	}
	return edits
}

// renameTags rewrites the name right after '<' or '</'
func renameTags(tags []markup.Tag, name, replaceWith string) []edit {
	var edits []edit
	for _, t := range tags {
		if t.Name != name {
			continue
		}
		start := t.Start + 1
		if t.Kind == markup.EndTag {
			start++
		}
		edits = append(edits, edit{start: start, end: start + len(t.Name), text: replaceWith})
	}
	return edits
}

// directive attributes are plain, bracket-bound or structural
func isDirectiveBinding(prefix string) bool {
	return prefix == "" || prefix == "[" || prefix == "*"
}

func removeDirective(src string, tags []markup.Tag, name string) []edit {
	var edits []edit
	for _, t := range tags {
		if !t.IsOpening() {
			continue
		}
		raw := t.Raw(src)
		if !strings.Contains(raw, name) {
			continue
		}
		for _, a := range markup.Attributes(raw) {
			if prefix, core, _ := a.Binding(); core == name && isDirectiveBinding(prefix) {
				edits = append(edits, edit{start: t.Start + a.Start, end: t.Start + a.End})
			}
		}
	}
	return edits
}

func renameDirective(src string, tags []markup.Tag, name, replaceWith string) []edit {
	var edits []edit
	for _, t := range tags {
		if !t.IsOpening() {
			continue
		}
		raw := t.Raw(src)
		if !strings.Contains(raw, name) {
			continue
		}
		for _, a := range markup.Attributes(raw) {
			prefix, core, _ := a.Binding()
			if core != name || !(isDirectiveBinding(prefix) || prefix == "[(") {
				continue
			}
			start := t.Start + a.NameStart + len(prefix)
			edits = append(edits, edit{start: start, end: start + len(core), text: replaceWith})
		}
	}
	return edits
}

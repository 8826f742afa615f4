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
	"github.com/walteh/ngmigrate/pkg/markup"
)

// 📣 OutputRewriter applies output changes to template markup
type OutputRewriter struct {
	Changes []changes.OutputChange
}

// Category implements Rewriter
func (r *OutputRewriter) Category() changes.Category { return changes.Outputs }

// Rewrite implements Rewriter
func (r *OutputRewriter) Rewrite(ctx context.Context, content string) Result {
	res := Result{Content: content}
	for _, c := range r.Changes {
		res.merge(ApplyOutputChange(ctx, res.Content, c))
	}
	return res
}

// 👤 OwnerMatcher returns the tag matcher for an owner: components match by
// tag name, directives by an attribute carrying the selector
func OwnerMatcher(o changes.Owner) markup.Matcher {
	switch o.Type {
	case changes.ComponentKind:
		return componentOwner(o.Selector)
	case changes.DirectiveKind:
		return directiveOwner(o.Selector)
	}
	return func(string, markup.Tag) bool { return false }
}

func componentOwner(selector string) markup.Matcher {
	return func(src string, t markup.Tag) bool {
		return t.Name == selector
	}
}

func directiveOwner(selector string) markup.Matcher {
	return func(src string, t markup.Tag) bool {
		raw := t.Raw(src)
		return strings.Contains(raw, selector) && markup.HasAttribute(raw, selector)
	}
}

// 🔄 ApplyOutputChange renames or removes the (name) event binding, only on
// elements owned by c.Owner. The two-way [(name)] form is renamed or removed
// along with it. It does nothing unless both the owner selector and
// the output name occur in src.
func ApplyOutputChange(ctx context.Context, src string, c changes.OutputChange) Result {
	if !strings.Contains(src, c.Owner.Selector) || !strings.Contains(src, c.Name) {
		return Result{Content: src}
	}

	event := "(" + c.Name + ")"
	twoWay := "[" + event + "]"

	var edits []edit
	for _, t := range markup.Find(src, markup.Scan(src), OwnerMatcher(c.Owner)) {
		raw := t.Raw(src)
		if !strings.Contains(raw, event) {
			continue
		}
		for _, a := range markup.Attributes(raw) {
			switch {
			case (a.Name == event || a.Name == twoWay) && c.Remove:
				edits = append(edits, edit{start: t.Start + a.Start, end: t.Start + a.End})
			case a.Name == event:
				edits = append(edits, edit{
					start: t.Start + a.NameStart,
					end:   t.Start + a.NameEnd,
					text:  "(" + c.ReplaceWith + ")",
				})
			case a.Name == twoWay:
				edits = append(edits, edit{
					start: t.Start + a.NameStart,
					end:   t.Start + a.NameEnd,
					text:  "[(" + c.ReplaceWith + ")]",
				})
			}
		}
	}
	return result(src, edits)
}

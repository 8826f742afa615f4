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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/ngmigrate/pkg/changes"
)

func TestApplySelectorChange(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		change       changes.SelectorChange
		want         string
		wantCount    int
		wantModified bool
		wantCand     bool
	}{
		{
			name:         "remove_component",
			content:      `<div><old-comp>inner</old-comp></div>`,
			change:       changes.SelectorChange{Type: changes.ComponentKind, Selector: "old-comp", Remove: true},
			want:         `<div></div>`,
			wantCount:    1,
			wantModified: true,
			wantCand:     true,
		},
		{
			name:         "remove_nested_component",
			content:      `<a><old-comp><old-comp>x</old-comp>y</old-comp></a><old-comp/>`,
			change:       changes.SelectorChange{Type: changes.ComponentKind, Selector: "old-comp", Remove: true},
			want:         `<a></a>`,
			wantCount:    2,
			wantModified: true,
			wantCand:     true,
		},
		{
			name:     "remove_unclosed_component_is_left_alone",
			content:  `<div><old-comp>inner</div>`,
			change:   changes.SelectorChange{Type: changes.ComponentKind, Selector: "old-comp", Remove: true},
			want:     `<div><old-comp>inner</div>`,
			wantCand: true,
		},
		{
			name:         "rename_component",
			content:      "<igx-tab-bar [x]=\"1\">\n  <igx-tab-bar-item></igx-tab-bar-item>\n</igx-tab-bar>",
			change:       changes.SelectorChange{Type: changes.ComponentKind, Selector: "igx-tab-bar", ReplaceWith: "igx-bottom-nav"},
			want:         "<igx-bottom-nav [x]=\"1\">\n  <igx-tab-bar-item></igx-tab-bar-item>\n</igx-bottom-nav>",
			wantCount:    2,
			wantModified: true,
			wantCand:     true,
		},
		{
			name:     "component_in_comment_untouched",
			content:  `<!-- <old-comp></old-comp> --><p></p>`,
			change:   changes.SelectorChange{Type: changes.ComponentKind, Selector: "old-comp", Remove: true},
			want:     `<!-- <old-comp></old-comp> --><p></p>`,
			wantCand: true,
		},
		{
			name:         "remove_directive_plain_and_bound",
			content:      `<div igxForRemote class="a"></div><span [igxForRemote]="true" id="b"></span>`,
			change:       changes.SelectorChange{Type: changes.DirectiveKind, Selector: "igxForRemote", Remove: true},
			want:         `<div class="a"></div><span id="b"></span>`,
			wantCount:    2,
			wantModified: true,
			wantCand:     true,
		},
		{
			name:         "remove_directive_single_quoted",
			content:      `<div a='1' igxFoo='x > y' b></div>`,
			change:       changes.SelectorChange{Type: changes.DirectiveKind, Selector: "igxFoo", Remove: true},
			want:         `<div a='1' b></div>`,
			wantCount:    1,
			wantModified: true,
			wantCand:     true,
		},
		{
			name:     "remove_directive_ignores_longer_name",
			content:  `<div igxFooBar></div>`,
			change:   changes.SelectorChange{Type: changes.DirectiveKind, Selector: "igxFoo", Remove: true},
			want:     `<div igxFooBar></div>`,
			wantCand: true,
		},
		{
			name:         "rename_directive",
			content:      `<div igxToggle [igxToggle]="x" *igxToggle title="igxToggle">igxToggle</div>`,
			change:       changes.SelectorChange{Type: changes.DirectiveKind, Selector: "igxToggle", ReplaceWith: "igxDrop"},
			want:         `<div igxDrop [igxDrop]="x" *igxDrop title="igxToggle">igxToggle</div>`,
			wantCount:    3,
			wantModified: true,
			wantCand:     true,
		},
		{
			name:    "precheck_skips",
			content: `<div></div>`,
			change:  changes.SelectorChange{Type: changes.ComponentKind, Selector: "old-comp", Remove: true},
			want:    `<div></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplySelectorChange(context.Background(), tt.content, tt.change)
			assert.Equal(t, tt.want, got.Content, "content should match")
			assert.Equal(t, tt.wantCount, got.ReplacementCount, "replacement count should match")
			assert.Equal(t, tt.wantModified, got.WasModified, "modified flag should match")
			assert.Equal(t, tt.wantCand, got.Candidate, "candidate flag should match")
		})
	}
}

func TestSelectorRenameIsIdempotent(t *testing.T) {
	change := changes.SelectorChange{Type: changes.ComponentKind, Selector: "igx-tab-bar", ReplaceWith: "igx-bottom-nav"}
	once := ApplySelectorChange(context.Background(), `<igx-tab-bar></igx-tab-bar>`, change)
	twice := ApplySelectorChange(context.Background(), once.Content, change)

	assert.Equal(t, once.Content, twice.Content)
	assert.False(t, twice.WasModified)
}

func TestSelectorRewriterAppliesInOrder(t *testing.T) {
	r := &SelectorRewriter{Changes: []changes.SelectorChange{
		{Type: changes.ComponentKind, Selector: "a-old", ReplaceWith: "a-mid"},
		{Type: changes.ComponentKind, Selector: "a-mid", ReplaceWith: "a-new"},
		{Type: changes.DirectiveKind, Selector: "igxGone", Remove: true},
	}}

	got := r.Rewrite(context.Background(), `<a-old igxGone></a-old>`)
	assert.Equal(t, `<a-new></a-new>`, got.Content)
	assert.Equal(t, 5, got.ReplacementCount)
	assert.True(t, got.WasModified)
	assert.Equal(t, changes.Selectors, r.Category())
}

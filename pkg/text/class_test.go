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
	"github.com/walteh/ngmigrate/pkg/markup"
)

func markupTag(raw string) markup.Tag {
	return markup.Scan(raw)[0]
}

func TestApplyClassChange(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		change    changes.ClassChange
		want      string
		wantCount int
	}{
		{
			name:      "whole_token_only",
			content:   "const a = new Foo(); const b = new FooExtended();",
			change:    changes.ClassChange{Name: "Foo", ReplaceWith: "Bar"},
			want:      "const a = new Bar(); const b = new FooExtended();",
			wantCount: 1,
		},
		{
			name:      "multiple_occurrences_backward_splice",
			content:   "import A from 'x'; import A from 'x';",
			change:    changes.ClassChange{Name: "A", ReplaceWith: "Z"},
			want:      "import Z from 'x'; import Z from 'x';",
			wantCount: 2,
		},
		{
			name:      "longer_replacement",
			content:   "import { IgxTabBarComponent } from 'igniteui-angular';\nlet t: IgxTabBarComponent;",
			change:    changes.ClassChange{Name: "IgxTabBarComponent", ReplaceWith: "IgxBottomNavComponent"},
			want:      "import { IgxBottomNavComponent } from 'igniteui-angular';\nlet t: IgxBottomNavComponent;",
			wantCount: 2,
		},
		{
			name:      "string_mentions_untouched",
			content:   `const s = "Foo"; new Foo();`,
			change:    changes.ClassChange{Name: "Foo", ReplaceWith: "Bar"},
			want:      `const s = "Foo"; new Bar();`,
			wantCount: 1,
		},
		{
			name:      "division_after_postfix_increment",
			content:   "let z = i++ / n; new Foo(); let y = /Foo/;",
			change:    changes.ClassChange{Name: "Foo", ReplaceWith: "Bar"},
			want:      "let z = i++ / n; new Bar(); let y = /Foo/;",
			wantCount: 1,
		},
		{
			name:    "no_change",
			content: "const a = 1;",
			change:  changes.ClassChange{Name: "Foo", ReplaceWith: "Bar"},
			want:    "const a = 1;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyClassChange(tt.content, tt.change)
			assert.Equal(t, tt.want, got.Content)
			assert.Equal(t, tt.wantCount, got.ReplacementCount)
			assert.Equal(t, tt.wantCount > 0, got.WasModified)
		})
	}
}

func TestClassRenameIsIdempotent(t *testing.T) {
	r := &ClassRewriter{Changes: []changes.ClassChange{{Name: "Foo", ReplaceWith: "Bar"}}}
	once := r.Rewrite(context.Background(), "new Foo(FooBar)")
	twice := r.Rewrite(context.Background(), once.Content)

	assert.Equal(t, "new Bar(FooBar)", once.Content)
	assert.Equal(t, once.Content, twice.Content)
	assert.False(t, twice.WasModified)
}

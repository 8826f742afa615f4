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

package text_test

import (
	"context"
	"fmt"

	"github.com/walteh/ngmigrate/pkg/changes"
	"github.com/walteh/ngmigrate/pkg/text"
)

func Example() {
	toggle := changes.Owner{Type: changes.DirectiveKind, Selector: "igxToggle"}
	r := &text.OutputRewriter{Changes: []changes.OutputChange{
		{Name: "onOpen", ReplaceWith: "onOpened", Owner: toggle},
		{Name: "onClose", ReplaceWith: "onClosed", Owner: toggle},
	}}

	res := r.Rewrite(context.Background(), `<div igxToggle (onOpen)="open()" (onClose)="close()"></div>`)

	fmt.Println(res.Content)
	fmt.Println(res.ReplacementCount)
	// Output:
	// <div igxToggle (onOpened)="open()" (onClosed)="close()"></div>
	// 2
}

func ExampleApplyClassChange() {
	res := text.ApplyClassChange(
		"import { IgxTabBarModule } from 'igniteui-angular';",
		changes.ClassChange{Name: "IgxTabBarModule", ReplaceWith: "IgxBottomNavModule"},
	)

	fmt.Println(res.Content)
	// Output:
	// import { IgxBottomNavModule } from 'igniteui-angular';
}

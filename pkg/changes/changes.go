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

// Package changes holds the declarative change records a migration step
// applies: selector, output, class and import renames or removals.
package changes

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/ngmigrate/pkg/identifier"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind tells whether a selector names a component (tag) or a directive (attribute)
type Kind string

const (
	ComponentKind Kind = "component"
	DirectiveKind Kind = "directive"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k == ComponentKind || k == DirectiveKind
}

// 📂 Category is one independent migration dimension
type Category string

const (
	Selectors Category = "selectors"
	Outputs   Category = "outputs"
	Classes   Category = "classes"
	Imports   Category = "imports"
)

// Categories lists every category in application order
var Categories = []Category{Selectors, Outputs, Classes, Imports}

// 🔄 SelectorChange renames or removes a component tag or directive attribute
type SelectorChange struct {
	Type        Kind   `json:"type" yaml:"type"`
	Selector    string `json:"selector" yaml:"selector"`
	ReplaceWith string `json:"replaceWith,omitempty" yaml:"replaceWith,omitempty"`
	Remove      bool   `json:"remove,omitempty" yaml:"remove,omitempty"`
}

// 👤 Owner is the component or directive an output belongs to
type Owner struct {
	Type     Kind   `json:"type" yaml:"type"`
	Selector string `json:"selector" yaml:"selector"`
}

// 📣 OutputChange renames or removes an event binding on its owner's elements
type OutputChange struct {
	Name        string `json:"name" yaml:"name"`
	ReplaceWith string `json:"replaceWith,omitempty" yaml:"replaceWith,omitempty"`
	Remove      bool   `json:"remove,omitempty" yaml:"remove,omitempty"`
	Owner       Owner  `json:"owner" yaml:"owner"`
}

// 🔤 ClassChange renames an identifier in source files
type ClassChange struct {
	Name        string `json:"name" yaml:"name"`
	ReplaceWith string `json:"replaceWith" yaml:"replaceWith"`
}

// 📦 ImportChange rewrites module specifiers matching the Module glob
type ImportChange struct {
	Module      string `json:"module" yaml:"module"`
	ReplaceWith string `json:"replaceWith" yaml:"replaceWith"`
}

// 📚 ChangeSet is everything one migration step changes. List order is
// application order.
type ChangeSet struct {
	Selectors []SelectorChange
	Outputs   []OutputChange
	Classes   []ClassChange
	Imports   []ImportChange
}

// Len returns the number of records in category c
func (cs *ChangeSet) Len(c Category) int {
	if cs == nil {
		return 0
	}
	switch c {
	case Selectors:
		return len(cs.Selectors)
	case Outputs:
		return len(cs.Outputs)
	case Classes:
		return len(cs.Classes)
	case Imports:
		return len(cs.Imports)
	}
	return 0
}

// IsEmpty reports whether no category holds a record
func (cs *ChangeSet) IsEmpty() bool {
	for _, c := range Categories {
		if cs.Len(c) > 0 {
			return false
		}
	}
	return true
}

// 🔍 Validate checks every record
func (cs *ChangeSet) Validate() error {
	for i, c := range cs.Selectors {
		if err := c.Validate(); err != nil {
			return errors.Errorf("selectors[%d]: %w", i, err)
		}
	}
	for i, c := range cs.Outputs {
		if err := c.Validate(); err != nil {
			return errors.Errorf("outputs[%d]: %w", i, err)
		}
	}
	for i, c := range cs.Classes {
		if err := c.Validate(); err != nil {
			return errors.Errorf("classes[%d]: %w", i, err)
		}
	}
	for i, c := range cs.Imports {
		if err := c.Validate(); err != nil {
			return errors.Errorf("imports[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks a selector record
func (c SelectorChange) Validate() error {
	if !c.Type.Valid() {
		return errors.Errorf("unknown type %q", c.Type)
	}
	if c.Selector == "" {
		return errors.New("selector is required")
	}
	if !c.Remove && c.ReplaceWith == "" {
		return errors.Errorf("selector %q: replaceWith is required unless remove is set", c.Selector)
	}
	return nil
}

// Validate checks an output record
func (c OutputChange) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if !c.Remove && c.ReplaceWith == "" {
		return errors.Errorf("output %q: replaceWith is required unless remove is set", c.Name)
	}
	if !c.Owner.Type.Valid() {
		return errors.Errorf("output %q: unknown owner type %q", c.Name, c.Owner.Type)
	}
	if c.Owner.Selector == "" {
		return errors.Errorf("output %q: owner.selector is required", c.Name)
	}
	return nil
}

// Validate checks a class record
func (c ClassChange) Validate() error {
	if !identifier.IsIdentifier(c.Name) {
		return errors.Errorf("name %q is not an identifier", c.Name)
	}
	if c.ReplaceWith == "" {
		return errors.Errorf("class %q: replaceWith is required", c.Name)
	}
	return nil
}

// Validate checks an import record
func (c ImportChange) Validate() error {
	if c.Module == "" {
		return errors.New("module is required")
	}
	if !doublestar.ValidatePattern(c.Module) {
		return errors.Errorf("module %q is not a valid glob", c.Module)
	}
	if c.ReplaceWith == "" {
		return errors.Errorf("module %q: replaceWith is required", c.Module)
	}
	return nil
}

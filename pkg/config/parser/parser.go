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

package parser

import (
	"context"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser decodes one file format into a Go value
type Parser interface {
	// 📝 Parse decodes data into v
	Parse(ctx context.Context, filename string, data []byte, v any) error

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 Decode picks a parser by filename and decodes data into v
func Decode(ctx context.Context, filename string, data []byte, v any) error {
	p := GetParser(filename)
	if p == nil {
		return errors.Errorf("no parser found for file: %s", filename)
	}
	if err := p.Parse(ctx, filename, data, v); err != nil {
		return errors.Errorf("parsing %s: %w", filename, err)
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

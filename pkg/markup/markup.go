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

// Package markup locates tags, attributes and element spans in Angular
// template text without building a DOM. All offsets are byte offsets into the
// scanned text, so callers can splice edits back into the original source.
package markup

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// 🏷️ TagKind distinguishes the three tag shapes
type TagKind int

const (
	StartTag TagKind = iota
	EndTag
	SelfClosingTag
)

// 📄 Tag is one tag as written in the source
type Tag struct {
	Kind  TagKind
	Name  string // name with original casing
	Start int    // offset of '<'
	End   int    // offset just past '>'
}

// Raw returns the tag text from src
func (t Tag) Raw(src string) string {
	return src[t.Start:t.End]
}

// IsOpening reports whether the tag can carry attributes
func (t Tag) IsOpening() bool {
	return t.Kind == StartTag || t.Kind == SelfClosingTag
}

// 🔍 Scan returns every tag of src in document order. Text, comments and
// doctypes are skipped, so tags inside comments are never reported.
func Scan(src string) []Tag {
	z := html.NewTokenizer(strings.NewReader(src))

	var tags []Tag
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := z.Raw()
		start := offset
		offset += len(raw)

		var kind TagKind
		switch tt {
		case html.StartTagToken:
			kind = StartTag
		case html.EndTagToken:
			kind = EndTag
		case html.SelfClosingTagToken:
			kind = SelfClosingTag
		default:
			continue
		}
		tags = append(tags, Tag{
			Kind:  kind,
			Name:  tagName(src[start:offset]),
			Start: start,
			End:   offset,
		})
	}
	return tags
}

func tagName(raw string) string {
	raw = strings.TrimPrefix(raw, "<")
	raw = strings.TrimPrefix(raw, "/")
	end := strings.IndexAny(raw, " \t\n\r\f/>")
	if end < 0 {
		return raw
	}
	return raw[:end]
}

// 📦 Element is a start tag paired with its end tag
type Element struct {
	Open  Tag
	Close Tag // equals Open for self-closing elements
}

// Start is the offset of the opening '<'
func (e Element) Start() int { return e.Open.Start }

// End is the offset just past the closing '>'
func (e Element) End() int { return e.Close.End }

// 🌳 Elements pairs start and end tags named name, tracking nesting depth of
// same-named elements. Only outermost elements are returned; an element nested
// inside another same-named element is covered by its ancestor's span. Start
// tags that never close are returned separately in unclosed.
func Elements(tags []Tag, name string) (elements []Element, unclosed []Tag) {
	var open []Tag
	var pairs []Element
	for _, t := range tags {
		if t.Name != name {
			continue
		}
		switch t.Kind {
		case SelfClosingTag:
			pairs = append(pairs, Element{Open: t, Close: t})
		case StartTag:
			open = append(open, t)
		case EndTag:
			if len(open) == 0 {
				continue
			}
			o := open[len(open)-1]
			open = open[:len(open)-1]
			pairs = append(pairs, Element{Open: o, Close: t})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Start() < pairs[j].Start() })
	lastEnd := -1
	for _, p := range pairs {
		if p.Start() < lastEnd {
			continue
		}
		elements = append(elements, p)
		lastEnd = p.End()
	}
	return elements, open
}

// 🔗 Matcher selects opening tags
type Matcher func(src string, t Tag) bool

// Find returns the opening tags of tags accepted by m
func Find(src string, tags []Tag, m Matcher) []Tag {
	var out []Tag
	for _, t := range tags {
		if t.IsOpening() && m(src, t) {
			out = append(out, t)
		}
	}
	return out
}

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

package identifier

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 📍 Position is the half-open byte range [Start, End) of one identifier
type Position struct {
	Start int
	End   int
}

// 🔍 Positions returns every place name occurs in src as a complete identifier
// token, in ascending order. Occurrences inside comments, string literals and
// the text portion of template literals are not reported.
func Positions(src, name string) []Position {
	if name == "" || !strings.Contains(src, name) {
		return nil
	}

	var out []Position
	s := newScanner(src)
	for {
		tok := s.next()
		if tok.kind == tokenEOF {
			break
		}
		if tok.kind == tokenIdentifier && tok.end-tok.start == len(name) && src[tok.start:tok.end] == name {
			out = append(out, Position{Start: tok.start, End: tok.end})
		}
	}
	return out
}

// 🧵 StringLiterals returns the spans of every quoted string literal in src,
// quotes included, in ascending order. Quotes inside comments, template text
// and other strings start no literal.
func StringLiterals(src string) []Position {
	var out []Position
	s := newScanner(src)
	for {
		tok := s.next()
		if tok.kind == tokenEOF {
			break
		}
		if tok.kind == tokenString {
			out = append(out, Position{Start: tok.start, End: tok.end})
		}
	}
	return out
}

// ✅ IsIdentifier reports whether s is a single legal identifier token
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenPrivate
	tokenNumber
	tokenString
	tokenTemplate
	tokenRegex
	tokenPunct
)

type token struct {
	kind  tokenKind
	start int
	end   int
}

// keywords after which a slash starts a regular expression, not a division
var regexKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

type scanner struct {
	src string
	pos int

	// one entry per open brace, true when it opened a template interpolation
	braces []bool
	prev   token
	hasPrv bool
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) peek(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) next() token {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		default:
			tok := s.scanToken()
			s.prev = tok
			s.hasPrv = true
			return tok
		}
	}
	return token{kind: tokenEOF, start: len(s.src), end: len(s.src)}
}

func (s *scanner) scanToken() token {
	start := s.pos
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])

	switch {
	case isIdentStart(r):
		s.pos += size
		s.consumeIdentPart()
		return token{kind: tokenIdentifier, start: start, end: s.pos}
	case unicode.IsDigit(r):
		s.pos += size
		s.consumeNumber()
		return token{kind: tokenNumber, start: start, end: s.pos}
	}

	switch r {
	case '#':
		s.pos++
		s.consumeIdentPart()
		return token{kind: tokenPrivate, start: start, end: s.pos}
	case '\'', '"':
		s.scanString(byte(r))
		return token{kind: tokenString, start: start, end: s.pos}
	case '`':
		s.pos++
		s.scanTemplate()
		return token{kind: tokenTemplate, start: start, end: s.pos}
	case '{':
		s.pos++
		s.braces = append(s.braces, false)
		return token{kind: tokenPunct, start: start, end: s.pos}
	case '}':
		s.pos++
		if n := len(s.braces); n > 0 {
			interpolation := s.braces[n-1]
			s.braces = s.braces[:n-1]
			if interpolation {
				s.scanTemplate()
				return token{kind: tokenTemplate, start: start, end: s.pos}
			}
		}
		return token{kind: tokenPunct, start: start, end: s.pos}
	case '.':
		s.pos++
		if unicode.IsDigit(rune(s.peek(0))) {
			s.consumeNumber()
			return token{kind: tokenNumber, start: start, end: s.pos}
		}
		return token{kind: tokenPunct, start: start, end: s.pos}
	case '+', '-':
		s.pos++
		if s.peek(0) == byte(r) {
			s.pos++
		}
		return token{kind: tokenPunct, start: start, end: s.pos}
	case '/':
		if s.regexAllowed() && s.scanRegex() {
			return token{kind: tokenRegex, start: start, end: s.pos}
		}
		s.pos = start + 1
		return token{kind: tokenPunct, start: start, end: s.pos}
	}

	s.pos += size
	return token{kind: tokenPunct, start: start, end: s.pos}
}

func (s *scanner) consumeIdentPart() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(r) {
			return
		}
		s.pos += size
	}
}

// numbers swallow trailing letters so 0x1F or 1e10 never yield identifiers
func (s *scanner) consumeNumber() {
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(r) && r != '.' {
			return
		}
		s.pos += size
	}
}

func (s *scanner) skipLineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) skipBlockComment() {
	end := strings.Index(s.src[s.pos+2:], "*/")
	if end < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += 2 + end + 2
}

// scanString stops at the closing quote or, for unterminated literals, at the
// end of the line
func (s *scanner) scanString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote:
			s.pos++
			return
		case '\n':
			return
		}
		s.pos++
	}
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// scanTemplate consumes template text up to the closing backtick or the start
// of an interpolation
func (s *scanner) scanTemplate() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '`':
			s.pos++
			return
		case '$':
			if s.peek(1) == '{' {
				s.pos += 2
				s.braces = append(s.braces, true)
				return
			}
		}
		s.pos++
	}
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

func (s *scanner) regexAllowed() bool {
	if !s.hasPrv {
		return true
	}
	switch s.prev.kind {
	case tokenIdentifier:
		return regexKeywords[s.src[s.prev.start:s.prev.end]]
	case tokenPunct:
		switch s.src[s.prev.start:s.prev.end] {
		// postfix ++ and -- always end an expression
		case ")", "]", "}", "++", "--":
			return false
		}
		return true
	default:
		return false
	}
}

// scanRegex reports false when no closing slash exists on the same line
func (s *scanner) scanRegex() bool {
	i := s.pos + 1
	inClass := false
	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			i += 2
			continue
		case '\n':
			return false
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.pos = i + 1
				s.consumeIdentPart()
				return true
			}
		}
		i++
	}
	return false
}

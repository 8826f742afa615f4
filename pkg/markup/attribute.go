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

package markup

import "strings"

// 🧩 Attribute is one attribute of a start tag. Offsets are relative to the
// start of the tag text.
type Attribute struct {
	Name      string // as written, including binding decorations like [x] or (x)
	Value     string // unquoted value
	HasValue  bool
	Start     int // start of the whitespace preceding the name
	NameStart int
	NameEnd   int
	End       int // just past the value, or the name when there is no value
}

// Binding splits a decorated attribute name into its decoration and core name
func (a Attribute) Binding() (prefix, core, suffix string) {
	return SplitBinding(a.Name)
}

// 🎀 SplitBinding splits Angular binding decorations from an attribute name:
// "[(ngModel)]" -> "[(", "ngModel", ")]". Template references (#x) and
// animation bindings (@x) keep their sigil in prefix.
func SplitBinding(name string) (prefix, core, suffix string) {
	for _, d := range [][2]string{{"[(", ")]"}, {"[", "]"}, {"(", ")"}} {
		if strings.HasPrefix(name, d[0]) && strings.HasSuffix(name, d[1]) && len(name) > len(d[0])+len(d[1]) {
			return d[0], name[len(d[0]) : len(name)-len(d[1])], d[1]
		}
	}
	for _, sigil := range []string{"*", "#", "@"} {
		if strings.HasPrefix(name, sigil) && len(name) > 1 {
			return sigil, name[1:], ""
		}
	}
	return "", name, ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// 📝 Attributes parses the attributes of a start tag as written in raw. Quoted
// values may contain '>' and whitespace.
func Attributes(raw string) []Attribute {
	i := strings.IndexByte(raw, '<') + 1
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}

	var attrs []Attribute
	for i < len(raw) {
		wsStart := i
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}
		if raw[i] == '/' || raw[i] == '=' {
			i++
			continue
		}

		a := Attribute{Start: wsStart, NameStart: i}
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && !(raw[i] == '/' && i+1 < len(raw) && raw[i+1] == '>') {
			i++
		}
		a.NameEnd = i
		a.Name = raw[a.NameStart:a.NameEnd]
		a.End = i

		j := i
		for j < len(raw) && isSpace(raw[j]) {
			j++
		}
		if j < len(raw) && raw[j] == '=' {
			j++
			for j < len(raw) && isSpace(raw[j]) {
				j++
			}
			a.HasValue = true
			if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
				quote := raw[j]
				end := strings.IndexByte(raw[j+1:], quote)
				if end < 0 {
					a.Value = raw[j+1:]
					j = len(raw)
				} else {
					a.Value = raw[j+1 : j+1+end]
					j = j + 1 + end + 1
				}
			} else {
				vs := j
				for j < len(raw) && !isSpace(raw[j]) && raw[j] != '>' {
					j++
				}
				a.Value = raw[vs:j]
			}
			a.End = j
			i = j
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// 🔎 HasAttribute reports whether the start tag raw carries an attribute whose
// core name is name, in any binding form
func HasAttribute(raw, name string) bool {
	for _, a := range Attributes(raw) {
		if _, core, _ := a.Binding(); core == name {
			return true
		}
	}
	return false
}

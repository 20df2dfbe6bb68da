/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package paths models state paths and their canonical string form.
//
// A Path is an ordered sequence of segments addressing a location in the
// external state tree. Two paths are equal iff their canonical strings,
// produced by joining segments with a separator, are equal.
package paths

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Separator is the default canonical segment separator.
const Separator = "."

// Path is an ordered sequence of path segments.
type Path []string

// Of builds a Path from string and integer segments. Any other segment type
// is formatted with fmt's %v verb.
func Of(segments ...any) Path {
	p := make(Path, 0, len(segments))
	for _, s := range segments {
		switch v := s.(type) {
		case string:
			p = append(p, v)
		case int:
			p = append(p, strconv.Itoa(v))
		case int64:
			p = append(p, strconv.FormatInt(v, 10))
		case uint:
			p = append(p, strconv.FormatUint(uint64(v), 10))
		case uint64:
			p = append(p, strconv.FormatUint(v, 10))
		case fmt.Stringer:
			p = append(p, v.String())
		default:
			p = append(p, fmt.Sprintf("%v", v))
		}
	}
	return p
}

// Parse splits a canonical string into a Path. An empty string yields an
// empty Path.
func Parse(s, sep string) Path {
	if s == "" {
		return Path{}
	}
	if sep == "" {
		sep = Separator
	}
	return Path(strings.Split(s, sep))
}

// Join returns the canonical string of p using sep.
func (p Path) Join(sep string) string {
	if sep == "" {
		sep = Separator
	}
	return strings.Join(p, sep)
}

// String returns the canonical string using the default Separator.
func (p Path) String() string {
	return p.Join(Separator)
}

// Child returns a new Path extended with segment.
func (p Path) Child(segment string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}

// Set is an unordered set of canonical path strings.
// Insertion is idempotent and commutative.
type Set map[string]struct{}

// NewSet returns a Set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts p.
func (s Set) Add(p string) { s[p] = struct{}{} }

// Has reports whether p is present.
func (s Set) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of paths.
func (s Set) Len() int { return len(s) }

// Sorted returns the paths in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether s and o hold the same paths.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

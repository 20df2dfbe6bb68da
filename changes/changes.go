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

// Package changes models change notifications from the state store and
// intersects them with the set of mounted subscribers.
//
// A Tree mirrors the shape of the state tree. A leaf value of true marks
// "this exact path changed"; a nested map marks "something under this prefix
// changed". Any other value is treated as a node without children.
//
// Matching is by prefix walk: every key visited on the way down is looked
// up as a canonical path. A subscriber of "a.b" therefore sees changes
// reported at "a.b" and at "a.b.c". The reverse is not matched: a subscriber
// of "a.b.c" is not notified by a report that stops at {a: {b: true}}.
// Stores must report changes at least as deep as they occurred.
package changes

import (
	"sort"

	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/paths"
)

// Tree is a nested change notification.
type Tree map[string]any

// Source answers which components subscribe to a canonical path.
type Source interface {
	Lookup(path string) []*component.Instance
}

// Affected walks t depth-first and returns every component subscribed to a
// visited prefix, de-duplicated by identity in first-seen order. Keys are
// visited in lexicographic order at each level so the result is
// deterministic. sep joins segments; empty means paths.Separator.
func Affected(t Tree, src Source, sep string) []*component.Instance {
	if src == nil || len(t) == 0 {
		return nil
	}
	if sep == "" {
		sep = paths.Separator
	}
	w := &walk{
		src:  src,
		sep:  sep,
		seen: make(map[*component.Instance]struct{}),
	}
	w.level(t, make(paths.Path, 0, 8))
	return w.out
}

type walk struct {
	src  Source
	sep  string
	seen map[*component.Instance]struct{}
	out  []*component.Instance
}

func (w *walk) level(node map[string]any, prefix paths.Path) {
	for _, key := range sortedKeys(node) {
		prefix = append(prefix, key)
		for _, c := range w.src.Lookup(prefix.Join(w.sep)) {
			if _, dup := w.seen[c]; dup {
				continue
			}
			w.seen[c] = struct{}{}
			w.out = append(w.out, c)
		}
		if children, ok := asMap(node[key]); ok {
			w.level(children, prefix)
		}
		prefix = prefix[:len(prefix)-1]
	}
}

// asMap returns v as a child level unless v is the literal marker true.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

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

package changes

import (
	"dirpx.dev/rerender/paths"
)

// FromPaths builds a Tree marking each path as changed.
func FromPaths(list ...paths.Path) Tree {
	t := Tree{}
	for _, p := range list {
		t.Mark(p)
	}
	return t
}

// Mark records p as changed. Marking a path below an existing true leaf
// turns the leaf into a level so the deeper key is visited too; marking a
// prefix of an existing level leaves the level in place.
func (t Tree) Mark(p paths.Path) {
	if len(p) == 0 {
		return
	}
	level := map[string]any(t)
	for i, seg := range p {
		last := i == len(p)-1
		cur, exists := level[seg]
		if last {
			if !exists {
				level[seg] = true
			}
			return
		}
		next, ok := asMap(cur)
		if !ok {
			next = map[string]any{}
			level[seg] = next
		}
		level = next
	}
}

// Merge marks every changed leaf of o in t.
func (t Tree) Merge(o Tree) {
	for _, p := range Leaves(o) {
		t.Mark(p)
	}
}

// Leaves lists the changed leaf paths of t in traversal order.
func Leaves(t Tree) []paths.Path {
	var out []paths.Path
	var rec func(node map[string]any, prefix paths.Path)
	rec = func(node map[string]any, prefix paths.Path) {
		for _, key := range sortedKeys(node) {
			p := prefix.Child(key)
			children, ok := asMap(node[key])
			if !ok || len(children) == 0 {
				out = append(out, p)
				continue
			}
			rec(children, p)
		}
	}
	rec(t, nil)
	return out
}

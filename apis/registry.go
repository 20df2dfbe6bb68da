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

package apis

import (
	"dirpx.dev/rerender/component"
)

// Registry maps canonical paths to the mounted components subscribed to them.
//
// Invariants:
//   - a component appears under a path iff that path is in the set it most
//     recently registered;
//   - a path entry is removed as soon as its component list becomes empty;
//   - within one path, components are kept in insertion order without
//     duplicates (by identity).
type Registry interface {
	// Register subscribes c to every path in paths. No-op for empty paths.
	Register(c *component.Instance, paths []string)
	// Unregister removes c from every path. It reports false (a no-op) when
	// c holds no subscriptions.
	Unregister(c *component.Instance) bool
	// Update replaces c's subscriptions with paths.
	Update(c *component.Instance, paths []string)
	// Lookup returns a copy of the components subscribed to path.
	Lookup(path string) []*component.Instance
	// Paths returns the paths c is subscribed to, sorted.
	Paths(c *component.Instance) []string
	// Entries returns a snapshot sorted by path.
	Entries() []Entry
	// Count returns the number of path entries.
	Count() int
	// Components returns the number of distinct subscribed components.
	Components() int
	// Reset clears all entries.
	Reset()
}

// Entry is a single path and its subscribers in a Registry snapshot.
type Entry struct {
	// Path is the canonical path.
	Path string
	// Components are the subscribers in insertion order.
	Components []*component.Instance
}

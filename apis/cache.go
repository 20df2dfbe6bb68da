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

// BuildFunc renders a node from props and resolved state.
type BuildFunc func(props, state map[string]any) Node

// StateFunc resolves the state inputs of a memoized render.
type StateFunc func() map[string]any

// Cache memoizes rendered output by a caller-supplied identity key.
type Cache interface {
	// Render returns the cached output for key when props and the resolved
	// state are shallowly equal to the previous render's; otherwise it calls
	// build and caches the result. An empty key always builds.
	Render(key string, props map[string]any, state StateFunc, build BuildFunc) Node
	// Evict drops the entry for key and reports whether one existed.
	Evict(key string) bool
	// Len returns the number of entries.
	Len() int
	// Stats returns cumulative counters.
	Stats() CacheStats
	// Reset drops all entries. Counters are kept.
	Reset()
}

// CacheStats are cumulative memoization counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Bypasses  uint64
	Evictions uint64
}

// KeySetter is implemented by nodes whose identity key can be stamped after
// construction. The memoization cache stamps its key on built output so the
// node's destruction can evict the entry.
type KeySetter interface {
	SetKey(key string)
}

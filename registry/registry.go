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

package registry

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/paths"
)

var (
	// ErrNotRegistered is reported (and logged) when a component without
	// subscriptions is unregistered. Double unregistration can legitimately
	// happen at patch boundaries, so it is never returned as a failure.
	ErrNotRegistered = errors.New("rerender(registry): component not registered")
)

// Option configures a registry.
type Option func(*registry)

// WithLogger sets the logger for mutation traces. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New constructs an empty dependency Registry.
func New(opts ...Option) apis.Registry {
	r := &registry{
		m:    make(map[string][]*component.Instance),
		subs: make(map[*component.Instance]paths.Set),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// registry is a mutex-guarded map of path -> ordered subscribers, with a
// reverse index of each component's subscribed paths.
type registry struct {
	// mu guards m and subs.
	mu sync.RWMutex
	// m maps canonical path to subscribers in insertion order.
	m map[string][]*component.Instance
	// subs maps each subscribed component to its current path set.
	subs map[*component.Instance]paths.Set
	log  *slog.Logger
}

// Register appends c to each path's list unless already present.
func (r *registry) Register(c *component.Instance, ps []string) {
	if c == nil || len(ps) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(c, ps)
}

func (r *registry) register(c *component.Instance, ps []string) {
	set, ok := r.subs[c]
	if !ok {
		set = paths.NewSet()
		r.subs[c] = set
	}
	for _, p := range ps {
		if set.Has(p) {
			continue
		}
		set.Add(p)
		r.m[p] = append(r.m[p], c)
	}
	r.log.Debug("registry: registered", "component", c.String(), "paths", len(set))
}

// Unregister removes c from every entry, dropping entries that become empty.
func (r *registry) Unregister(c *component.Instance) bool {
	if c == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unregister(c)
}

func (r *registry) unregister(c *component.Instance) bool {
	set, ok := r.subs[c]
	if !ok {
		r.log.Debug("registry: unregister is a no-op", "component", c.String(), "error", ErrNotRegistered)
		return false
	}
	for p := range set {
		list := r.m[p]
		for i, x := range list {
			if x == c {
				list = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(r.m, p)
		} else {
			r.m[p] = list
		}
	}
	delete(r.subs, c)
	r.log.Debug("registry: unregistered", "component", c.String(), "paths", len(set))
	return true
}

// Update is Unregister followed by Register, atomically.
func (r *registry) Update(c *component.Instance, ps []string) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregister(c)
	if len(ps) > 0 {
		r.register(c, ps)
	}
}

// Lookup returns a copy of the subscribers of p.
func (r *registry) Lookup(p string) []*component.Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.m[p]
	if len(list) == 0 {
		return nil
	}
	out := make([]*component.Instance, len(list))
	copy(out, list)
	return out
}

// Paths returns c's subscribed paths, sorted.
func (r *registry) Paths(c *component.Instance) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.subs[c]
	if !ok {
		return nil
	}
	return set.Sorted()
}

// Entries returns a snapshot for diagnostics, sorted by path.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]apis.Entry, 0, len(r.m))
	for p, list := range r.m {
		cs := make([]*component.Instance, len(list))
		copy(cs, list)
		entries = append(entries, apis.Entry{Path: p, Components: cs})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// Count returns the number of path entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Components returns the number of distinct subscribed components.
func (r *registry) Components() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Reset clears all entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[string][]*component.Instance)
	r.subs = make(map[*component.Instance]paths.Set)
}

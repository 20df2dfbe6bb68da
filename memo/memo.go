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

// Package memo implements the per-component memoization cache.
//
// Entries are keyed by a caller-supplied identity key and hold the last
// output together with the props and resolved state that produced it. A
// render whose props and state are shallowly equal to the cached pair
// returns the cached output object unchanged.
//
// Cache also implements apis.MountObserver: destroying a node whose key
// matches an entry evicts that entry. Built output is stamped with the key
// when it implements apis.KeySetter and carries no key of its own; output
// that cannot carry the key is never evicted by unmount and must be dropped
// with Evict.
package memo

import (
	"log/slog"
	"sync"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/memo/strategy"
	uref "dirpx.dev/rerender/utils/reflect"
)

type entry struct {
	props map[string]any
	state map[string]any
	out   apis.Node
}

// Cache is an apis.Cache. The zero value is not usable; call New.
type Cache struct {
	strategy strategy.Strategy
	log      *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	stats   apis.CacheStats
}

// Ensure Cache implements apis.Cache and apis.MountObserver.
var (
	_ apis.Cache         = (*Cache)(nil)
	_ apis.MountObserver = (*Cache)(nil)
)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns an empty cache using s.
func New(s strategy.Strategy, opts ...Option) *Cache {
	c := &Cache{
		strategy: s,
		log:      slog.Default(),
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strategy returns the cache strategy.
func (c *Cache) Strategy() strategy.Strategy { return c.strategy }

// Render implements apis.Cache.
//
// build runs without the cache lock held, so it may render further memoized
// components.
func (c *Cache) Render(key string, props map[string]any, state apis.StateFunc, build apis.BuildFunc) apis.Node {
	// state is resolved on every path, bypass included: build always
	// receives resolved state.
	var st map[string]any
	if state != nil {
		st = state()
	}

	if key == "" || c.strategy == strategy.None {
		c.mu.Lock()
		c.stats.Bypasses++
		c.mu.Unlock()
		recordLookup("bypass")
		return build(props, st)
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && uref.ShallowEqual(e.props, props) && uref.ShallowEqual(e.state, st) {
		c.stats.Hits++
		out := e.out
		c.mu.Unlock()
		recordLookup("hit")
		c.log.Debug("memo hit", "key", key)
		return out
	}
	c.stats.Misses++
	c.mu.Unlock()

	out := build(props, st)
	if ks, ok := out.(apis.KeySetter); ok && out != nil && out.Key() == "" {
		ks.SetKey(key)
	}

	c.mu.Lock()
	c.entries[key] = &entry{props: props, state: st, out: out}
	c.mu.Unlock()
	recordLookup("miss")
	c.log.Debug("memo miss", "key", key)
	return out
}

// Evict implements apis.Cache.
func (c *Cache) Evict(key string) bool {
	return c.evict(key, nil)
}

// evict removes the entry for key. A non-nil out restricts removal to the
// entry whose stored output is out.
func (c *Cache) evict(key string, out apis.Node) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && out != nil && !uref.Same(e.out, out) {
		ok = false
	}
	if ok {
		delete(c.entries, key)
		c.stats.Evictions++
	}
	c.mu.Unlock()
	if ok {
		recordEviction()
	}
	return ok
}

// Len implements apis.Cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats implements apis.Cache.
func (c *Cache) Stats() apis.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset implements apis.Cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// OnCreate implements apis.MountObserver.
func (c *Cache) OnCreate(apis.Node) error { return nil }

// OnUpdate implements apis.MountObserver.
func (c *Cache) OnUpdate(_, _ apis.Node) error { return nil }

// OnDestroy evicts the entry keyed by n's key when that entry still holds n,
// and runs done. An entry already rebuilt into a replacement node survives
// the removal of the node it replaced.
func (c *Cache) OnDestroy(n apis.Node, done func()) error {
	if done != nil {
		defer done()
	}
	if n == nil {
		return nil
	}
	if key := n.Key(); key != "" && c.evict(key, n) {
		c.log.Debug("memo evicted", "key", key)
	}
	return nil
}

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

package session_test

import (
	"sync"

	"dirpx.dev/rerender/changes"
	"dirpx.dev/rerender/paths"
)

// memStore is an in-memory apis.Store over nested maps.
type memStore struct {
	mu      sync.Mutex
	state   map[string]any
	signals map[string]any
	modules any
	subs    map[int]func(changes.Tree)
	next    int
}

func newStore(state map[string]any) *memStore {
	return &memStore{
		state:   state,
		signals: map[string]any{"add": "signal:add", "remove": "signal:remove"},
		modules: map[string]any{"todos": "module:todos"},
		subs:    make(map[int]func(changes.Tree)),
	}
}

func (s *memStore) GetValue(p paths.Path) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cur any = s.state
	for _, seg := range p {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[seg]
	}
	return cur
}

func (s *memStore) GetSignals(sel string) any {
	if sel == "" {
		return s.signals
	}
	return s.signals[sel]
}

func (s *memStore) GetModules() any { return s.modules }

func (s *memStore) On(event string, fn func(changes.Tree)) func() {
	if event != "flush" {
		return func() {}
	}
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// set writes v at p and fires one flush reporting p.
func (s *memStore) set(p paths.Path, v any) {
	s.mu.Lock()
	cur := s.state
	for _, seg := range p[:len(p)-1] {
		nxt, ok := cur[seg].(map[string]any)
		if !ok {
			nxt = map[string]any{}
			cur[seg] = nxt
		}
		cur = nxt
	}
	cur[p[len(p)-1]] = v
	subs := make([]func(changes.Tree), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	t := changes.FromPaths(p)
	for _, fn := range subs {
		fn(t)
	}
}

func (s *memStore) listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

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

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/changes"
)

// ErrNoStore is returned by Mount on a session without a store.
var ErrNoStore = errors.New("rerender(session): no store")

// RootFunc renders the whole tree.
type RootFunc func() (apis.Node, error)

// Mounted is a tree kept in sync with the store.
type Mounted struct {
	s       *Session
	root    RootFunc
	patcher apis.Patcher
	off     func()

	mu   sync.Mutex
	tree apis.Node
	err  error
}

// Mount renders root, patches it in with patcher, and re-renders on every
// store flush. patcher must report to s.Observer(). After the initial patch a
// forced diagnostics flush describes the mounted registry.
//
// ctx is used for the spans of every later flush; cancelling it does not
// unmount the tree.
func (s *Session) Mount(ctx context.Context, root RootFunc, patcher apis.Patcher) (*Mounted, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	m := &Mounted{s: s, root: root, patcher: patcher}

	next, err := root()
	if err != nil {
		return nil, fmt.Errorf("rerender(session): mount: %w", err)
	}
	tree, err := patcher.Patch(nil, next)
	if err != nil {
		return nil, fmt.Errorf("rerender(session): mount: %w", err)
	}
	m.tree = tree

	m.off = s.store.On(apis.FlushEvent, func(t changes.Tree) {
		if _, err := s.Flush(ctx, t, m.rerender, false); err != nil {
			m.setErr(err)
			s.log.Error("rerender: flush failed", slog.String("error", err.Error()))
		}
	})

	if _, err := s.Flush(ctx, changes.Tree{}, nil, true); err != nil {
		m.off()
		return nil, err
	}
	return m, nil
}

// rerender renders the root again and patches it over the current tree.
func (m *Mounted) rerender() error {
	next, err := m.root()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tree, err := m.patcher.Patch(m.tree, next)
	if err != nil {
		return err
	}
	m.tree = tree
	return nil
}

// Tree returns the mounted tree.
func (m *Mounted) Tree() apis.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree
}

// Err returns the error of the latest failed store-triggered flush, if any.
func (m *Mounted) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mounted) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Close unsubscribes from the store and unmounts the tree, which releases
// every registry subscription and memoization entry it held.
func (m *Mounted) Close() error {
	if m.off != nil {
		m.off()
		m.off = nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tree == nil {
		return nil
	}
	_, err := m.patcher.Patch(m.tree, nil)
	m.tree = nil
	return err
}

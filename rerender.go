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

package rerender

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/builder"
	"dirpx.dev/rerender/config"
	"dirpx.dev/rerender/deps"
	"dirpx.dev/rerender/session"
	"dirpx.dev/rerender/vnode"
)

// init publishes the default snapshot.
func init() {
	st.Store(&state{cfg: config.FromEnvConfig(), bld: builder.New()})
}

// ErrNoSession is returned by connected components rendered while no
// session is active.
var ErrNoSession = errors.New("rerender: no active session")

// H builds an element node.
var H = vnode.H

// T builds a text node.
var T = vnode.T

// Config returns the configuration used for new sessions.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig validates cfg and uses it for sessions created afterwards.
// The active session keeps its configuration.
func SetConfig(cfg apis.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: cfg, bld: old.bld, sess: old.sess})
	return nil
}

// Builder returns the builder used for new sessions.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the builder used for new sessions. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, bld: b, sess: old.sess})
}

// Active returns the active session, or nil.
func Active() *session.Session {
	return st.Load().sess
}

// SetActive makes s the session package-level Connect and Memo render
// through. Nil deactivates. Switching sessions while one of them is
// flushing is not supported.
func SetActive(s *session.Session) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, bld: old.bld, sess: s})
}

// NewSession creates a session bound to store with the package
// configuration and builder. opts are applied after them.
func NewSession(store apis.Store, opts ...session.Option) (*session.Session, error) {
	s := st.Load()
	all := append([]session.Option{
		session.WithConfig(s.cfg),
		session.WithBuilder(s.bld),
	}, opts...)
	return session.New(store, all...)
}

// Render creates a session for store, makes it active, and mounts root
// wrapped in a div. The returned tree re-renders on every store flush until
// closed.
func Render(ctx context.Context, store apis.Store, root func() (apis.Node, error), opts ...session.Option) (*session.Mounted, error) {
	s, err := NewSession(store, opts...)
	if err != nil {
		return nil, err
	}
	SetActive(s)

	wrapped := func() (apis.Node, error) {
		n, err := root()
		if err != nil {
			return nil, err
		}
		child, ok := n.(*vnode.Node)
		if !ok {
			return nil, fmt.Errorf("%w: %T", vnode.ErrForeignNode, n)
		}
		return vnode.H("div", child), nil
	}
	return s.Mount(ctx, wrapped, vnode.NewPatcher(s.Observer()))
}

// Connect binds view to the active session's store. The session is looked
// up on every render.
func Connect(decl deps.Declaration, signals map[string]string, view session.View, opts ...session.ConnectOption) session.Component {
	return func(props map[string]any) (apis.Node, error) {
		s := Active()
		if s == nil {
			return nil, ErrNoSession
		}
		return s.Connect(decl, signals, view, opts...)(props)
	}
}

// Memo renders through the active session's cache. Without an active
// session build is called directly.
func Memo(key string, props map[string]any, state apis.StateFunc, build apis.BuildFunc) apis.Node {
	if s := Active(); s != nil {
		return s.Memo(key, props, state, build)
	}
	var sv map[string]any
	if state != nil {
		sv = state()
	}
	return build(props, sv)
}

// buildMu serializes writers so snapshots are never published half-built.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store.
type state struct {
	cfg  apis.Config
	bld  apis.Builder
	sess *session.Session
}

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
	"errors"
	"fmt"
	"maps"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/deps"
	"dirpx.dev/rerender/paths"
)

// ErrNilNode is returned when a connected view renders nothing.
var ErrNilNode = errors.New("rerender(session): view returned nil node")

const (
	// SignalsProp holds all store signals when Connect gets no selection.
	SignalsProp = "signals"
	// ModulesProp holds the store modules.
	ModulesProp = "modules"
)

// View renders a node from resolved props.
type View func(props map[string]any) apis.Node

// Component renders a connected view from caller props.
type Component func(props map[string]any) (apis.Node, error)

// ConnectOption configures Connect.
type ConnectOption func(*component.Meta)

// Named sets the component's display name.
func Named(name string) ConnectOption {
	return func(m *component.Meta) { m.Name = name }
}

// Connect binds view to the store through decl.
//
// The returned component resolves props in this order, later sources
// overriding earlier ones: the named entries of the declaration read from
// the store, the caller props, the selected signals (or every signal under
// SignalsProp when signals is nil), and the store modules under ModulesProp.
// The rendered node carries component metadata so the lifecycle hooks can
// subscribe it.
//
// In test mode view is called with the caller props unchanged and the node
// carries no metadata.
func (s *Session) Connect(decl deps.Declaration, signals map[string]string, view View, opts ...ConnectOption) Component {
	if s.cfg.Test {
		return func(props map[string]any) (apis.Node, error) {
			n := view(props)
			if n == nil {
				return nil, ErrNilNode
			}
			return n, nil
		}
	}

	return func(props map[string]any) (apis.Node, error) {
		if props == nil {
			props = map[string]any{}
		}
		resolved, err := s.Props(props, decl, signals)
		if err != nil {
			return nil, err
		}
		n := view(resolved)
		if n == nil {
			return nil, ErrNilNode
		}
		m := &component.Meta{View: view, Props: props, Deps: decl}
		for _, opt := range opts {
			opt(m)
		}
		// a memoized view hands back the node it returned last time; keep
		// the instance already mounted for it
		if old := n.Component(); old != nil {
			m.Handle = old.Handle
		}
		n.SetComponent(m)
		return n, nil
	}
}

// Props resolves the props a connected view receives. See Connect.
func (s *Session) Props(props map[string]any, decl deps.Declaration, signals map[string]string) (map[string]any, error) {
	ctx := deps.Context{Props: props, Modules: s.modules()}

	// reject cyclic declarations before reading values through them
	if _, err := s.norm.Normalize(decl, ctx); err != nil {
		return nil, fmt.Errorf("rerender(session): props: %w", err)
	}

	out := make(map[string]any)
	if g, ok := deps.Resolve(decl, ctx).(deps.Group); ok {
		for k, d := range g {
			out[k] = s.value(d, ctx)
		}
	}
	maps.Copy(out, props)

	if s.store != nil {
		if signals != nil {
			for k, sel := range signals {
				out[k] = s.store.GetSignals(sel)
			}
		} else {
			out[SignalsProp] = s.store.GetSignals("")
		}
	}
	out[ModulesProp] = ctx.Modules
	return out, nil
}

// value reads the store value a declaration entry points at. Groups resolve
// to maps of their entries.
func (s *Session) value(d deps.Declaration, ctx deps.Context) any {
	if s.store == nil {
		return nil
	}
	switch v := deps.Resolve(d, ctx).(type) {
	case deps.Leaf:
		if v.Raw != "" {
			return s.store.GetValue(paths.Parse(v.Raw, s.cfg.Separator))
		}
		return s.store.GetValue(v.Path)
	case deps.Nested:
		if g, ok := v.Provider.(deps.Getter); ok {
			return g.Get(s.store.GetValue(nil))
		}
		return nil
	case deps.Group:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = s.value(child, ctx)
		}
		return out
	default:
		return nil
	}
}

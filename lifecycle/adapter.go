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

// Package lifecycle keeps the dependency registry synchronized with the
// components actually mounted by a rendering primitive.
//
// Adapter implements apis.MountObserver. A rendering primitive calls it for
// every node it creates, updates or destroys during a patch; nodes without
// component metadata are ignored.
package lifecycle

import (
	"fmt"
	"log/slog"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/deps"
)

// Adapter translates node lifecycle events into registry mutations.
type Adapter struct {
	reg     apis.Registry
	res     apis.Resolver
	norm    deps.Normalizer
	modules func() any
	log     *slog.Logger
}

// Ensure Adapter implements apis.MountObserver.
var _ apis.MountObserver = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithModules supplies the store modules handed to Func declarations.
func WithModules(fn func() any) Option {
	return func(a *Adapter) { a.modules = fn }
}

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// NewAdapter returns an Adapter writing to reg. res may be nil, in which
// case components are named from Meta.Name only.
func NewAdapter(reg apis.Registry, res apis.Resolver, cfg apis.Config, opts ...Option) *Adapter {
	a := &Adapter{
		reg:  reg,
		res:  res,
		norm: deps.Normalizer{Separator: cfg.Separator, MaxDepth: cfg.MaxDeclarationDepth},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnCreate mounts a new component instance and registers its paths.
func (a *Adapter) OnCreate(n apis.Node) error {
	m := meta(n)
	if m == nil {
		return nil
	}
	inst := component.New(a.name(m), m.Props, m.Deps)
	m.Handle = inst
	ps, err := a.paths(inst)
	if err != nil {
		return fmt.Errorf("mount %s: %w", inst.Name, err)
	}
	a.reg.Register(inst, ps)
	return nil
}

// OnUpdate threads the instance handle from prev to next, refreshes its
// props and declaration, and re-registers its paths. When next no longer
// carries component metadata, prev's instance is unregistered.
func (a *Adapter) OnUpdate(prev, next apis.Node) error {
	pm, nm := meta(prev), meta(next)
	if nm == nil {
		if pm != nil && pm.Handle != nil {
			a.reg.Unregister(pm.Handle)
		}
		return nil
	}
	if pm == nil || pm.Handle == nil {
		// next replaces a plain node (or one mounted before the adapter was
		// attached): treat as a fresh mount.
		return a.OnCreate(next)
	}
	inst := pm.Handle
	nm.Handle = inst
	inst.Update(nm.Props, nm.Deps)
	ps, err := a.paths(inst)
	if err != nil {
		return fmt.Errorf("update %s: %w", inst.Name, err)
	}
	a.reg.Update(inst, ps)
	return nil
}

// OnDestroy unregisters the node's instance and always runs done.
func (a *Adapter) OnDestroy(n apis.Node, done func()) error {
	if done != nil {
		defer done()
	}
	if m := meta(n); m != nil && m.Handle != nil {
		a.reg.Unregister(m.Handle)
	}
	return nil
}

func (a *Adapter) name(m *component.Meta) string {
	if m.Name != "" || a.res == nil {
		return m.Name
	}
	return a.res.Resolve(m)
}

// paths resolves inst's declaration against its current props.
func (a *Adapter) paths(inst *component.Instance) ([]string, error) {
	ctx := deps.Context{Props: inst.Props()}
	if a.modules != nil {
		ctx.Modules = a.modules()
	}
	set, err := a.norm.Normalize(inst.Declaration(), ctx)
	if err != nil {
		return nil, err
	}
	return set.Sorted(), nil
}

func meta(n apis.Node) *component.Meta {
	if n == nil {
		return nil
	}
	return n.Component()
}

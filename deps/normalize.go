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

package deps

import (
	"fmt"
	"reflect"

	"dirpx.dev/rerender/paths"
)

// Normalizer flattens declarations into canonical path sets.
type Normalizer struct {
	// Separator joins path segments. Empty means paths.Separator.
	Separator string
	// MaxDepth bounds nesting when > 0. Cycles through groups and providers
	// are caught regardless; chains of Func declarations are bounded by
	// MaxDepth, or by MaxFuncDepth when MaxDepth is 0.
	MaxDepth int
}

// Normalize flattens d with the default separator and no depth bound.
func Normalize(d Declaration, ctx Context) (paths.Set, error) {
	return Normalizer{}.Normalize(d, ctx)
}

// Normalize flattens d into the set of canonical paths it declares.
// A nil declaration yields an empty set.
func (n Normalizer) Normalize(d Declaration, ctx Context) (paths.Set, error) {
	w := walker{
		n:      n,
		ctx:    ctx,
		out:    paths.NewSet(),
		active: make(map[any]struct{}),
	}
	if n.Separator == "" {
		w.n.Separator = paths.Separator
	}
	if err := w.walk(d, nil); err != nil {
		return nil, err
	}
	return w.out, nil
}

// walker holds the state of one Normalize call. active is the set of
// composite nodes on the current descent; revisiting one of them is a cycle.
// Shared (diamond) nodes are fine because entries are removed on the way up.
//
// Func values have no usable identity (closures from one literal share a
// code pointer), so they are not tracked in active. funcs counts the Func
// declarations on the current descent instead.
type walker struct {
	n      Normalizer
	ctx    Context
	out    paths.Set
	active map[any]struct{}
	funcs  int
}

type groupID uintptr

func (w *walker) walk(d Declaration, trail []string) error {
	if w.n.MaxDepth > 0 && len(trail) > w.n.MaxDepth {
		return &StructuralError{Trail: trail, Reason: fmt.Sprintf("nesting exceeds %d", w.n.MaxDepth)}
	}

	switch v := d.(type) {
	case nil:
		return nil

	case Leaf:
		c := v.Canonical(w.n.Separator)
		if c == "" {
			return &StructuralError{Trail: trail, Reason: "empty path"}
		}
		w.out.Add(c)
		return nil

	case Group:
		if v == nil {
			return nil
		}
		id := groupID(reflect.ValueOf(v).Pointer())
		return w.enter(id, trail, func() error {
			for key, child := range v {
				if err := w.walk(child, append(trail[:len(trail):len(trail)], key)); err != nil {
					return err
				}
			}
			return nil
		})

	case Nested:
		if v.Provider == nil {
			return nil
		}
		id, ok := providerID(v.Provider)
		if !ok {
			return w.unwrap(trail, func() error {
				return w.walk(v.Provider.Dependencies(), trail)
			})
		}
		return w.enter(id, trail, func() error {
			return w.walk(v.Provider.Dependencies(), trail)
		})

	case Func:
		if v == nil {
			return nil
		}
		return w.unwrap(trail, func() error {
			return w.walk(v(w.ctx), trail)
		})

	default:
		return &StructuralError{Trail: trail, Reason: fmt.Sprintf("unsupported declaration %T", d)}
	}
}

// unwrap runs fn one level deeper in the chain of untracked declarations.
func (w *walker) unwrap(trail []string, fn func() error) error {
	limit := MaxFuncDepth
	if w.n.MaxDepth > 0 {
		limit = w.n.MaxDepth
	}
	if w.funcs >= limit {
		return &StructuralError{Trail: trail, Reason: fmt.Sprintf("declaration functions nest deeper than %d", limit)}
	}
	w.funcs++
	defer func() { w.funcs-- }()
	return fn()
}

func (w *walker) enter(id any, trail []string, fn func() error) error {
	if _, seen := w.active[id]; seen {
		return &StructuralError{Trail: trail, Reason: "cyclic declaration"}
	}
	w.active[id] = struct{}{}
	defer delete(w.active, id)
	return fn()
}

// providerID returns a hashable identity for p. Pointer-shaped providers use
// their address; other comparable providers use their value. Func providers
// have no identity.
func providerID(p Provider) (any, bool) {
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Func:
		return nil, false
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice:
		return struct {
			t reflect.Type
			p uintptr
		}{v.Type(), v.Pointer()}, true
	}
	if v.Comparable() {
		return p, true
	}
	return nil, false
}

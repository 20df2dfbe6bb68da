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

// Package deps describes which state paths a component depends on and
// flattens those descriptions into canonical path sets.
//
// A Declaration is a tagged variant:
//
//	Leaf   - a single state path
//	Group  - local names mapped to further declarations
//	Nested - a declaration exposed by a child component, absorbed transitively
//	Func   - a declaration computed lazily from props
//
// Declarations must be acyclic. Normalize converts a cycle into a reported
// StructuralError instead of recursing without bound.
package deps

import (
	"dirpx.dev/rerender/paths"
)

// Declaration is implemented by Leaf, Group, Nested and Func.
type Declaration interface {
	isDeclaration()
}

// Leaf declares one state path. Raw, when set, is used verbatim as the
// canonical string; otherwise Path is joined with the normalizer's separator.
type Leaf struct {
	Path paths.Path
	Raw  string
}

// Group maps local names to declarations. Key order never affects the
// normalized result.
type Group map[string]Declaration

// Nested absorbs the declaration of a child component.
type Nested struct {
	Provider Provider
}

// Func computes a declaration from the render context. It may return a
// different declaration on every render.
type Func func(Context) Declaration

func (Leaf) isDeclaration()   {}
func (Group) isDeclaration()  {}
func (Nested) isDeclaration() {}
func (Func) isDeclaration()   {}

// Provider is a child component that exposes its own declaration.
type Provider interface {
	Dependencies() Declaration
}

// Getter is optionally implemented by a Provider to compute its resolved
// value from the whole state tree. Nested entries whose provider is not a
// Getter resolve to nil.
type Getter interface {
	Get(state any) any
}

// Context is handed to Func declarations.
type Context struct {
	// Props are the component's current props.
	Props map[string]any
	// Modules is the state store's module description.
	Modules any
}

// P declares a path from segments.
func P(segments ...any) Leaf {
	return Leaf{Path: paths.Of(segments...)}
}

// Key declares a path by its canonical string.
func Key(canonical string) Leaf {
	return Leaf{Raw: canonical}
}

// Of wraps a child provider.
func Of(p Provider) Nested {
	return Nested{Provider: p}
}

// Canonical returns the canonical string for l using sep.
func (l Leaf) Canonical(sep string) string {
	if l.Raw != "" {
		return l.Raw
	}
	return l.Path.Join(sep)
}

// MaxFuncDepth bounds how many Func declarations may nest when no explicit
// depth is configured.
const MaxFuncDepth = 64

// Resolve unwraps Func declarations until a non-Func declaration (or nil)
// is reached. It gives up and returns nil after MaxFuncDepth calls.
func Resolve(d Declaration, ctx Context) Declaration {
	for range MaxFuncDepth {
		f, ok := d.(Func)
		if !ok || f == nil {
			return d
		}
		d = f(ctx)
	}
	if _, ok := d.(Func); ok {
		return nil
	}
	return d
}

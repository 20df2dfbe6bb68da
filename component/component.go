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

// Package component holds the per-instance state of mounted components.
//
// An Instance is the stable handle of one logical component. It is created
// once when the component's node is first mounted and is threaded through
// every later update of that node by the lifecycle adapter, so registry
// entries keyed by the handle survive re-renders.
//
// Meta is the transient description a freshly rendered node carries: name,
// props, declaration and (after mounting) the Instance handle.
package component

import (
	"github.com/google/uuid"

	"dirpx.dev/rerender/deps"
)

// DefaultName is used when no display name can be resolved.
const DefaultName = "anonymous"

// Instance is a live, mounted component.
type Instance struct {
	// ID is unique per mount.
	ID uuid.UUID
	// Name is the display name, used for diagnostics only.
	Name string

	props map[string]any
	decl  deps.Declaration
}

// New creates an Instance with a fresh ID.
func New(name string, props map[string]any, decl deps.Declaration) *Instance {
	if name == "" {
		name = DefaultName
	}
	return &Instance{
		ID:    uuid.New(),
		Name:  name,
		props: props,
		decl:  decl,
	}
}

// Props returns the props of the latest render.
func (i *Instance) Props() map[string]any { return i.props }

// Declaration returns the dependency declaration of the latest render.
func (i *Instance) Declaration() deps.Declaration { return i.decl }

// Update replaces props and declaration after a re-render.
func (i *Instance) Update(props map[string]any, decl deps.Declaration) {
	i.props = props
	i.decl = decl
}

// String returns "Name#shortid".
func (i *Instance) String() string {
	if i == nil {
		return "<nil>"
	}
	id := i.ID.String()
	return i.Name + "#" + id[:8]
}

// Names maps instances to their display names.
func Names(list []*Instance) []string {
	out := make([]string, len(list))
	for k, c := range list {
		out[k] = c.Name
	}
	return out
}

// Meta is the component metadata carried by a rendered node.
type Meta struct {
	// Name overrides display-name resolution when non-empty.
	Name string
	// View is the render function that produced the node.
	View any
	// Props are the caller-supplied props (before state resolution).
	Props map[string]any
	// Deps is the component's dependency declaration.
	Deps deps.Declaration
	// Handle is the mounted instance; nil until the node is created.
	Handle *Instance
}

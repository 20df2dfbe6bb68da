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

package apis

import (
	"dirpx.dev/rerender/component"
)

// Node is a rendered tree node as seen by this package. Concrete rendering
// primitives adapt their node type to it.
type Node interface {
	// Key is the node's identity key, "" if none. Memoized nodes carry the
	// memoization identity key here.
	Key() string
	// Component returns the component metadata, or nil for plain nodes.
	Component() *component.Meta
	// SetComponent attaches component metadata.
	SetComponent(m *component.Meta)
}

// MountObserver receives the node lifecycle of a rendering primitive.
//
// Hooks are invoked during every patch for every node, parents before
// children on create, with consistent old/new pairing on update.
type MountObserver interface {
	OnCreate(n Node) error
	OnUpdate(prev, next Node) error
	// OnDestroy must call done exactly once, whatever else happens.
	OnDestroy(n Node, done func()) error
}

// Patcher applies the difference between two trees and returns the new tree.
// Patch(x, x) is a no-op.
type Patcher interface {
	Patch(prev, next Node) (Node, error)
}

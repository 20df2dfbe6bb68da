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

package vnode

import (
	"errors"
	"fmt"

	"dirpx.dev/rerender/apis"
)

// ErrForeignNode is returned when Patch receives a node of another primitive.
var ErrForeignNode = errors.New("rerender(vnode): foreign node type")

// Patcher reconciles trees. Children are paired by position; a pair with the
// same tag and key is updated in place, anything else is replaced.
type Patcher struct {
	obs apis.MountObserver
}

// Ensure Patcher implements apis.Patcher.
var _ apis.Patcher = (*Patcher)(nil)

// NewPatcher returns a Patcher reporting to obs (may be nil).
func NewPatcher(obs apis.MountObserver) *Patcher {
	return &Patcher{obs: obs}
}

// Patch reconciles prev into next and returns next. prev may be nil (or a
// container node) for the initial mount. Patching a tree against itself
// fires update hooks only.
func (p *Patcher) Patch(prev, next apis.Node) (apis.Node, error) {
	o, err := asNode(prev)
	if err != nil {
		return nil, err
	}
	n, err := asNode(next)
	if err != nil {
		return nil, err
	}
	if err := p.patch(o, n); err != nil {
		return nil, err
	}
	return n, nil
}

func asNode(x apis.Node) (*Node, error) {
	if x == nil {
		return nil, nil
	}
	n, ok := x.(*Node)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignNode, x)
	}
	return n, nil
}

func same(a, b *Node) bool {
	return a.Tag == b.Tag && a.ID == b.ID
}

func (p *Patcher) patch(o, n *Node) error {
	switch {
	case o == nil && n == nil:
		return nil
	case o == nil:
		return p.create(n)
	case n == nil:
		return p.destroy(o)
	case !same(o, n):
		if err := p.destroy(o); err != nil {
			return err
		}
		return p.create(n)
	}

	if p.obs != nil {
		if err := p.obs.OnUpdate(o, n); err != nil {
			return err
		}
	}
	width := len(o.Children)
	if len(n.Children) > width {
		width = len(n.Children)
	}
	for i := 0; i < width; i++ {
		var oc, nc *Node
		if i < len(o.Children) {
			oc = o.Children[i]
		}
		if i < len(n.Children) {
			nc = n.Children[i]
		}
		if err := p.patch(oc, nc); err != nil {
			return err
		}
	}
	return nil
}

// create fires OnCreate parents before children.
func (p *Patcher) create(n *Node) error {
	if p.obs != nil {
		if err := p.obs.OnCreate(n); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := p.create(c); err != nil {
			return err
		}
	}
	return nil
}

// destroy fires OnDestroy for descendants first, then n.
func (p *Patcher) destroy(n *Node) error {
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := p.destroy(c); err != nil {
			return err
		}
	}
	if p.obs == nil {
		return nil
	}
	detached := false
	err := p.obs.OnDestroy(n, func() { detached = true })
	if !detached {
		return fmt.Errorf("rerender(vnode): observer dropped removal of %q", n.Tag)
	}
	return err
}

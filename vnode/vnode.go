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

// Package vnode is a minimal rendering primitive: a node tree plus a
// patcher that reconciles two trees and reports the node lifecycle to an
// apis.MountObserver.
//
// It does not touch any host document. Hosts with a real virtual-DOM
// library adapt that library's hooks to apis.MountObserver instead.
package vnode

import (
	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
)

// Node is a tree node.
type Node struct {
	Tag      string
	ID       string
	Text     string
	Children []*Node

	meta *component.Meta
}

// Ensure Node implements apis.Node and apis.KeySetter.
var (
	_ apis.Node      = (*Node)(nil)
	_ apis.KeySetter = (*Node)(nil)
)

// H builds an element node.
func H(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// T builds a text node.
func T(text string) *Node {
	return &Node{Text: text}
}

// WithKey sets the node key and returns n.
func (n *Node) WithKey(key string) *Node {
	n.ID = key
	return n
}

// Key implements apis.Node.
func (n *Node) Key() string {
	if n == nil {
		return ""
	}
	return n.ID
}

// SetKey implements apis.KeySetter.
func (n *Node) SetKey(key string) {
	if n != nil {
		n.ID = key
	}
}

// Component implements apis.Node.
func (n *Node) Component() *component.Meta {
	if n == nil {
		return nil
	}
	return n.meta
}

// SetComponent implements apis.Node.
func (n *Node) SetComponent(m *component.Meta) {
	if n != nil {
		n.meta = m
	}
}

// Walk visits n and its descendants depth-first, parents first.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

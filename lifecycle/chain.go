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

package lifecycle

import (
	"errors"

	"dirpx.dev/rerender/apis"
)

// Chain fans lifecycle events out to several observers in order.
//
// For OnDestroy every observer receives a no-op continuation; the real
// continuation runs once, after all observers, even if some of them fail.
type Chain []apis.MountObserver

// Ensure Chain implements apis.MountObserver.
var _ apis.MountObserver = Chain(nil)

// NewChain drops nil observers.
func NewChain(observers ...apis.MountObserver) Chain {
	out := make(Chain, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (c Chain) OnCreate(n apis.Node) error {
	var errs []error
	for _, o := range c {
		errs = append(errs, o.OnCreate(n))
	}
	return errors.Join(errs...)
}

func (c Chain) OnUpdate(prev, next apis.Node) error {
	var errs []error
	for _, o := range c {
		errs = append(errs, o.OnUpdate(prev, next))
	}
	return errors.Join(errs...)
}

func (c Chain) OnDestroy(n apis.Node, done func()) error {
	if done != nil {
		defer done()
	}
	var errs []error
	for _, o := range c {
		errs = append(errs, o.OnDestroy(n, func() {}))
	}
	return errors.Join(errs...)
}

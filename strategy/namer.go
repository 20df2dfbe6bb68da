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

package strategy

import (
	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
)

// NewExplicitStrategy creates an apis.Strategy that returns Meta.Name when set.
func NewExplicitStrategy() apis.Strategy {
	return explicitStrategy{}
}

// explicitStrategy honors a name given at Connect time.
type explicitStrategy struct{}

// Ensure explicitStrategy implements apis.Strategy.
var _ apis.Strategy = explicitStrategy{}

// TryResolve returns m.Name if non-empty.
func (explicitStrategy) TryResolve(m *component.Meta) (string, bool) {
	if m == nil || m.Name == "" {
		return "", false
	}
	return m.Name, true
}

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is a zero-cost fast path: if the view implements apis.Namer,
// return its ComponentName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks if m.View implements apis.Namer.
func (*namerStrategy) TryResolve(m *component.Meta) (string, bool) {
	if m == nil || m.View == nil {
		return "", false
	}
	if n, ok := m.View.(apis.Namer); ok {
		if name := n.ComponentName(); name != "" {
			return name, true
		}
	}
	return "", false
}

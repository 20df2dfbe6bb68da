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
	"maps"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
)

// NewAliasStrategy creates an apis.Strategy that renames views through a
// fixed table keyed by reflected view name ("pkg.Func" or "pkg.Type").
// The table is copied; later changes to aliases have no effect.
func NewAliasStrategy(aliases map[string]string) apis.Strategy {
	return &aliasStrategy{aliases: maps.Clone(aliases)}
}

// aliasStrategy is a reflection-keyed lookup table.
type aliasStrategy struct {
	aliases map[string]string
}

// Ensure aliasStrategy implements apis.Strategy.
var _ apis.Strategy = (*aliasStrategy)(nil)

// TryResolve looks up the reflected name of m.View.
func (s *aliasStrategy) TryResolve(m *component.Meta) (string, bool) {
	if m == nil || m.View == nil || len(s.aliases) == 0 {
		return "", false
	}
	name, ok := s.aliases[viewName(m.View)]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

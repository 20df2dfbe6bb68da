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
	"dirpx.dev/rerender/memo/strategy"
)

// Config carries read-only knobs shared by a renderer session and its parts.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Production disables the registry lifecycle hooks and diagnostics.
	// Memoization keeps working.
	Production bool `yaml:"production"`

	// Test makes Connect return bare views without component metadata.
	Test bool `yaml:"test"`

	// Separator joins path segments into canonical path strings.
	Separator string `yaml:"separator" validate:"required,max=8"`

	// DiagnosticsEvent names the event fired on the diagnostics channel.
	DiagnosticsEvent string `yaml:"diagnostics_event" validate:"required"`

	// MemoStrategy selects the memoization cache behavior.
	MemoStrategy strategy.Strategy `yaml:"memo_strategy" validate:"gte=0,lte=1"`

	// MaxDeclarationDepth bounds declaration nesting when > 0.
	MaxDeclarationDepth int `yaml:"max_declaration_depth" validate:"gte=0"`

	// ComponentAliases maps reflected view names ("pkg.Func") to display names.
	ComponentAliases map[string]string `yaml:"component_aliases" validate:"dive,keys,required,endkeys,required"`
}

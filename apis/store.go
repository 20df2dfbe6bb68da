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
	"dirpx.dev/rerender/changes"
	"dirpx.dev/rerender/paths"
)

// FlushEvent is the store event fired after every committed mutation batch.
const FlushEvent = "flush"

// Store is the external, path-addressable state container.
type Store interface {
	// GetValue returns the value at path; an empty path returns the whole state.
	GetValue(path paths.Path) any
	// GetSignals returns the signal at selection; "" returns all signals.
	GetSignals(selection string) any
	// GetModules returns the store's module description.
	GetModules() any
	// On subscribes fn to event and returns an unsubscribe function. For
	// FlushEvent, fn runs synchronously once per mutation batch.
	On(event string, fn func(changes.Tree)) (off func())
}

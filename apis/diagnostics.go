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
	"context"

	"dirpx.dev/rerender/changes"
)

// Emitter publishes diagnostic events. Failures are advisory: callers log
// and drop them.
type Emitter interface {
	Emit(ctx context.Context, event string, p Payload) error
}

// Payload is the diagnostic event body.
type Payload struct {
	// Map is the registry snapshot: path -> component names.
	Map map[string][]string `json:"map"`
	// Render describes the flush.
	Render Report `json:"render"`
}

// Report describes one flush.
type Report struct {
	// Start is the flush start in Unix milliseconds.
	Start int64 `json:"start"`
	// Duration is the flush duration in milliseconds.
	Duration int64 `json:"duration"`
	// Changes is the raw change tree.
	Changes changes.Tree `json:"changes"`
	// Components are the names of the affected components.
	Components []string `json:"components"`
}

// FlushStats are cumulative flush counters of a session.
type FlushStats struct {
	Flushes  uint64
	Failures uint64
	Affected uint64
}

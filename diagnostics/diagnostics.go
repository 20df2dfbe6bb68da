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

// Package diagnostics builds and publishes the advisory event describing a
// flush: a snapshot of the registry and the render decision.
//
// Emitters never influence rendering. Callers log and drop their errors.
package diagnostics

import (
	"time"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/changes"
	"dirpx.dev/rerender/component"
)

// Snapshot maps every registered path to the names of its subscribers.
func Snapshot(reg apis.Registry) map[string][]string {
	out := make(map[string][]string)
	if reg == nil {
		return out
	}
	for _, e := range reg.Entries() {
		out[e.Path] = component.Names(e.Components)
	}
	return out
}

// NewPayload assembles the diagnostic payload of one flush.
func NewPayload(reg apis.Registry, start time.Time, dur time.Duration, tree changes.Tree, affected []*component.Instance) apis.Payload {
	if tree == nil {
		tree = changes.Tree{}
	}
	return apis.Payload{
		Map: Snapshot(reg),
		Render: apis.Report{
			Start:      start.UnixMilli(),
			Duration:   dur.Milliseconds(),
			Changes:    tree,
			Components: component.Names(affected),
		},
	}
}

// Message is the envelope written by transport emitters.
type Message struct {
	Event  string       `json:"event"`
	Detail apis.Payload `json:"detail"`
}

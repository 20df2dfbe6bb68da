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

package diagnostics

import (
	"context"
	"errors"
	"log/slog"

	"dirpx.dev/rerender/apis"
)

// Func adapts a host event-bus callback to apis.Emitter.
type Func func(ctx context.Context, event string, p apis.Payload) error

// Emit implements apis.Emitter.
func (f Func) Emit(ctx context.Context, event string, p apis.Payload) error {
	if f == nil {
		return nil
	}
	return f(ctx, event, p)
}

// Discard drops every event.
var Discard apis.Emitter = Func(nil)

// LogEmitter writes a one-line summary of each event.
type LogEmitter struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Emit implements apis.Emitter.
func (l LogEmitter) Emit(ctx context.Context, event string, p apis.Payload) error {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Log(ctx, l.Level, "render diagnostics",
		slog.String("event", event),
		slog.Int("paths", len(p.Map)),
		slog.Any("components", p.Render.Components),
		slog.Int64("duration_ms", p.Render.Duration),
	)
	return nil
}

// Multi fans an event out to every emitter and joins their errors.
type Multi []apis.Emitter

// Emit implements apis.Emitter.
func (m Multi) Emit(ctx context.Context, event string, p apis.Payload) error {
	var errs []error
	for _, e := range m {
		if e == nil {
			continue
		}
		errs = append(errs, e.Emit(ctx, event, p))
	}
	return errors.Join(errs...)
}

var (
	_ apis.Emitter = Func(nil)
	_ apis.Emitter = LogEmitter{}
	_ apis.Emitter = Multi(nil)
)

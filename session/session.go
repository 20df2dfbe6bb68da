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

// Package session owns the state of one renderer bound to one state store:
// the dependency registry, the memoization cache, the naming resolver and
// the diagnostics emitter.
//
// Several sessions may coexist. Within a session, flushes and the lifecycle
// hooks they trigger run sequentially; a flush started from inside another
// flush's patch is rejected with ErrReentrantFlush.
//
// If a patch fails midway, the registry reflects the nodes whose hooks ran
// before the failure. The error is returned to the caller; the next
// successful patch against a fresh notification brings the registry back in
// line with the mounted tree.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/builder"
	"dirpx.dev/rerender/changes"
	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/config"
	"dirpx.dev/rerender/deps"
	"dirpx.dev/rerender/diagnostics"
	"dirpx.dev/rerender/lifecycle"
)

// ErrReentrantFlush is returned by Flush when called during another flush.
var ErrReentrantFlush = errors.New("rerender(session): re-entrant flush")

// Session is a renderer session. Create it with New.
type Session struct {
	cfg   apis.Config
	store apis.Store
	reg   apis.Registry
	cache apis.Cache
	res   apis.Resolver
	emit  apis.Emitter
	obs   apis.MountObserver
	norm  deps.Normalizer
	log   *slog.Logger
	now   func() time.Time

	flushing atomic.Bool
	flushes  atomic.Uint64
	failures atomic.Uint64
	affected atomic.Uint64
}

type options struct {
	cfg  apis.Config
	bld  apis.Builder
	emit apis.Emitter
	log  *slog.Logger
	now  func() time.Time
	prev *Session
}

// Option configures New.
type Option func(*options)

// WithConfig sets the configuration. Default: config.DefaultConfig().
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithBuilder sets the builder of the registry, cache and resolver.
func WithBuilder(b apis.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.bld = b
		}
	}
}

// WithEmitter sets the diagnostics emitter. Default: a LogEmitter at debug level.
func WithEmitter(e apis.Emitter) Option {
	return func(o *options) {
		if e != nil {
			o.emit = e
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock replaces time.Now for diagnostics timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPrevious migrates registry subscriptions and, when the strategy is
// unchanged, the memoization cache from prev.
func WithPrevious(prev *Session) Option {
	return func(o *options) { o.prev = prev }
}

// New creates a session bound to store. The configuration is validated.
func New(store apis.Store, opts ...Option) (*Session, error) {
	o := options{
		cfg: config.DefaultConfig(),
		bld: builder.New(),
		log: slog.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := config.Validate(o.cfg); err != nil {
		return nil, err
	}

	var (
		prevReg   apis.Registry
		prevCache apis.Cache
	)
	if o.prev != nil {
		prevReg, prevCache = o.prev.reg, o.prev.cache
	}

	s := &Session{
		cfg:   o.cfg,
		store: store,
		reg:   o.bld.BuildRegistry(o.cfg, prevReg, o.log),
		cache: o.bld.BuildCache(o.cfg, prevCache, o.log),
		res:   o.bld.BuildResolver(o.cfg, o.log),
		emit:  o.emit,
		norm:  deps.Normalizer{Separator: o.cfg.Separator, MaxDepth: o.cfg.MaxDeclarationDepth},
		log:   o.log,
		now:   o.now,
	}
	if s.emit == nil {
		s.emit = diagnostics.LogEmitter{Logger: o.log, Level: slog.LevelDebug}
	}

	var observers []apis.MountObserver
	if !o.cfg.Production {
		observers = append(observers, lifecycle.NewAdapter(s.reg, s.res, o.cfg,
			lifecycle.WithModules(s.modules),
			lifecycle.WithLogger(o.log),
		))
	}
	if mo, ok := s.cache.(apis.MountObserver); ok {
		observers = append(observers, mo)
	}
	s.obs = lifecycle.NewChain(observers...)
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() apis.Config { return s.cfg }

// Registry returns the dependency registry.
func (s *Session) Registry() apis.Registry { return s.reg }

// Cache returns the memoization cache.
func (s *Session) Cache() apis.Cache { return s.cache }

// Observer returns the lifecycle observer to hand to a rendering primitive.
// In production builds it only evicts memoization entries.
func (s *Session) Observer() apis.MountObserver { return s.obs }

// Stats returns cumulative flush counters.
func (s *Session) Stats() apis.FlushStats {
	return apis.FlushStats{
		Flushes:  s.flushes.Load(),
		Failures: s.failures.Load(),
		Affected: s.affected.Load(),
	}
}

// Affected returns the components subscribed to the paths t visits.
func (s *Session) Affected(t changes.Tree) []*component.Instance {
	return changes.Affected(t, s.reg, s.cfg.Separator)
}

// Flush runs one notification cycle: it computes the affected components
// against the subscriptions live before the patch, calls renderAndPatch
// exactly once, and then, outside production builds, emits diagnostics when
// something was affected or force is set.
//
// Errors from renderAndPatch are returned wrapped and suppress diagnostics.
// Diagnostics failures are logged and never returned.
func (s *Session) Flush(ctx context.Context, t changes.Tree, renderAndPatch func() error, force bool) ([]*component.Instance, error) {
	if !s.flushing.CompareAndSwap(false, true) {
		return nil, ErrReentrantFlush
	}
	defer s.flushing.Store(false)

	ctx, span := startFlushSpan(ctx, force, len(t))
	defer span.End()

	start := s.now()
	affected := s.Affected(t)

	var err error
	if renderAndPatch != nil {
		err = renderAndPatch()
	}
	dur := s.now().Sub(start)

	s.flushes.Add(1)
	s.affected.Add(uint64(len(affected)))
	setFlushSpanResult(span, len(affected), err == nil)
	recordFlushMetrics(ctx, dur, len(affected), err == nil)

	if err != nil {
		s.failures.Add(1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return affected, fmt.Errorf("rerender(session): flush: %w", err)
	}

	s.log.Debug("rerender: flushed",
		slog.Int("affected", len(affected)),
		slog.Duration("duration", dur),
	)

	if !s.cfg.Production && (len(affected) > 0 || force) {
		s.diagnose(ctx, diagnostics.NewPayload(s.reg, start, dur, t, affected))
	}
	return affected, nil
}

// diagnose emits p, swallowing errors and panics.
func (s *Session) diagnose(ctx context.Context, p apis.Payload) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("rerender: diagnostics panicked", slog.Any("panic", r))
		}
	}()
	if err := s.emit.Emit(ctx, s.cfg.DiagnosticsEvent, p); err != nil {
		s.log.Warn("rerender: diagnostics failed", slog.String("error", err.Error()))
	}
}

// Memo renders through the memoization cache.
func (s *Session) Memo(key string, props map[string]any, state apis.StateFunc, build apis.BuildFunc) apis.Node {
	return s.cache.Render(key, props, state, build)
}

func (s *Session) modules() any {
	if s.store == nil {
		return nil
	}
	return s.store.GetModules()
}

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

package builder

import (
	"log/slog"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/memo"
	"dirpx.dev/rerender/registry"
	"dirpx.dev/rerender/resolver"
	"dirpx.dev/rerender/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
//
// The ext argument of every Build method may be a *slog.Logger, which is
// handed to the built part. Other values are ignored.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its subscriptions are copied into the new one with
// per-path insertion order preserved.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry, ext any) apis.Registry {
	nreg := registry.New(registry.WithLogger(logger(ext)))
	if preg != nil {
		for _, e := range preg.Entries() {
			for _, c := range e.Components {
				nreg.Register(c, []string{e.Path})
			}
		}
	}
	return nreg
}

// BuildCache returns the previous cache when it already uses the configured
// strategy, so memoized output survives a rebuild. Otherwise it returns a
// fresh cache.
func (b *builder) BuildCache(cfg apis.Config, prev apis.Cache, ext any) apis.Cache {
	if c, ok := prev.(*memo.Cache); ok && c.Strategy() == cfg.MemoStrategy {
		return c
	}
	return memo.New(cfg.MemoStrategy, memo.WithLogger(logger(ext)))
}

// BuildResolver builds the component naming chain: explicit name, Namer,
// configured aliases, reflected view name.
func (b *builder) BuildResolver(cfg apis.Config, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewExplicitStrategy(),
		strategy.NewNamerStrategy(),
		strategy.NewAliasStrategy(cfg.ComponentAliases),
		strategy.NewReflectStrategy(),
	)
}

func logger(ext any) *slog.Logger {
	if l, ok := ext.(*slog.Logger); ok {
		return l
	}
	return nil
}

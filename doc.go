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

// Package rerender converts "these state paths changed" into "these
// components must re-render", and lets individually keyed components skip
// rendering when their inputs are unchanged.
//
// # Design
//
// Each component declares the state paths it reads (package deps). When
// its node is mounted, the lifecycle hooks flatten that declaration into
// canonical paths and subscribe the component instance in a registry.
// Updates re-subscribe (the declaration may depend on props) and removal
// unsubscribes.
//
// The state store fires a flush with a change tree after every mutation
// batch. The session walks the tree against the registry, collecting every
// component subscribed to a visited prefix, then patches once. Outside
// production builds it also emits a diagnostics event describing the
// registry and the render decision.
//
// Memoization is independent of the registry. A component rendered through
// Memo with an identity key returns its previous output when props and
// resolved state are shallowly equal to the last render's. The entry is
// evicted when its node is destroyed.
//
// # Global API
//
// The package keeps a read-mostly snapshot holding the configuration for
// new sessions, the builder that assembles their parts, and the active
// session. Readers load the snapshot atomically; writers take a short build
// lock and publish a new snapshot.
//
//	m, err := rerender.Render(ctx, store, app)
//	...
//	list := rerender.Connect(deps.Group{"items": deps.P("todos", "items")}, nil, todoList)
//
// Connect and Memo look the active session up on every render, so
// components can be declared before Render is called.
//
// Applications needing more than one renderer create sessions with
// NewSession (or package session directly) and mount them themselves.
//
// # Build modes
//
// Config.Production drops the registry hooks and diagnostics; memoization
// keeps working. Config.Test makes Connect return views that receive raw
// props. The RERENDER_ENV environment variable selects either mode for the
// default configuration.
package rerender

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

package strategy_test

import (
	"testing"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/strategy"
)

type namedView struct{}

func (namedView) ComponentName() string { return "custom.Name" } // implements apis.Namer

func TestExplicitStrategy_TryResolve(t *testing.T) {
	s := strategy.NewExplicitStrategy()

	got, ok := s.TryResolve(&component.Meta{Name: "Row", View: namedView{}})
	if !ok || got != "Row" {
		t.Fatalf("TryResolve: got (%q,%v), want (Row,true)", got, ok)
	}

	got, ok = s.TryResolve(&component.Meta{})
	if ok || got != "" {
		t.Fatalf("TryResolve(no name): got (%q,%v), want ('',false)", got, ok)
	}

	if _, ok := s.TryResolve(nil); ok {
		t.Fatal("TryResolve(nil) handled")
	}
}

func TestNamerStrategy_TryResolve(t *testing.T) {
	s := strategy.NewNamerStrategy()

	// With a view implementing apis.Namer -> handled = true
	got, ok := s.TryResolve(&component.Meta{View: namedView{}})
	if !ok || got != "custom.Name" {
		t.Fatalf("TryResolve: got (%q,%v), want (custom.Name,true)", got, ok)
	}

	// With non-namer view -> handled = false
	got, ok = s.TryResolve(&component.Meta{View: struct{}{}})
	if ok || got != "" {
		t.Fatalf("TryResolve(non-namer): got (%q,%v), want ('',false)", got, ok)
	}
}

// Ensure the local type actually satisfies apis.Namer (compile-time).
var _ apis.Namer = (*namedView)(nil)

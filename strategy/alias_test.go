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

	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/strategy"
)

func rowView(map[string]any) {}

type tableView struct{}

func TestAliasStrategy_TryResolve(t *testing.T) {
	aliases := map[string]string{
		"strategy_test.rowView":   "Row",
		"strategy_test.tableView": "Table",
	}
	s := strategy.NewAliasStrategy(aliases)

	tests := []struct {
		name string
		view any
		want string
		ok   bool
	}{
		{"func", rowView, "Row", true},
		{"value", tableView{}, "Table", true},
		{"pointer", &tableView{}, "Table", true},
		{"unknown", namedView{}, "", false},
		{"nil view", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.TryResolve(&component.Meta{View: tt.view})
			if got != tt.want || ok != tt.ok {
				t.Fatalf("TryResolve(%T) = (%q,%v), want (%q,%v)", tt.view, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAliasStrategy_CopiesTable(t *testing.T) {
	aliases := map[string]string{"strategy_test.rowView": "Row"}
	s := strategy.NewAliasStrategy(aliases)
	aliases["strategy_test.rowView"] = "Changed"

	if got, _ := s.TryResolve(&component.Meta{View: rowView}); got != "Row" {
		t.Fatalf("TryResolve = %q, want Row", got)
	}
}

func TestAliasStrategy_Empty(t *testing.T) {
	s := strategy.NewAliasStrategy(nil)
	if _, ok := s.TryResolve(&component.Meta{View: rowView}); ok {
		t.Fatal("empty table handled a view")
	}
}

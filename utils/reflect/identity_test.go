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

package reflect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	uref "dirpx.dev/rerender/utils/reflect"
)

type point struct{ X, Y int }

type holder struct{ Items []int }

func listView() {}

type widget struct{}

func (widget) Render() {}

func TestSame_Comparable(t *testing.T) {
	assert.True(t, uref.Same(nil, nil))
	assert.False(t, uref.Same(nil, 1))
	assert.True(t, uref.Same(1, 1))
	assert.False(t, uref.Same(1, 2))
	assert.False(t, uref.Same(1, int64(1)), "different dynamic types")
	assert.True(t, uref.Same("a", "a"))
	assert.True(t, uref.Same(point{1, 2}, point{1, 2}))
	assert.False(t, uref.Same(point{1, 2}, point{2, 1}))
}

func TestSame_Identity(t *testing.T) {
	m := map[string]int{"a": 1}
	m2 := map[string]int{"a": 1}
	assert.True(t, uref.Same(m, m))
	assert.False(t, uref.Same(m, m2), "maps compare by identity, not content")

	s := []int{1, 2, 3}
	assert.True(t, uref.Same(s, s))
	assert.False(t, uref.Same(s, s[:2]), "same backing array, different length")
	assert.False(t, uref.Same(s, []int{1, 2, 3}))

	p := &point{}
	assert.True(t, uref.Same(p, p))
	assert.False(t, uref.Same(p, &point{}))

}

func handler(id int) func() int {
	return func() int { return id }
}

func TestSame_Funcs(t *testing.T) {
	assert.False(t, uref.Same(listView, listView), "funcs are always changed")
	assert.False(t, uref.Same(handler(1), handler(2)), "same literal, different captures")

	var a, b func()
	assert.True(t, uref.Same(a, b), "nil funcs of one type")
	assert.False(t, uref.Same(a, listView))
}

func TestSame_NonComparable(t *testing.T) {
	h := holder{Items: []int{1}}
	assert.False(t, uref.Same(h, h), "non-comparable structs are always changed")

	var a, b any = []any{1}, []any{1}
	assert.False(t, uref.Same(a, b))
}

func TestShallowEqual(t *testing.T) {
	list := []string{"x"}
	assert.True(t, uref.ShallowEqual(nil, map[string]any{}))
	assert.True(t, uref.ShallowEqual(
		map[string]any{"id": 1, "items": list},
		map[string]any{"id": 1, "items": list},
	))
	assert.False(t, uref.ShallowEqual(
		map[string]any{"id": 1},
		map[string]any{"id": 2},
	))
	assert.False(t, uref.ShallowEqual(
		map[string]any{"id": 1},
		map[string]any{"id": 1, "extra": nil},
	), "added optional key")
	assert.False(t, uref.ShallowEqual(
		map[string]any{"id": 1, "a": nil},
		map[string]any{"id": 1, "b": nil},
	), "same count, different keys")
	assert.False(t, uref.ShallowEqual(
		map[string]any{"items": list},
		map[string]any{"items": []string{"x"}},
	), "no deep comparison")
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "reflect_test.listView", uref.FuncName(listView))
	assert.Equal(t, "reflect_test.widget.Render", uref.FuncName(widget{}.Render))
	assert.Equal(t, "", uref.FuncName(nil))
	assert.Equal(t, "", uref.FuncName(42))

	var nilFn func()
	assert.Equal(t, "", uref.FuncName(nilFn))
}

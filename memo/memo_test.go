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

package memo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/memo"
	"dirpx.dev/rerender/memo/strategy"
	"dirpx.dev/rerender/vnode"
)

type builds struct{ n int }

func (b *builds) fn(props, state map[string]any) apis.Node {
	b.n++
	return vnode.H("row", vnode.T("x"))
}

func state(m map[string]any) apis.StateFunc {
	return func() map[string]any { return m }
}

func TestRender_RowScenario(t *testing.T) {
	c := memo.New(strategy.Identity)
	b := &builds{}

	c.Render("row-1", map[string]any{"id": 1}, nil, b.fn)
	assert.Equal(t, 1, b.n)
	c.Render("row-1", map[string]any{"id": 1}, nil, b.fn)
	assert.Equal(t, 1, b.n)
	c.Render("row-1", map[string]any{"id": 2}, nil, b.fn)
	assert.Equal(t, 2, b.n)

	assert.Equal(t, apis.CacheStats{Hits: 1, Misses: 2}, c.Stats())
}

func TestRender_ReturnsSameObject(t *testing.T) {
	c := memo.New(strategy.Identity)
	b := &builds{}
	items := []int{1, 2}
	props := map[string]any{"items": items, "label": "x"}
	st := map[string]any{"done": false}

	first := c.Render("k", props, state(st), b.fn)
	second := c.Render("k", map[string]any{"items": items, "label": "x"}, state(map[string]any{"done": false}), b.fn)

	assert.Same(t, first, second)
	assert.Equal(t, 1, b.n)
}

func TestRender_Sensitivity(t *testing.T) {
	base := func() (map[string]any, map[string]any) {
		return map[string]any{"a": 1, "b": "x"}, map[string]any{"s": true}
	}
	cases := map[string]func(p, s map[string]any){
		"props value":   func(p, s map[string]any) { p["a"] = 2 },
		"props added":   func(p, s map[string]any) { p["c"] = nil },
		"props removed": func(p, s map[string]any) { delete(p, "b") },
		"state value":   func(p, s map[string]any) { s["s"] = false },
		"state added":   func(p, s map[string]any) { s["t"] = 0 },
		"state removed": func(p, s map[string]any) { delete(s, "s") },
		"key swapped":   func(p, s map[string]any) { delete(p, "b"); p["z"] = "x" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := memo.New(strategy.Identity)
			b := &builds{}
			p, s := base()
			c.Render("k", p, state(s), b.fn)

			p2, s2 := base()
			mutate(p2, s2)
			c.Render("k", p2, state(s2), b.fn)
			assert.Equal(t, 2, b.n)
		})
	}
}

func onClick(id int) func() int {
	return func() int { return id }
}

func TestRender_FuncPropsAlwaysRebuild(t *testing.T) {
	c := memo.New(strategy.Identity)
	var got []int
	build := func(props, _ map[string]any) apis.Node {
		got = append(got, props["onClick"].(func() int)())
		return vnode.H("button")
	}

	c.Render("row", map[string]any{"onClick": onClick(1)}, nil, build)
	c.Render("row", map[string]any{"onClick": onClick(2)}, nil, build)
	assert.Equal(t, []int{1, 2}, got, "output never holds a stale handler")

	h := onClick(3)
	c.Render("row", map[string]any{"onClick": h}, nil, build)
	c.Render("row", map[string]any{"onClick": h}, nil, build)
	assert.Equal(t, []int{1, 2, 3, 3}, got)
}

func TestRender_EmptyKeyAlwaysBuilds(t *testing.T) {
	c := memo.New(strategy.Identity)
	b := &builds{}
	p := map[string]any{"id": 1}
	c.Render("", p, nil, b.fn)
	c.Render("", p, nil, b.fn)
	assert.Equal(t, 2, b.n)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(2), c.Stats().Bypasses)
}

func TestRender_NoneStrategyAlwaysBuilds(t *testing.T) {
	c := memo.New(strategy.None)
	b := &builds{}
	p := map[string]any{"id": 1}
	c.Render("k", p, nil, b.fn)
	c.Render("k", p, nil, b.fn)
	assert.Equal(t, 2, b.n)
	assert.Equal(t, strategy.None, c.Strategy())
}

func TestRender_StampsKey(t *testing.T) {
	c := memo.New(strategy.Identity)
	out := c.Render("row-7", nil, nil, func(_, _ map[string]any) apis.Node { return vnode.H("tr") })
	assert.Equal(t, "row-7", out.Key())

	kept := c.Render("row-8", nil, nil, func(_, _ map[string]any) apis.Node { return vnode.H("tr").WithKey("own") })
	assert.Equal(t, "own", kept.Key())
}

func TestRender_NestedMemoDoesNotDeadlock(t *testing.T) {
	c := memo.New(strategy.Identity)
	out := c.Render("outer", nil, nil, func(_, _ map[string]any) apis.Node {
		inner := c.Render("inner", nil, nil, func(_, _ map[string]any) apis.Node { return vnode.H("span") })
		return vnode.H("div", inner.(*vnode.Node))
	})
	require.NotNil(t, out)
	assert.Equal(t, 2, c.Len())
}

func TestOnDestroy_EvictsMatchingEntry(t *testing.T) {
	c := memo.New(strategy.Identity)
	b := &builds{}
	p := vnode.NewPatcher(c)

	row := c.Render("row-1", map[string]any{"id": 1}, nil, b.fn).(*vnode.Node)
	tree, err := p.Patch(nil, vnode.H("table", row))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	_, err = p.Patch(tree, vnode.H("table"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Evictions)

	c.Render("row-1", map[string]any{"id": 1}, nil, b.fn)
	assert.Equal(t, 2, b.n, "evicted entry is rebuilt")
}

func TestOnDestroy_KeepsReplacementUnderSameKey(t *testing.T) {
	c := memo.New(strategy.Identity)
	p := vnode.NewPatcher(c)
	n := 0
	build := func(props, _ map[string]any) apis.Node {
		n++
		if props["open"] == true {
			return vnode.H("div", vnode.T("details"))
		}
		return vnode.H("span", vnode.T("summary"))
	}
	render := func(open bool) *vnode.Node {
		return c.Render("row", map[string]any{"open": open}, nil, build).(*vnode.Node)
	}

	tree, err := p.Patch(nil, vnode.H("ul", render(false)))
	require.NoError(t, err)

	// span is destroyed after the entry already holds the div
	tree, err = p.Patch(tree, vnode.H("ul", render(true)))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, uint64(0), c.Stats().Evictions)

	_, err = p.Patch(tree, vnode.H("ul", render(true)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(1), c.Stats().Hits)
}

func TestOnDestroy_AlwaysContinues(t *testing.T) {
	c := memo.New(strategy.Identity)
	ran := 0
	require.NoError(t, c.OnDestroy(nil, func() { ran++ }))
	require.NoError(t, c.OnDestroy(vnode.H("p").WithKey("unknown"), func() { ran++ }))
	assert.Equal(t, 2, ran)
}

func TestResetKeepsStats(t *testing.T) {
	c := memo.New(strategy.Identity)
	b := &builds{}
	c.Render("a", nil, nil, b.fn)
	c.Render("b", nil, nil, b.fn)
	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(2), c.Stats().Misses)
	assert.False(t, c.Evict("a"))
}

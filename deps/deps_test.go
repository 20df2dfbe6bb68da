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

package deps_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rerender/deps"
	"dirpx.dev/rerender/paths"
)

// child exposes its own declaration, like a connected child component.
type child struct {
	decl deps.Declaration
}

func (c *child) Dependencies() deps.Declaration { return c.decl }

func TestNormalize_LeavesAndGroups(t *testing.T) {
	d := deps.Group{
		"title": deps.P("app", "title"),
		"first": deps.P("list", 0),
		"raw":   deps.Key("user.name"),
		"inner": deps.Group{"flag": deps.P("settings", "flag")},
	}
	got, err := deps.Normalize(d, deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.title", "list.0", "settings.flag", "user.name"}, got.Sorted())
}

func TestNormalize_Nil(t *testing.T) {
	got, err := deps.Normalize(nil, deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestNormalize_DuplicatesAreIdempotent(t *testing.T) {
	d := deps.Group{
		"a": deps.P("x", "y"),
		"b": deps.Key("x.y"),
	}
	got, err := deps.Normalize(d, deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.y"}, got.Sorted())
}

func TestNormalize_OrderIndependent(t *testing.T) {
	// Repeat to exercise randomized map iteration.
	want := paths.NewSet("a", "b.c", "d.e.f")
	for i := 0; i < 20; i++ {
		d := deps.Group{
			"1": deps.P("d", "e", "f"),
			"2": deps.P("a"),
			"3": deps.P("b", "c"),
		}
		got, err := deps.Normalize(d, deps.Context{})
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	}
}

func TestNormalize_NestedIsTransitive(t *testing.T) {
	grandchild := &child{decl: deps.Group{"g": deps.P("deep", "value")}}
	kid := &child{decl: deps.Group{
		"c":  deps.P("kid"),
		"gc": deps.Of(grandchild),
	}}
	d := deps.Group{
		"own":  deps.P("own"),
		"kid":  deps.Of(kid),
		"same": deps.Of(grandchild), // diamond: absorbed twice, not a cycle
	}
	got, err := deps.Normalize(d, deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"deep.value", "kid", "own"}, got.Sorted())
}

func TestNormalize_FuncUsesContext(t *testing.T) {
	d := deps.Func(func(ctx deps.Context) deps.Declaration {
		return deps.Group{"item": deps.P("items", ctx.Props["id"])}
	})
	got, err := deps.Normalize(d, deps.Context{Props: map[string]any{"id": 7}})
	require.NoError(t, err)
	assert.Equal(t, []string{"items.7"}, got.Sorted())
}

func TestNormalize_Separator(t *testing.T) {
	n := deps.Normalizer{Separator: "/"}
	got, err := n.Normalize(deps.Group{"a": deps.P("a", "b"), "raw": deps.Key("x.y")}, deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "x.y"}, got.Sorted())
}

func TestNormalize_CycleIsStructuralError(t *testing.T) {
	parent := &child{}
	kid := &child{decl: deps.Group{"back": deps.Of(parent)}}
	parent.decl = deps.Group{"kid": deps.Of(kid)}

	_, err := deps.Normalize(deps.Group{"root": deps.Of(parent)}, deps.Context{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, deps.ErrStructural))

	var se *deps.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "cyclic declaration", se.Reason)
	assert.Equal(t, []string{"root", "kid", "back"}, se.Trail)
}

// scoped prefixes every path of inner with key, the way a reusable
// declaration helper would.
func scoped(key string, inner deps.Declaration) deps.Declaration {
	return deps.Func(func(ctx deps.Context) deps.Declaration {
		g := deps.Group{key: deps.P(key)}
		if inner != nil {
			g["inner"] = inner
		}
		return g
	})
}

func TestNormalize_NestedFuncsFromOneHelper(t *testing.T) {
	got, err := deps.Normalize(scoped("a", scoped("b", scoped("c", nil))), deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got.Sorted())
}

func TestNormalize_SelfReturningFuncIsBounded(t *testing.T) {
	var loop deps.Func
	loop = func(deps.Context) deps.Declaration { return loop }

	_, err := deps.Normalize(loop, deps.Context{})
	var se *deps.StructuralError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Reason, "nest deeper than 64")

	_, err = deps.Normalizer{MaxDepth: 3}.Normalize(loop, deps.Context{})
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Reason, "nest deeper than 3")

	assert.Nil(t, deps.Resolve(loop, deps.Context{}))
}

func TestNormalize_SelfContainingGroup(t *testing.T) {
	g := deps.Group{"a": deps.P("a")}
	g["self"] = g
	_, err := deps.Normalize(g, deps.Context{})
	assert.ErrorIs(t, err, deps.ErrStructural)
}

func TestNormalize_EmptyPath(t *testing.T) {
	_, err := deps.Normalize(deps.Group{"bad": deps.P()}, deps.Context{})
	assert.ErrorIs(t, err, deps.ErrStructural)
}

func TestNormalize_MaxDepth(t *testing.T) {
	d := deps.Group{"a": deps.Group{"b": deps.Group{"c": deps.P("x")}}}

	_, err := deps.Normalizer{MaxDepth: 2}.Normalize(d, deps.Context{})
	assert.ErrorIs(t, err, deps.ErrStructural)

	got, err := deps.Normalizer{MaxDepth: 3}.Normalize(d, deps.Context{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Sorted())
}

func TestResolve_UnwrapsFuncs(t *testing.T) {
	inner := deps.Group{"a": deps.P("a")}
	d := deps.Func(func(deps.Context) deps.Declaration {
		return deps.Func(func(deps.Context) deps.Declaration { return inner })
	})
	got := deps.Resolve(d, deps.Context{})
	assert.Equal(t, inner, got)
	assert.Nil(t, deps.Resolve(nil, deps.Context{}))
}

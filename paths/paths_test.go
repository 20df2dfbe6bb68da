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

package paths_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/rerender/paths"
)

func TestOf_MixedSegments(t *testing.T) {
	p := paths.Of("list", 3, "title")
	assert.Equal(t, paths.Path{"list", "3", "title"}, p)
	assert.Equal(t, "list.3.title", p.String())
	assert.Equal(t, "list/3/title", p.Join("/"))
}

func TestParse_RoundTrip(t *testing.T) {
	assert.Equal(t, paths.Path{}, paths.Parse("", "."))
	assert.Equal(t, paths.Path{"a", "b"}, paths.Parse("a.b", ""))
	assert.Equal(t, "a.b.c", paths.Parse("a.b.c", ".").Join("."))
}

func TestChild_DoesNotAlias(t *testing.T) {
	base := make(paths.Path, 1, 4)
	base[0] = "a"
	x := base.Child("x")
	y := base.Child("y")
	assert.Equal(t, "a.x", x.String())
	assert.Equal(t, "a.y", y.String())
}

func TestSet(t *testing.T) {
	s := paths.NewSet("b", "a")
	s.Add("a")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
	assert.True(t, s.Equal(paths.NewSet("a", "b")))
	assert.False(t, s.Equal(paths.NewSet("a", "c")))
}

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

package strategy

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/component"
	uref "dirpx.dev/rerender/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that names a component after
// its view: "pkg.Func" for functions, "pkg.Type" for other values.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = reflectStrategy{}

// typeNameCache caches resolved type names.
var typeNameCache sync.Map // key: reflect.Type, val: string

// TryResolve computes the name of m.View. Anonymous views are not handled.
func (reflectStrategy) TryResolve(m *component.Meta) (string, bool) {
	if m == nil || m.View == nil {
		return "", false
	}
	name := viewName(m.View)
	return name, name != ""
}

// viewName returns the reflected name of a view value.
func viewName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Func {
		name := uref.FuncName(v)
		if isClosure(name) {
			return ""
		}
		return name
	}
	return byType(t)
}

// isClosure reports whether name is a compiler-generated closure name such
// as "pkg.outer.func1" or "pkg.outer.func1.2".
func isClosure(name string) bool {
	for _, seg := range strings.Split(name, ".")[1:] {
		if rest, ok := strings.CutPrefix(seg, "func"); ok && rest != "" && strings.Trim(rest, "0123456789") == "" {
			return true
		}
	}
	return false
}

// byType resolves "pkg.Type" for t with memoization.
func byType(t reflect.Type) string {
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	name := ""
	if p := base.PkgPath(); p != "" && base.Name() != "" {
		name = path.Base(p) + "." + stripTypeParams(base.Name())
	}
	typeNameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

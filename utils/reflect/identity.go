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

package reflect

import (
	"path"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// Same reports whether a and b are the same value under shallow identity rules.
//
// Rules:
//   - nil is only Same as nil.
//   - values of different dynamic types are never Same.
//   - map, chan and pointer values compare by identity of the underlying
//     storage.
//   - non-nil funcs are never Same. Closures created by one literal share a
//     code pointer whatever they capture, so there is no identity to compare.
//   - slices compare by backing array and length.
//   - other values compare with == when they are comparable at runtime;
//     non-comparable values (e.g. a struct holding a slice) are never Same.
//
// Same never inspects nested values, so it is O(1) for every input.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// ShallowEqual compares two key/value sets one level deep.
//
// Differing key counts are a mismatch before any value is inspected, which
// catches added or removed optional keys. A nil map equals an empty map.
func ShallowEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Same(av, bv) {
			return false
		}
	}
	return true
}

// funcNameCache caches display names by code pointer.
var funcNameCache sync.Map // key: uintptr, val: string

// FuncName returns a short "pkg.Func" name for a function value, or "" if
// fn is nil or not a function.
//
// Method values lose their "-fm" suffix and generic instantiations are
// stripped: "dirpx.dev/app/views.List[...]" -> "views.List".
func FuncName(fn any) string {
	if fn == nil {
		return ""
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	pc := v.Pointer()
	if name, ok := funcNameCache.Load(pc); ok {
		return name.(string)
	}

	name := ""
	if f := runtime.FuncForPC(pc); f != nil {
		name = shortName(f.Name())
	}
	funcNameCache.Store(pc, name)
	return name
}

// shortName trims the import path and runtime decorations from a symbol name.
func shortName(full string) string {
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.Index(full, "[...]"); i >= 0 {
		full = full[:i] + full[i+len("[...]"):]
	}
	return path.Base(full)
}

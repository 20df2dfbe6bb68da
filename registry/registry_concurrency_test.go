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

package registry_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/rerender/component"
	"dirpx.dev/rerender/registry"
)

// TestConcurrentReadersDuringMutation verifies that snapshots taken from
// other goroutines are race-free while the owner mutates the registry.
func TestConcurrentReadersDuringMutation(t *testing.T) {
	reg := registry.New()
	comps := make([]*component.Instance, 16)
	for i := range comps {
		comps[i] = component.New("C", nil, nil)
	}

	stop := make(chan struct{})
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 2

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				for _, e := range reg.Entries() {
					if len(e.Components) == 0 {
						t.Errorf("empty entry %q observed", e.Path)
						return
					}
				}
				_ = reg.Lookup("shared")
				_ = reg.Count()
			}
		}()
	}

	for round := 0; round < 200; round++ {
		for _, c := range comps {
			reg.Update(c, []string{"shared", "own"})
		}
		for _, c := range comps {
			reg.Unregister(c)
		}
	}
	close(stop)
	wg.Wait()

	if reg.Count() != 0 {
		t.Fatalf("Count() = %d after unregistering all, want 0", reg.Count())
	}
}

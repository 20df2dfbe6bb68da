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

// Package registry implements the dependency registry: a mutable mapping
// from canonical state path to the mounted components subscribed to it.
//
// The registry is mutated only by the lifecycle adapter while a patch runs,
// and read by the change walker before the patch starts. It is guarded by a
// mutex so snapshots may also be taken from other goroutines (metrics
// scrapes, devtools bridges).
package registry

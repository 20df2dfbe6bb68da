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

package deps

import (
	"errors"
	"strings"
)

// ErrStructural is matched (via errors.Is) by every StructuralError.
var ErrStructural = errors.New("rerender(deps): structural error")

// StructuralError reports a declaration that does not terminate or is
// otherwise malformed. Trail lists the group keys leading to the offending
// node.
type StructuralError struct {
	Trail  []string
	Reason string
}

// Error implements error.
func (e *StructuralError) Error() string {
	if len(e.Trail) == 0 {
		return ErrStructural.Error() + ": " + e.Reason
	}
	return ErrStructural.Error() + " at " + strings.Join(e.Trail, " > ") + ": " + e.Reason
}

// Is makes errors.Is(err, ErrStructural) succeed.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

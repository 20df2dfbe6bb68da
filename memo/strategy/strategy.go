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

// Package strategy enumerates the retention policies of the memoization cache.
package strategy

import (
	"fmt"
	"strings"
)

// Strategy controls whether and how the memoization cache retains rendered
// output between renders.
//
// # Values
//
//   - Identity: entries are keyed by the caller-supplied identity key and
//     live until the node rendered for that key is destroyed.
//   - None:     caching disabled (pass-through behavior).
//
// # Contract
//
//   - Cache implementations MUST treat Strategy as a stable, public API;
//     adding new values is allowed, but existing values MUST NOT change
//     their semantics in breaking ways.
//   - Strategy values are plain integers and safe to share across goroutines.
type Strategy int

const (
	// Identity selects key-scoped memoization.
	//
	// # Semantics
	//
	// For a given identity key the cache keeps exactly one entry: the last
	// rendered output plus the props and resolved state used to produce it.
	// A render whose props and state are shallowly equal to the entry's
	// returns the cached output unmodified. Entries are evicted only when
	// the output node is removed from the live tree; there is no capacity
	// or time based eviction.
	Identity Strategy = iota

	// None disables memoization.
	//
	// # Semantics
	//
	// Every render invokes the build function and nothing is retained.
	// Useful in tests to compare behavior with and without memoization.
	None
)

// String returns "Identity", "None", or "Unknown(<n>)" for out-of-range
// values. It never panics.
func (s Strategy) String() string {
	switch s {
	case Identity:
		return "Identity"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Valid reports whether s is a defined value.
func (s Strategy) Valid() bool {
	return s == Identity || s == None
}

// Parse parses a textual representation of a Strategy, case-insensitively
// and ignoring surrounding whitespace.
//
// On failure, Parse returns None and a non-nil error; callers MUST NOT rely
// on the returned Strategy value in the error case.
//
//	s, err := Parse("identity")
//	if err != nil {
//	    // handle invalid configuration
//	}
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return None, fmt.Errorf("memo: empty strategy")
	}

	switch strings.ToUpper(trimmed) {
	case "IDENTITY":
		return Identity, nil
	case "NONE":
		return None, nil
	default:
		return None, fmt.Errorf("memo: unknown strategy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input. Intended for
// hard-coded values and tests.
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than a serialized "Unknown(...)" form.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("memo: cannot marshal unknown strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure the receiver
// is left unchanged.
func (s *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = value
	return nil
}

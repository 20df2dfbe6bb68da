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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dirpx.dev/rerender/apis"
	"dirpx.dev/rerender/memo/strategy"
	"dirpx.dev/rerender/paths"
)

const (
	// DefaultSeparator joins path segments into canonical path strings.
	DefaultSeparator = paths.Separator
	// DefaultDiagnosticsEvent is the name of the diagnostics event.
	DefaultDiagnosticsEvent = "rerender.dev.components"
	// DefaultMemoStrategy enables key-scoped memoization.
	DefaultMemoStrategy = strategy.Identity

	// EnvVar selects the build mode: "production", "test" or "development".
	EnvVar = "RERENDER_ENV"
	// MaxFileSize bounds configuration files read by Load.
	MaxFileSize = 1 << 20
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Separator:        DefaultSeparator,
		DiagnosticsEvent: DefaultDiagnosticsEvent,
		MemoStrategy:     DefaultMemoStrategy,
	}
}

// Validate checks cfg against its field constraints.
func Validate(cfg apis.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("rerender(config): %w", err)
	}
	return nil
}

// Parse decodes YAML over DefaultConfig, applies opts, and validates the
// result. Unknown keys are rejected.
func Parse(data []byte, opts ...Option) (apis.Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("rerender(config): decoding: %w", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML file and parses it with Parse.
func Load(path string, opts ...Option) (apis.Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("rerender(config): %w", err)
	}
	if info.Size() > MaxFileSize {
		return apis.Config{}, fmt.Errorf("rerender(config): %s too large: %d bytes (max %d)", path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("rerender(config): %w", err)
	}
	return Parse(data, opts...)
}

// FromEnv returns an Option applying EnvVar. Unset or unknown values leave
// the configuration unchanged.
func FromEnv() Option {
	return func(c *apis.Config) {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvVar))) {
		case "production", "prod":
			c.Production = true
			c.Test = false
		case "test":
			c.Test = true
			c.Production = false
		case "development", "dev":
			c.Production = false
			c.Test = false
		}
	}
}

// FromEnvConfig returns DefaultConfig with EnvVar applied.
func FromEnvConfig() apis.Config {
	return NewConfig(FromEnv())
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithProduction disables registry hooks and diagnostics.
func WithProduction(on bool) Option {
	return func(c *apis.Config) {
		c.Production = on
	}
}

// WithTest makes Connect return bare views.
func WithTest(on bool) Option {
	return func(c *apis.Config) {
		c.Test = on
	}
}

// WithSeparator sets the path separator. An empty value resets to the default.
func WithSeparator(sep string) Option {
	return func(c *apis.Config) {
		if sep == "" {
			sep = DefaultSeparator
		}
		c.Separator = sep
	}
}

// WithDiagnosticsEvent sets the diagnostics event name. An empty value
// resets to the default.
func WithDiagnosticsEvent(name string) Option {
	return func(c *apis.Config) {
		if name == "" {
			name = DefaultDiagnosticsEvent
		}
		c.DiagnosticsEvent = name
	}
}

// WithMemoStrategy sets the memoization strategy.
func WithMemoStrategy(s strategy.Strategy) Option {
	return func(c *apis.Config) {
		c.MemoStrategy = s
	}
}

// WithMaxDeclarationDepth bounds declaration nesting.
// A negative value resets to 0 (unbounded).
func WithMaxDeclarationDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth < 0 {
			depth = 0
		}
		c.MaxDeclarationDepth = depth
	}
}

// WithComponentAliases merges display-name aliases into the configuration.
func WithComponentAliases(aliases map[string]string) Option {
	return func(c *apis.Config) {
		if len(aliases) == 0 {
			return
		}
		m := maps.Clone(c.ComponentAliases)
		if m == nil {
			m = make(map[string]string, len(aliases))
		}
		maps.Copy(m, aliases)
		c.ComponentAliases = m
	}
}

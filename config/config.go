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
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"dirpx.dev/oversight/apis"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMinLevel represents the default for MinLevel.
	// Debug tracing is suppressed unless explicitly requested.
	DefaultMinLevel = apis.LevelInfo
	// DefaultTimeFormat represents the default for TimeFormat.
	DefaultTimeFormat = "2006/01/02 15:04:05"
)

// ErrUnknownLevel is returned when a level name cannot be parsed.
var ErrUnknownLevel = errors.New("oversight(config): unknown log level")

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:  DefaultMaxUnwrap,
		MinLevel:   DefaultMinLevel,
		TimeFormat: DefaultTimeFormat,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMinLevel sets the MinLevel option.
func WithMinLevel(level apis.Level) Option {
	return func(c *apis.Config) {
		c.MinLevel = level
	}
}

// WithTimeFormat sets the TimeFormat option.
// An empty layout resets to the default.
func WithTimeFormat(layout string) Option {
	return func(c *apis.Config) {
		if layout == "" {
			layout = DefaultTimeFormat
		}
		c.TimeFormat = layout
	}
}

// environment mirrors apis.Config as environment variables.
type environment struct {
	MaxUnwrap  int    `env:"OVERSIGHT_MAX_UNWRAP" envDefault:"8"`
	LogLevel   string `env:"OVERSIGHT_LOG_LEVEL" envDefault:"info"`
	TimeFormat string `env:"OVERSIGHT_LOG_TIME_FORMAT"`
}

// FromEnv loads configuration from environment variables, starting from
// DefaultConfig. Unset variables keep their defaults.
func FromEnv() (apis.Config, error) {
	var e environment
	if err := env.Parse(&e); err != nil {
		return DefaultConfig(), fmt.Errorf("parse env: %w", err)
	}
	level, err := ParseLevel(e.LogLevel)
	if err != nil {
		return DefaultConfig(), err
	}
	return NewConfig(
		WithMaxUnwrap(e.MaxUnwrap),
		WithMinLevel(level),
		WithTimeFormat(e.TimeFormat),
	), nil
}

// ParseLevel maps "info", "warn", "error" and "debug" (case-insensitive,
// "warning" accepted) to an apis.Level.
func ParseLevel(s string) (apis.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return apis.LevelInfo, nil
	case "warn", "warning":
		return apis.LevelWarn, nil
	case "error":
		return apis.LevelError, nil
	case "debug":
		return apis.LevelDebug, nil
	default:
		return DefaultMinLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

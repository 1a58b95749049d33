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

package logsink

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/config"
)

// Option configures a writer sink.
type Option func(*writerSink)

// WithMinLevel suppresses messages more verbose than level.
func WithMinLevel(level apis.Level) Option {
	return func(s *writerSink) { s.min = level }
}

// WithTimeFormat sets the time layout of the line prefix.
func WithTimeFormat(layout string) Option {
	return func(s *writerSink) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *writerSink) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a sink writing one line per message to w.
// A nil writer discards output.
func New(w io.Writer, opts ...Option) apis.Sink {
	if w == nil {
		w = io.Discard
	}
	s := &writerSink{
		// log.Logger serializes writes; timestamps are rendered by the sink
		// so the layout stays configurable.
		out:    log.New(w, "", 0),
		min:    config.DefaultMinLevel,
		layout: config.DefaultTimeFormat,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig returns a sink honoring cfg.MinLevel and cfg.TimeFormat.
func FromConfig(w io.Writer, cfg apis.Config) apis.Sink {
	return New(w, WithMinLevel(cfg.MinLevel), WithTimeFormat(cfg.TimeFormat))
}

// writerSink renders "[time][LEVEL] message" lines through a log.Logger.
type writerSink struct {
	// out serializes writes to the underlying writer.
	out *log.Logger
	// min is the most verbose level still emitted.
	min apis.Level
	// layout is the time.Format layout of the prefix.
	layout string
	// now returns the current time.
	now func() time.Time
}

// Print implements apis.Sink.
func (s *writerSink) Print(level apis.Level, format string, args ...any) {
	if !Enabled(s.min, level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.out.Printf("[%s][%s] %s", s.now().Format(s.layout), level, msg)
}

// Enabled reports whether a sink with threshold min emits level.
func Enabled(min, level apis.Level) bool {
	return level.Verbosity() <= min.Verbosity()
}

// Discard is a sink that drops every message.
var Discard apis.Sink = discard{}

type discard struct{}

func (discard) Print(apis.Level, string, ...any) {}

// holder wraps the default sink so atomic.Pointer has a concrete type.
type holder struct{ s apis.Sink }

// def is the process-wide default sink.
var def atomic.Pointer[holder]

func init() {
	def.Store(&holder{s: FromConfig(os.Stderr, config.DefaultConfig())})
}

// Configure applies cfg.MinLevel and cfg.TimeFormat to the default sink if it
// was built by New or FromConfig. Other sinks are left alone; it reports
// whether the default was replaced.
func Configure(cfg apis.Config) bool {
	for {
		cur := def.Load()
		ws, ok := cur.s.(*writerSink)
		if !ok {
			return false
		}
		n := *ws
		n.min = cfg.MinLevel
		if cfg.TimeFormat != "" {
			n.layout = cfg.TimeFormat
		}
		if def.CompareAndSwap(cur, &holder{s: &n}) {
			return true
		}
	}
}

// Default returns the process-wide default sink.
func Default() apis.Sink {
	return def.Load().s
}

// SetDefault replaces the process-wide default sink and returns the previous
// one. A nil sink installs Discard.
func SetDefault(s apis.Sink) apis.Sink {
	if s == nil {
		s = Discard
	}
	return def.Swap(&holder{s: s}).s
}

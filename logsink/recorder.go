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
	"strings"
	"sync"

	"dirpx.dev/oversight/apis"
)

// Record is a single captured message.
type Record struct {
	Level   apis.Level
	Message string
}

// Recorder is an in-memory sink that keeps every message. It is meant for tests.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// Compile-time safety: *Recorder implements apis.Sink.
var _ apis.Sink = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Print implements apis.Sink.
func (r *Recorder) Print(level apis.Level, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.mu.Lock()
	r.records = append(r.records, Record{Level: level, Message: msg})
	r.mu.Unlock()
}

// Records returns a copy of the captured messages in arrival order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Count returns how many messages at level contain substr.
// An empty substr matches every message at that level.
func (r *Recorder) Count(level apis.Level, substr string) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level == level && strings.Contains(rec.Message, substr) {
			n++
		}
	}
	return n
}

// Reset drops all captured messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}

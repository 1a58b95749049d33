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
	"sync"

	"dirpx.dev/oversight/apis"
)

// Group fans out every message to a set of sinks.
// It is safe for concurrent use; Print works on a snapshot of the members.
type Group struct {
	// mu protects sinks.
	mu sync.RWMutex
	// sinks are the members in insertion order.
	sinks []apis.Sink
}

// Compile-time safety: *Group implements apis.Sink.
var _ apis.Sink = (*Group)(nil)

// NewGroup constructs a fan-out group. Nil sinks are ignored.
func NewGroup(sinks ...apis.Sink) *Group {
	g := &Group{}
	for _, s := range sinks {
		g.Add(s)
	}
	return g
}

// Add appends a sink to the group. Nil sinks are ignored.
func (g *Group) Add(s apis.Sink) {
	if s == nil {
		return
	}
	g.mu.Lock()
	g.sinks = append(g.sinks, s)
	g.mu.Unlock()
}

// Len returns the number of member sinks.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.sinks)
}

// Print implements apis.Sink by forwarding to every member.
func (g *Group) Print(level apis.Level, format string, args ...any) {
	g.mu.RLock()
	snapshot := g.sinks
	g.mu.RUnlock()

	for _, s := range snapshot {
		s.Print(level, format, args...)
	}
}

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

package apis

import "reflect"

// Registry is the process-wide type->collector directory.
// At most one collector may ever be claimed per concrete type.
type Registry interface {
	// Claim atomically binds c to its managed type. It fails with a duplicate
	// collector error if the type is already served.
	Claim(c Collector) error
	// Lookup returns the collector claimed for t, if any.
	Lookup(t reflect.Type) (Collector, bool)
	// Resolve returns the collector responsible for t, degrading to the
	// fallback collector when no collector was claimed.
	Resolve(t reflect.Type) Collector
	// Register binds an initialized entity to the collector for its type.
	// It returns true only if binding succeeded.
	Register(e Entity) bool
	// Entries returns a snapshot of claimed collectors (order is unspecified).
	// The fallback binding is not included.
	Entries() []Entry
	// Count returns the number of claimed collectors, excluding the fallback.
	Count() int
}

// Entry is a single (type, collector) association in a Registry snapshot.
type Entry struct {
	// Type is the claimed concrete entity type.
	Type reflect.Type
	// Collector is the collector serving Type.
	Collector Collector
}

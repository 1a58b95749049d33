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

// Entity is the capability set every managed domain object exposes.
// Implementations embed entity.Base, which provides all of these methods.
type Entity interface {
	// ID returns the opaque unique identifier assigned at construction.
	ID() string
	// Type returns the concrete type token captured at construction.
	Type() reflect.Type
	// IsInitialized reports whether the create lifecycle has completed.
	IsInitialized() bool
	// IsEnabled reports whether the entity is bound to a collector.
	IsEnabled() bool
	// Collector returns the collector managing this entity, or nil.
	Collector() Collector
	// Bind sets the owning collector. It is reserved for the registry and for
	// manual attachment to independent collectors; it fails if already bound.
	Bind(c Collector) error
}

// PreCreator is implemented by entities that validate preconditions before
// creation. Returning false aborts the create lifecycle.
type PreCreator interface {
	PreCreate() bool
}

// AfterCreator is implemented by entities that run follow-up work once created.
// Returning false is reported but does not undo creation.
type AfterCreator interface {
	AfterCreate() bool
}

// Enabler is notified after an entity has been bound to a collector.
type Enabler interface {
	SetEnable(enable bool)
}

// Releaser undoes a bind. Release clears the owner only if it is still c and
// reports whether it did.
type Releaser interface {
	Release(c Collector) bool
}

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

// Collector manages the entities of exactly one concrete type.
type Collector interface {
	// ID returns the opaque unique identifier assigned at construction.
	ID() string
	// ManagedType returns the concrete entity type this collector serves.
	ManagedType() reflect.Type
	// Accept appends an entity already bound to this collector to its store.
	Accept(e Entity) error
	// Len returns the number of entities currently owned.
	Len() int
}

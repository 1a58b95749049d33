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

package strategy

import (
	"reflect"

	"dirpx.dev/oversight/apis"
)

// Lookuper is the read side of a registry.
type Lookuper interface {
	Lookup(t reflect.Type) (apis.Collector, bool)
}

// NewRegistryStrategy creates an apis.Strategy that resolves claimed types
// through reg.
func NewRegistryStrategy(reg Lookuper) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults the type->collector map.
type registryStrategy struct {
	reg Lookuper
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up t in the registry.
func (s *registryStrategy) TryResolve(t reflect.Type) (apis.Collector, bool) {
	if t == nil || s.reg == nil {
		return nil, false
	}
	c, ok := s.reg.Lookup(t)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

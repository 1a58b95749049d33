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

// Package fallback provides the inert collector/entity pair used when a type
// has no real collector, or when an entity is created independently.
//
// Entities bound to the fallback collector are unmanaged for all practical
// purposes: the collector accepts them without storing them. The fallback
// entity exists only to seed the registry under the reserved sentinel type.
package fallback

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/identity"
	"dirpx.dev/oversight/logsink"
	uref "dirpx.dev/oversight/utils/reflect"
)

// Placeholder is the reserved sentinel type the fallback collector manages.
// No real entity has this type.
type Placeholder struct{}

// ErrInert is returned when something tries to bind the fallback entity.
var ErrInert = errors.New("oversight(fallback): the fallback entity cannot be bound")

var (
	once      sync.Once
	collector *Manager
	entity    *Dummy
)

func build() {
	collector = &Manager{id: identity.New(), typ: reflect.TypeFor[Placeholder]()}
	entity = &Dummy{id: identity.New()}
}

// Type returns the sentinel type token.
func Type() reflect.Type {
	return reflect.TypeFor[Placeholder]()
}

// Collector returns the process-wide fallback collector.
func Collector() *Manager {
	once.Do(build)
	return collector
}

// Entity returns the process-wide fallback entity.
func Entity() *Dummy {
	once.Do(build)
	return entity
}

// Is reports whether c is the fallback collector.
func Is(c apis.Collector) bool {
	m, ok := c.(*Manager)
	return ok && m == Collector()
}

// Manager is the fallback collector. It performs no management.
type Manager struct {
	id  string
	typ reflect.Type
}

// Compile-time safety: *Manager implements apis.Collector.
var _ apis.Collector = (*Manager)(nil)

// ID implements apis.Collector.
func (m *Manager) ID() string { return m.id }

// ManagedType implements apis.Collector and returns the sentinel type.
func (m *Manager) ManagedType() reflect.Type { return m.typ }

// Accept implements apis.Collector. Entities are not stored.
func (m *Manager) Accept(apis.Entity) error { return nil }

// Len implements apis.Collector. It is always zero.
func (m *Manager) Len() int { return 0 }

func (m *Manager) String() string { return uref.Name(m.typ) + "@" + m.id }

// Dummy is the fallback entity.
type Dummy struct {
	id string
}

// Compile-time safety: *Dummy implements apis.Entity and apis.Enabler.
var (
	_ apis.Entity  = (*Dummy)(nil)
	_ apis.Enabler = (*Dummy)(nil)
)

// ID implements apis.Entity.
func (d *Dummy) ID() string { return d.id }

// Type implements apis.Entity and returns the sentinel type.
func (d *Dummy) Type() reflect.Type { return Type() }

// IsInitialized implements apis.Entity. The fallback entity is never created.
func (d *Dummy) IsInitialized() bool { return false }

// IsEnabled implements apis.Entity. The fallback entity is bound to the
// fallback collector from construction.
func (d *Dummy) IsEnabled() bool { return true }

// Collector implements apis.Entity and returns the fallback collector.
func (d *Dummy) Collector() apis.Collector { return Collector() }

// Bind implements apis.Entity. It always fails with ErrInert.
func (d *Dummy) Bind(apis.Collector) error { return ErrInert }

// SetEnable only reports misuse; it never changes state.
func (d *Dummy) SetEnable(bool) {
	logsink.Default().Print(apis.LevelError, "The oversight attempted to enable the dummy object[%s]", d.id)
}

func (d *Dummy) String() string { return uref.Name(Type()) + "@" + d.id }

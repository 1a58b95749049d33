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

package entity

import (
	"errors"
	"reflect"
	"sync/atomic"

	"dirpx.dev/oversight"
	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/fallback"
	"dirpx.dev/oversight/identity"
	uref "dirpx.dev/oversight/utils/reflect"
)

var (
	// ErrNotConstructed is returned by a zero Base that was not built with NewBase.
	ErrNotConstructed = errors.New("oversight(entity): entity was not constructed with NewBase")
	// ErrNotInitialized is returned when binding an entity that was not created.
	ErrNotInitialized = errors.New("oversight(entity): entity is not initialized")
	// ErrAlreadyEnabled is returned when binding an entity that already has an owner.
	ErrAlreadyEnabled = errors.New("oversight(entity): entity is already enabled")
	// ErrNilCollector is returned when binding to a nil collector.
	ErrNilCollector = errors.New("oversight(entity): nil collector provided")
)

// Base carries identity, initialization state and the owner reference of an
// entity. Embed it in domain types; the zero value is unusable.
//
// Base holds a pointer to shared state, so copies of a constructed Base refer
// to the same entity.
type Base struct {
	s *state
}

// state is the shared, concurrency-safe part of Base.
type state struct {
	// id is the opaque unique identifier.
	id string
	// typ is the concrete type token.
	typ reflect.Type
	// initialized is set once Create passes its pre-create step.
	initialized atomic.Bool
	// creating guards Create against concurrent runs on one entity.
	creating atomic.Bool
	// owner is the collector managing the entity, set at most once.
	owner atomic.Pointer[owner]
}

// owner wraps the collector so atomic.Pointer has a concrete type.
type owner struct {
	c apis.Collector
}

// NewBase returns a Base whose concrete type is T (pointers unwrapped).
// It panics if T is not a named type.
func NewBase[T any]() Base {
	return NewBaseOf(uref.MustTypeFor[T](oversight.Config()))
}

// NewBaseOf returns a Base for the explicit type token t (pointers unwrapped).
// It panics if t is nil or not a named type.
func NewBaseOf(t reflect.Type) Base {
	nt, err := uref.Normalize(t, oversight.Config())
	if err != nil {
		panic(err)
	}
	return Base{s: &state{id: identity.Next(), typ: nt}}
}

// base gives Create access to the embedded Base.
func (b *Base) base() *Base { return b }

// ID returns the unique identifier, or "" for an unconstructed Base.
func (b *Base) ID() string {
	if b.s == nil {
		return ""
	}
	return b.s.id
}

// Type returns the concrete type token, or nil for an unconstructed Base.
func (b *Base) Type() reflect.Type {
	if b.s == nil {
		return nil
	}
	return b.s.typ
}

// IsInitialized reports whether Create has completed its pre-create step.
func (b *Base) IsInitialized() bool {
	return b.s != nil && b.s.initialized.Load()
}

// IsEnabled reports whether the entity is bound to a collector.
func (b *Base) IsEnabled() bool {
	return b.Collector() != nil
}

// IsIndependent reports whether the entity is not managed by a real
// collector: either unbound or bound to the fallback collector.
func (b *Base) IsIndependent() bool {
	c := b.Collector()
	return c == nil || fallback.Is(c)
}

// Collector returns the collector managing the entity, or nil.
func (b *Base) Collector() apis.Collector {
	if b.s == nil {
		return nil
	}
	if o := b.s.owner.Load(); o != nil {
		return o.c
	}
	return nil
}

// Bind sets the owning collector. It is reserved for the registry; callers
// attach entities through Create. The owner can be set only once.
func (b *Base) Bind(c apis.Collector) error {
	if b.s == nil {
		return ErrNotConstructed
	}
	if c == nil {
		return ErrNilCollector
	}
	if !b.s.initialized.Load() {
		return ErrNotInitialized
	}
	if !b.s.owner.CompareAndSwap(nil, &owner{c: c}) {
		return ErrAlreadyEnabled
	}
	return nil
}

// Release clears the owner if it is still c. The registry calls it to undo a
// bind whose collector refused the entity.
func (b *Base) Release(c apis.Collector) bool {
	if b.s == nil || c == nil {
		return false
	}
	o := b.s.owner.Load()
	if o == nil || o.c != c {
		return false
	}
	return b.s.owner.CompareAndSwap(o, nil)
}

// String returns "pkg.Type@id".
func (b *Base) String() string {
	if b.s == nil {
		return "<unconstructed>"
	}
	return uref.Name(b.s.typ) + "@" + b.s.id
}

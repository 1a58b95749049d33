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

package collector

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"dirpx.dev/oversight"
	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/identity"
	"dirpx.dev/oversight/logsink"
	uref "dirpx.dev/oversight/utils/reflect"
)

var (
	// ErrTypeMismatch is returned when an entity of another type is accepted.
	ErrTypeMismatch = errors.New("oversight(collector): entity type does not match managed type")
	// ErrNotOwner is returned when accepting an entity bound to another collector.
	ErrNotOwner = errors.New("oversight(collector): entity is not bound to this collector")
)

// Collector owns the entities of one concrete type.
type Collector[E apis.Entity] struct {
	// id is the opaque unique identifier.
	id string
	// typ is the managed concrete type.
	typ reflect.Type
	// store holds owned entities.
	store *Store[E]
	// independent is set when created outside the registry.
	independent atomic.Bool
}

// Compile-time safety: *Collector implements apis.Collector.
var _ apis.Collector = (*Collector[apis.Entity])(nil)

// New returns a collector managing E's type (pointers unwrapped), so
// New[*Player]() manages Player. It panics if E is not a named type.
func New[E apis.Entity]() *Collector[E] {
	return NewOf[E](uref.MustTypeFor[E](oversight.Config()))
}

// NewOf returns a collector managing the explicit type token t (pointers
// unwrapped). It panics if t is nil or not a named type, or if E is a
// concrete type other than t: such a collector could never store an entity.
func NewOf[E apis.Entity](t reflect.Type) *Collector[E] {
	cfg := oversight.Config()
	nt, err := uref.Normalize(t, cfg)
	if err != nil {
		panic(err)
	}
	if et := reflect.TypeFor[E](); et.Kind() != reflect.Interface {
		if want := uref.MustTypeFor[E](cfg); want != nt {
			panic(fmt.Errorf("%w: collector of %s cannot manage %s", ErrTypeMismatch, uref.Name(want), uref.Name(nt)))
		}
	}
	return &Collector[E]{id: identity.Next(), typ: nt, store: NewStore[E]()}
}

// Option configures a single Create call.
type Option func(*options)

type options struct {
	independent bool
	reg         apis.Registry
	sink        apis.Sink
}

// Independent keeps the collector out of the registry. The caller owns its
// lifetime and attaches entities with entity.Into. Not recommended.
func Independent() Option {
	return func(o *options) { o.independent = true }
}

// WithRegistry claims through reg instead of oversight.Registry().
func WithRegistry(reg apis.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithSink reports through s instead of logsink.Default().
func WithSink(s apis.Sink) Option {
	return func(o *options) { o.sink = s }
}

// Create claims the managed type in the registry and returns c.
// A type that already has a collector fails with a
// *registry.DuplicateCollectorError; the existing binding is kept.
func (c *Collector[E]) Create(opts ...Option) (*Collector[E], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	sink := o.sink
	if sink == nil {
		sink = logsink.Default()
	}

	if o.independent {
		c.independent.Store(true)
		sink.Print(apis.LevelWarn, "IndependentType of Collector is not recommend for [%s], Please manage the instance object manually", c)
		return c, nil
	}

	if o.reg == nil {
		return c, oversight.Claim(c)
	}
	return c, o.reg.Claim(c)
}

// MustCreate is like Create but panics on error.
func (c *Collector[E]) MustCreate(opts ...Option) *Collector[E] {
	if _, err := c.Create(opts...); err != nil {
		panic(err)
	}
	return c
}

// ID implements apis.Collector.
func (c *Collector[E]) ID() string { return c.id }

// ManagedType implements apis.Collector.
func (c *Collector[E]) ManagedType() reflect.Type { return c.typ }

// IsIndependent reports whether the collector was created outside the registry.
func (c *Collector[E]) IsIndependent() bool { return c.independent.Load() }

// Accept implements apis.Collector. e must be an E of the managed type and
// already bound to c.
func (c *Collector[E]) Accept(e apis.Entity) error {
	typed, ok := e.(E)
	if !ok || e.Type() != c.typ {
		return fmt.Errorf("%w: %v is not %s", ErrTypeMismatch, e, uref.Name(c.typ))
	}
	if owner := e.Collector(); owner == nil || owner.ID() != c.id {
		return ErrNotOwner
	}
	return c.store.Append(typed)
}

// Len implements apis.Collector.
func (c *Collector[E]) Len() int { return c.store.Len() }

// Entities returns the owned entities in the order they were bound.
func (c *Collector[E]) Entities() []E { return c.store.Snapshot() }

// Get returns the owned entity with the given id.
func (c *Collector[E]) Get(id string) (E, bool) { return c.store.Get(id) }

// Equal reports whether other is the same collector: same id and managed type.
func (c *Collector[E]) Equal(other apis.Collector) bool {
	return other != nil && other.ID() == c.id && other.ManagedType() == c.typ
}

// String returns "pkg.Type@id".
func (c *Collector[E]) String() string {
	return uref.Name(c.typ) + "@" + c.id
}

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

package registry

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/config"
	"dirpx.dev/oversight/fallback"
	"dirpx.dev/oversight/logsink"
	"dirpx.dev/oversight/resolver"
	"dirpx.dev/oversight/strategy"
	uref "dirpx.dev/oversight/utils/reflect"
)

// tracerName is the instrumentation scope of registry spans.
const tracerName = "dirpx.dev/oversight/registry"

// Option configures a registry.
type Option func(*registry)

// WithSink routes registry reports to s instead of logsink.Default().
func WithSink(s apis.Sink) Option {
	return func(r *registry) { r.sink = s }
}

// WithTracerProvider traces registry operations with tp instead of the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *registry) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithStrategies inserts extra resolution strategies between the registry
// lookup and the fallback degrade.
func WithStrategies(strategies ...apis.Strategy) Option {
	return func(r *registry) { r.extra = append(r.extra, strategies...) }
}

// New constructs an empty Registry. Types are normalized according to cfg
// (only MaxUnwrap is used here).
func New(cfg apis.Config, opts ...Option) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	r := &registry{cfg: cfg, tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(r)
	}

	strats := make([]apis.Strategy, 0, len(r.extra)+2)
	strats = append(strats, strategy.NewRegistryStrategy(r))
	strats = append(strats, r.extra...)
	strats = append(strats, strategy.NewFallbackStrategy())
	r.res = resolver.New(strats...)
	return r
}

// registry is the default Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// sink receives reports; nil means logsink.Default().
	sink apis.Sink
	// tracer traces Claim and Register.
	tracer trace.Tracer
	// extra are caller-supplied strategies.
	extra []apis.Strategy
	// res resolves a type to its collector (registry, extra, fallback).
	res apis.Resolver
	// boot seeds the fallback binding once.
	boot sync.Once
	// mu guards write-side consistency and counter.
	mu sync.Mutex
	// m maps reflect.Type to the claimed apis.Collector.
	m sync.Map // map[reflect.Type]apis.Collector
	// count tracks claimed collectors, excluding the fallback.
	count int
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// bootstrap seeds the fallback collector under the sentinel type. Idempotent.
func (r *registry) bootstrap() {
	r.boot.Do(func() {
		r.m.LoadOrStore(fallback.Type(), apis.Collector(fallback.Collector()))
		r.report(apis.LevelDebug, "Initialized the collector registry for default")
	})
}

func (r *registry) report(level apis.Level, format string, args ...any) {
	s := r.sink
	if s == nil {
		s = logsink.Default()
	}
	s.Print(level, format, args...)
}

// normalize maps t to its registry key.
func (r *registry) normalize(t reflect.Type) (reflect.Type, error) {
	return uref.Normalize(t, r.cfg)
}

// Claim atomically binds c to its managed type.
func (r *registry) Claim(c apis.Collector) (err error) {
	r.bootstrap()
	if c == nil {
		return ErrNilCollector
	}
	key, err := r.normalize(c.ManagedType())
	if err != nil {
		return fmt.Errorf("oversight(registry): collector %s: %w", c.ID(), err)
	}
	name := uref.Name(key)

	_, span := r.tracer.Start(context.Background(), "oversight.registry.claim",
		trace.WithAttributes(
			attribute.String("oversight.type", name),
			attribute.String("oversight.collector.id", c.ID()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "duplicate collector")
		}
		span.End()
	}()

	r.report(apis.LevelDebug, "Attempting register type -> [%s], which collector id is [%s]", name, c.ID())

	// Fast read path: most duplicate claims are caught without locking.
	if old, ok := r.m.Load(key); ok {
		return r.duplicate(key, old.(apis.Collector), c)
	}

	// Write path: check and insert must be one step.
	r.mu.Lock()
	if old, ok := r.m.Load(key); ok {
		r.mu.Unlock()
		return r.duplicate(key, old.(apis.Collector), c)
	}
	r.m.Store(key, c)
	r.count++
	r.mu.Unlock()

	r.report(apis.LevelDebug, "The collector is created successfully: [%s@%s]", name, c.ID())
	return nil
}

func (r *registry) duplicate(key reflect.Type, existing, rejected apis.Collector) error {
	r.report(apis.LevelError, "Failed to register type -> [%s], already running for collector [%s]",
		uref.Name(key), existing.ID())
	return &DuplicateCollectorError{Type: key, Existing: existing, Rejected: rejected}
}

// Lookup returns the collector claimed for t, if any. The sentinel type
// resolves to the fallback collector.
func (r *registry) Lookup(t reflect.Type) (apis.Collector, bool) {
	r.bootstrap()
	if t == nil {
		return nil, false
	}
	key, err := r.normalize(t)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(key); ok {
		return v.(apis.Collector), true
	}
	return nil, false
}

// Resolve returns the collector responsible for t, degrading to the fallback.
func (r *registry) Resolve(t reflect.Type) apis.Collector {
	r.bootstrap()
	if t == nil {
		return fallback.Collector()
	}
	if key, err := r.normalize(t); err == nil {
		t = key
	}
	return r.res.Resolve(t)
}

// Register binds an initialized entity to the collector for its type.
func (r *registry) Register(e apis.Entity) (ok bool) {
	r.bootstrap()
	if e == nil {
		r.report(apis.LevelError, "Attempted to register a nil object, Aborting")
		return false
	}

	_, span := r.tracer.Start(context.Background(), "oversight.registry.register",
		trace.WithAttributes(
			attribute.String("oversight.type", uref.Name(e.Type())),
			attribute.String("oversight.entity.id", e.ID()),
		),
	)
	defer func() {
		span.SetAttributes(attribute.Bool("oversight.registered", ok))
		if !ok {
			span.SetStatus(codes.Error, "entity not registered")
		}
		span.End()
	}()

	if !e.IsInitialized() {
		r.report(apis.LevelWarn, "Object[%s] is need to initialize process, Aborting", e)
		return false
	}

	c := r.Resolve(e.Type())
	if c == nil {
		r.report(apis.LevelError, "Object[%s]'s collector is null, Something wrong", e)
		return false
	}
	degraded := fallback.Is(c)
	if degraded {
		r.report(apis.LevelWarn, "Not existed collector of Object[%s], Use instead default", e)
	}
	span.SetAttributes(
		attribute.String("oversight.collector.id", c.ID()),
		attribute.Bool("oversight.fallback", degraded),
	)

	if e.IsEnabled() {
		r.report(apis.LevelError, "Object[%s] was already enabled. it needs to disable the object. Skipping process", e)
		return false
	}
	if err := Attach(e, c); err != nil {
		r.report(apis.LevelError, "Failed to register the collector of Object[%s]: %v", e, err)
		return false
	}

	if !degraded {
		r.report(apis.LevelDebug, "Object[%s] registered successfully from %s", e, c.ID())
	}
	return true
}

// Entries returns a snapshot of claimed collectors (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	r.bootstrap()
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		c := value.(apis.Collector)
		if fallback.Is(c) {
			return true
		}
		entries = append(entries, apis.Entry{Type: key.(reflect.Type), Collector: c})
		return true
	})
	return entries
}

// Count returns the number of claimed collectors, excluding the fallback.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Attach binds e to c and appends it to c's store, then notifies an
// apis.Enabler. The bind is a single compare-and-swap on the entity, so
// concurrent attaches of one entity observe exactly one success. If c
// refuses the entity, the bind is undone through apis.Releaser.
func Attach(e apis.Entity, c apis.Collector) error {
	if e == nil {
		return ErrNilEntity
	}
	if c == nil {
		return ErrNilCollector
	}
	if !fallback.Is(c) && e.Type() != c.ManagedType() {
		return fmt.Errorf("%w: %s into collector of %s", ErrTypeMismatch, e, uref.Name(c.ManagedType()))
	}
	if err := e.Bind(c); err != nil {
		return fmt.Errorf("oversight(registry): bind %s to %s: %w", e.ID(), c.ID(), err)
	}
	if err := c.Accept(e); err != nil {
		if rel, ok := e.(apis.Releaser); ok {
			rel.Release(c)
		}
		return fmt.Errorf("oversight(registry): store %s in %s: %w", e.ID(), c.ID(), err)
	}
	if en, ok := e.(apis.Enabler); ok {
		en.SetEnable(true)
	}
	return nil
}

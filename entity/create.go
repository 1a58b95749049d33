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
	"dirpx.dev/oversight"
	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/fallback"
	"dirpx.dev/oversight/logsink"
	"dirpx.dev/oversight/registry"
)

// Option configures a single Create call.
type Option func(*options)

type options struct {
	// checkHooks enables the PreCreate/AfterCreate hooks.
	checkHooks bool
	// target bypasses the registry when non-nil.
	target apis.Collector
	// reg overrides the global registry.
	reg apis.Registry
	// sink overrides logsink.Default().
	sink apis.Sink
}

// WithoutHooks skips PreCreate and AfterCreate.
func WithoutHooks() Option {
	return func(o *options) { o.checkHooks = false }
}

// Independent binds the entity to the fallback collector without consulting
// the registry.
func Independent() Option {
	return func(o *options) { o.target = fallback.Collector() }
}

// Into binds the entity to c without consulting the registry. This is how
// entities are attached to collectors created with collector.Independent.
// c must manage the entity's type.
func Into(c apis.Collector) Option {
	return func(o *options) { o.target = c }
}

// WithRegistry registers through reg instead of oversight.Registry().
func WithRegistry(reg apis.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithSink reports through s instead of logsink.Default().
func WithSink(s apis.Sink) Option {
	return func(o *options) { o.sink = s }
}

// embedder is satisfied by every type embedding Base.
type embedder interface {
	base() *Base
}

// Create runs the create lifecycle on e and returns e.
//
//   - An already initialized entity is returned unchanged (reported as a warning).
//   - If hooks are enabled and PreCreate returns false, e stays uninitialized.
//   - Otherwise e is marked initialized and bound: to the target collector
//     (Independent, Into) or through the registry.
//   - If hooks are enabled and AfterCreate returns false, the failure is
//     reported; initialization and binding are kept.
//
// Create never fails loudly; inspect e.IsInitialized() and e.IsEnabled().
func Create[E apis.Entity](e E, opts ...Option) E {
	o := options{checkHooks: true}
	for _, opt := range opts {
		opt(&o)
	}
	sink := o.sink
	if sink == nil {
		sink = logsink.Default()
	}

	em, ok := any(e).(embedder)
	if !ok || em.base().s == nil {
		sink.Print(apis.LevelError, "Object[%v] was corrupted! was it constructed with entity.NewBase?", e)
		return e
	}
	st := em.base().s

	if st.initialized.Load() {
		sink.Print(apis.LevelWarn, "Object[%s] is already created!", st.id)
		return e
	}
	if !st.creating.CompareAndSwap(false, true) {
		sink.Print(apis.LevelWarn, "Object[%s] is being created by another caller", st.id)
		return e
	}
	defer st.creating.Store(false)

	sink.Print(apis.LevelDebug, "Creating Object[%s]", st.id)

	if o.checkHooks {
		if h, ok := any(e).(apis.PreCreator); ok && !h.PreCreate() {
			sink.Print(apis.LevelError, "Object[%s]: Failed to pass from PreCreate() method", e)
			return e
		}
	}

	st.initialized.Store(true)

	switch {
	case o.target != nil && fallback.Is(o.target):
		if err := registry.Attach(e, o.target); err != nil {
			sink.Print(apis.LevelError, "Object[%s]: %v", e, err)
		} else {
			sink.Print(apis.LevelWarn, "Enabled Object[%s], which is independent type", st.id)
		}
	case o.target != nil:
		if err := registry.Attach(e, o.target); err != nil {
			sink.Print(apis.LevelError, "Object[%s]: %v", e, err)
		} else {
			sink.Print(apis.LevelInfo, "Enabled Object[%s], attached manually -> [%s]", st.id, o.target.ID())
		}
	default:
		reg := o.reg
		if reg == nil {
			reg = oversight.Registry()
		}
		if reg.Register(e) {
			sink.Print(apis.LevelDebug, "Enabled Object[%s], hooked by collector -> [%s]", st.id, e.Collector().ID())
		}
	}

	sink.Print(apis.LevelDebug, "Object[%s]: created complete", e)

	if o.checkHooks {
		if h, ok := any(e).(apis.AfterCreator); ok && !h.AfterCreate() {
			sink.Print(apis.LevelError, "Object[%s]: Failed to pass from AfterCreate() method", e)
		}
	}
	return e
}

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

package oversight

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/builder"
	"dirpx.dev/oversight/config"
	"dirpx.dev/oversight/logsink"
)

// init initializes the global state. The registry itself seeds its fallback
// binding lazily, on first use.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, nil)
	st.Store(s)
}

// ErrNilRegistry is returned when a builder returns a nil registry.
var ErrNilRegistry = errors.New("oversight: builder returned nil registry")

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the global registry through the builder (carrying over every
// claim), unless the registry is pinned, and applies cfg.MinLevel and
// cfg.TimeFormat to the default sink when it was built by logsink.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = old.bld.BuildRegistry(cfg, old.reg, old.ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(old.with(func(s *state) {
		s.cfg = cfg
		s.reg = nreg
	}))
	logsink.Configure(cfg)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// Claim claims c's managed type in the global registry. Claims and registry
// rebuilds are mutually exclusive, so a claim is never lost to a concurrent
// SetConfig, SetBuilder or SetExt. Prefer it over Registry().Claim.
func Claim(c apis.Collector) error {
	buildMu.RLock()
	defer buildMu.RUnlock()
	return st.Load().reg.Claim(c)
}

// SetRegistry sets the global registry to reg and pins it.
// Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	st.Store(st.Load().with(func(s *state) {
		s.reg = reg
		s.preg = true
	}))
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the registry unless
// it is pinned. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(old.with(func(s *state) {
		s.bld = b
		s.reg = nreg
	}))
}

// SetExt replaces the extension payload and rebuilds the registry unless it
// is pinned. The default builder understands builder.Ext.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nreg := old.reg
	if !old.preg {
		nreg = old.bld.BuildRegistry(old.cfg, old.reg, ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(old.with(func(s *state) {
		s.ext = ext
		s.reg = nreg
	}))
}

// ExtAs returns the global extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops configuration changes from rebuilding the registry.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(st.Load().with(func(s *state) { s.preg = true }))
}

// UnpinRegistry lets configuration changes rebuild the registry again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(st.Load().with(func(s *state) { s.preg = false }))
}

// SetAll explicitly sets all global state components.
//
// Nil cfg and bld leave the corresponding component unchanged; ext is always
// replaced. A nil reg builds a fresh registry WITHOUT carrying over claims
// and unpins it; a non-nil reg is installed and pinned.
//
// This is the hard-reset API, mainly used by tests to get a clean
// deterministic state. The process-wide registry is otherwise never torn down.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	nreg := reg
	npreg := reg != nil
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, nil, ext)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	st.Store(&state{cfg: ncfg, ext: ext, reg: nreg, bld: nbld, preg: npreg})
	if cfg != nil {
		logsink.Configure(ncfg)
	}
}

// Reset restores the default builder and configuration with an empty
// registry. Intended for tests.
func Reset() {
	cfg := config.DefaultConfig()
	SetAll(&cfg, nil, nil, builder.New())
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots. Claim holds the read side.
var buildMu sync.RWMutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension payload.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned.
	preg bool
}

// with returns a copy of s with fn applied.
func (s *state) with(fn func(*state)) *state {
	n := *s
	fn(&n)
	return &n
}

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

// Package oversight provides a process-wide entity lifecycle and registry
// framework.
//
// oversight manages domain objects ("entities") that carry a unique id, an
// initialization flag and at most one owning manager ("collector"). Each
// concrete entity type has at most one collector; the registry enforces that
// invariant and binds every created entity to the collector of its type.
//
// # Design
//
// The core of oversight is a read-mostly global snapshot (state). The
// snapshot holds four things:
//
//   - Config: rules that control how type tokens are normalized (how deep
//     to unwrap pointers) and how reports are formatted.
//
//   - Registry: the process-wide type -> collector directory. Collectors
//     claim their managed type with Claim; entities are bound with Register.
//     A type without a collector resolves to the fallback collector, so
//     entity creation never fails loudly.
//
//   - Ext: an opaque extension payload handed to the Builder. The default
//     builder understands builder.Ext (sink, tracer provider, strategies).
//
//   - Builder: a pluggable factory that constructs a Registry for a given
//     Config, carrying over the claims of the previous one.
//
// All of these live inside a single immutable struct. The package holds an
// atomic pointer to the current state. Readers load that pointer and never
// mutate it. Writers build a new state and atomically swap it in.
//
// # Lifecycle
//
//	type Player struct {
//		entity.Base
//		Name string
//	}
//
//	players := collector.New[*Player]().MustCreate()
//	p := entity.Create(&Player{Base: entity.NewBase[Player](), Name: "ann"})
//	// p.Collector() == players, players.Len() == 1
//
// Creating a second collector for Player fails with
// registry.ErrDuplicateCollector. Creating a Player with no collector
// claimed binds it to the fallback collector and reports a warning.
//
// # Concurrency model
//
// Reads (Config, Registry, Builder) are wait-free. The registry performs
// claims as a single check-and-insert under its write mutex, and an entity's
// owner is set with one compare-and-swap, so concurrent creation never loses
// or duplicates an entity.
//
// Writes (SetConfig, SetBuilder, SetExt, SetRegistry, SetAll) take a short
// build mutex, assemble a new state and publish it.
//
// # Pinning
//
// SetRegistry installs a registry and pins it: SetConfig, SetBuilder and
// SetExt stop rebuilding it until UnpinRegistry. SetAll and Reset are the
// hard-reset API used by tests.
package oversight

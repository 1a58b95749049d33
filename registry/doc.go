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

// Package registry implements the process-wide type->collector directory.
//
// Invariants:
//   - At most one collector is ever claimed per concrete type. Claim is a
//     single check-and-insert under the write mutex, so two goroutines racing
//     to claim the same type observe exactly one success.
//   - The fallback collector is seeded lazily under the reserved sentinel type
//     on first use of any registry method.
//   - Register binds an entity with one compare-and-swap on the entity owner,
//     so an entity is bound at most once even under concurrent registration.
//
// Soft conditions (uninitialized entity, already bound entity, unmanaged type)
// are reported through the sink and surface as a false return. Only a
// duplicate claim is returned as an error.
//
// Every Claim and Register call is traced with OpenTelemetry; by default the
// global tracer provider is used, which is a no-op until an SDK provider is
// installed.
package registry

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

// Package collector implements the per-type managers that own entities.
//
// A collector is created once per concrete entity type and claimed in the
// process-wide registry:
//
//	players := collector.New[*Player]().MustCreate()
//	p := entity.Create(NewPlayer("ada")) // bound to players
//	players.Entities()                   // [p]
//
// Claiming a type twice fails with registry.ErrDuplicateCollector. Independent
// collectors skip the registry entirely; entities reach them through
// entity.Into.
package collector

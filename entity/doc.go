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

// Package entity implements the create lifecycle shared by every managed
// domain object.
//
// A domain type embeds Base and receives its type token at construction:
//
//	type Player struct {
//	    entity.Base
//	    Name string
//	}
//
//	func NewPlayer(name string) *Player {
//	    return &Player{Base: entity.NewBase[Player](), Name: name}
//	}
//
//	p := entity.Create(NewPlayer("ada"))
//
// Create runs the optional PreCreate hook, marks the entity initialized, binds
// it to the collector registered for its type (or to the fallback collector)
// and finally runs the optional AfterCreate hook. A failing PreCreate blocks
// creation; a failing AfterCreate is only reported.
package entity

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

package apis

// Config carries read-only knobs shared by the registry, collectors and sinks.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits pointer unwrapping when deriving a type token
	// (e.g. **Player -> Player). Acts as a guard against pathological nesting.
	MaxUnwrap int

	// MinLevel is the least severe level a sink built from this Config emits.
	// Levels are ordered Error < Warn < Info < Debug by verbosity.
	MinLevel Level

	// TimeFormat is the time layout used for the sink line prefix.
	TimeFormat string
}

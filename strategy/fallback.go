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

package strategy

import (
	"reflect"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/fallback"
)

// NewFallbackStrategy creates an apis.Strategy that hands every type to the
// fallback collector. It belongs at the end of a chain.
func NewFallbackStrategy() apis.Strategy {
	return fallbackStrategy{}
}

// fallbackStrategy is the universal degrade path for unclaimed types.
type fallbackStrategy struct{}

// Ensure fallbackStrategy implements apis.Strategy.
var _ apis.Strategy = (*fallbackStrategy)(nil)

// TryResolve always returns the fallback collector.
func (fallbackStrategy) TryResolve(reflect.Type) (apis.Collector, bool) {
	return fallback.Collector(), true
}

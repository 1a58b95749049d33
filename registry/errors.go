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
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/oversight/apis"
	uref "dirpx.dev/oversight/utils/reflect"
)

var (
	// ErrNilCollector is returned when a nil collector is claimed.
	ErrNilCollector = errors.New("oversight(registry): nil collector provided")
	// ErrNilEntity is returned when a nil entity is attached.
	ErrNilEntity = errors.New("oversight(registry): nil entity provided")
	// ErrTypeMismatch is returned when an entity is attached to a collector
	// managing a different type.
	ErrTypeMismatch = errors.New("oversight(registry): entity type does not match collector")
	// ErrDuplicateCollector indicates a second collector tried to claim a type.
	// Match it with errors.Is; the concrete error is *DuplicateCollectorError.
	ErrDuplicateCollector = errors.New("oversight(registry): collector already running for type")
)

// DuplicateCollectorError reports a rejected claim. The existing binding is
// left untouched.
type DuplicateCollectorError struct {
	// Type is the contested concrete entity type.
	Type reflect.Type
	// Existing is the collector that keeps serving Type.
	Existing apis.Collector
	// Rejected is the collector whose claim failed.
	Rejected apis.Collector
}

// Error implements the error interface.
func (e *DuplicateCollectorError) Error() string {
	return fmt.Sprintf("%s: type [%s] is served by collector %s, rejected %s",
		ErrDuplicateCollector, uref.Name(e.Type), e.Existing.ID(), e.Rejected.ID())
}

// Unwrap returns ErrDuplicateCollector.
func (e *DuplicateCollectorError) Unwrap() error {
	return ErrDuplicateCollector
}

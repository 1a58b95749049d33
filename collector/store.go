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

package collector

import (
	"errors"
	"sync"

	"dirpx.dev/oversight/apis"
)

// ErrDuplicateEntity is returned when an entity id is appended twice.
var ErrDuplicateEntity = errors.New("oversight(collector): entity already stored")

// Store is an append-only, concurrency-safe list of entities indexed by id.
type Store[E apis.Entity] struct {
	// mu guards items and index.
	mu sync.RWMutex
	// items holds entities in append order.
	items []E
	// index maps entity id to its position in items.
	index map[string]int
}

// NewStore returns an empty Store.
func NewStore[E apis.Entity]() *Store[E] {
	return &Store[E]{index: make(map[string]int)}
}

// Append adds e. It fails with ErrDuplicateEntity if e's id is already stored.
func (s *Store[E]) Append(e E) error {
	id := e.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[id]; exists {
		return ErrDuplicateEntity
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, e)
	return nil
}

// Get returns the entity with the given id.
func (s *Store[E]) Get(id string) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		var zero E
		return zero, false
	}
	return s.items[i], true
}

// Len returns the number of stored entities.
func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of the stored entities in append order.
func (s *Store[E]) Snapshot() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

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

// Package identity generates the opaque identifiers assigned to entities and
// collectors at construction time.
package identity

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique identifiers. Implementations must be safe for
// concurrent use.
type Generator interface {
	Generate() string
}

// New returns a random identifier: a version 4 UUID rendered as 32 lowercase
// hex characters without dashes.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// def is the process-wide generator used by Next.
var def atomic.Pointer[holder]

// holder wraps the generator so atomic.Pointer has a concrete type.
type holder struct{ g Generator }

func init() {
	def.Store(&holder{g: Random()})
}

// Next returns an identifier from the process-wide generator. Entities and
// collectors take their ids from it.
func Next() string {
	return def.Load().g.Generate()
}

// SetDefault installs g as the process-wide generator and returns the
// previous one. A nil g restores Random.
func SetDefault(g Generator) Generator {
	if g == nil {
		g = Random()
	}
	return def.Swap(&holder{g: g}).g
}

// Random returns a Generator backed by New.
func Random() Generator {
	return randomGenerator{}
}

type randomGenerator struct{}

func (randomGenerator) Generate() string { return New() }

// Sequential returns a deterministic Generator whose first identifier is
// prefix+"1". Useful for tests and profiling runs.
func Sequential(prefix string) Generator {
	return &sequentialGenerator{prefix: prefix}
}

type sequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

func (g *sequentialGenerator) Generate() string {
	return g.prefix + strconv.FormatUint(g.next.Add(1), 10)
}

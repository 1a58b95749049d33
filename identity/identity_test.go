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

package identity_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/google/uuid"

	"dirpx.dev/oversight/identity"
)

func TestNewFormat(t *testing.T) {
	id := identity.New()
	if len(id) != 32 {
		t.Fatalf("expected 32-character id, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		if (r < 'a' || r > 'f') && (r < '0' || r > '9') {
			t.Fatalf("unexpected character %q in id", r)
		}
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected version 4, got %d", parsed.Version())
	}
}

func TestSequential(t *testing.T) {
	g := identity.Sequential("e-")
	if got := g.Generate(); got != "e-1" {
		t.Fatalf("first id = %q, want e-1", got)
	}
	if got := g.Generate(); got != "e-2" {
		t.Fatalf("second id = %q, want e-2", got)
	}
}

func TestGenerators_ConcurrentUnique(t *testing.T) {
	gens := map[string]identity.Generator{
		"random":     identity.Random(),
		"sequential": identity.Sequential("s"),
	}
	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			workers := runtime.GOMAXPROCS(0) * 4
			const perWorker = 500

			var (
				mu   sync.Mutex
				seen = make(map[string]struct{}, workers*perWorker)
				wg   sync.WaitGroup
			)
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func() {
					defer wg.Done()
					local := make([]string, 0, perWorker)
					for i := 0; i < perWorker; i++ {
						local = append(local, g.Generate())
					}
					mu.Lock()
					for _, id := range local {
						seen[id] = struct{}{}
					}
					mu.Unlock()
				}()
			}
			wg.Wait()

			if len(seen) != workers*perWorker {
				t.Fatalf("unique ids = %d, want %d", len(seen), workers*perWorker)
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	prev := identity.SetDefault(identity.Sequential("t-"))
	defer identity.SetDefault(prev)

	if a, b := identity.Next(), identity.Next(); a != "t-1" || b != "t-2" {
		t.Fatalf("Next() = %q, %q; want t-1, t-2", a, b)
	}

	identity.SetDefault(nil)
	if id := identity.Next(); len(id) != 32 {
		t.Fatalf("SetDefault(nil) must restore random ids, got %q", id)
	}
}

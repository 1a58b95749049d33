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

package registry_test

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/collector"
	"dirpx.dev/oversight/entity"
	"dirpx.dev/oversight/logsink"
	"dirpx.dev/oversight/registry"
)

// Concurrent claims of the same type: exactly one wins, the rest are duplicates.
func TestConcurrent_ClaimSameType(t *testing.T) {
	reg, _ := newRegistry(t, registry.WithSink(logsink.Discard))

	workers := runtime.GOMAXPROCS(0) * 4
	var (
		wins  atomic.Int32
		dups  atomic.Int32
		start sync.WaitGroup
		done  sync.WaitGroup
	)
	start.Add(1)
	done.Add(workers)
	for range workers {
		go func() {
			defer done.Done()
			c := collector.New[*Sample]()
			start.Wait()
			err := reg.Claim(c)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, registry.ErrDuplicateCollector):
				dups.Add(1)
			default:
				t.Errorf("Claim: unexpected error: %v", err)
			}
		}()
	}
	start.Done()
	done.Wait()

	if wins.Load() != 1 {
		t.Fatalf("winners = %d, want 1", wins.Load())
	}
	if int(dups.Load()) != workers-1 {
		t.Fatalf("duplicates = %d, want %d", dups.Load(), workers-1)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

// Many entities created concurrently all land in the one collector.
func TestConcurrent_CreateEntities(t *testing.T) {
	reg, rec := newRegistry(t)
	c := collector.New[*Sample]().MustCreate(collector.WithRegistry(reg))

	const perWorker = 64
	workers := runtime.GOMAXPROCS(0) * 4

	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			for i := range perWorker {
				s := entity.Create(newSample(), entity.WithRegistry(reg), entity.WithSink(logsink.Discard))
				if s.Collector() != apis.Collector(c) {
					return fmt.Errorf("worker %d entity %d: owner = %v", w, i, s.Collector())
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	want := workers * perWorker
	if c.Len() != want {
		t.Fatalf("Len() = %d, want %d", c.Len(), want)
	}
	seen := make(map[string]struct{}, want)
	for _, s := range c.Entities() {
		if _, dup := seen[s.ID()]; dup {
			t.Fatalf("entity %s stored twice", s.ID())
		}
		seen[s.ID()] = struct{}{}
	}
	if n := rec.Count(apis.LevelError, ""); n != 0 {
		t.Fatalf("unexpected error reports: %d", n)
	}
}

// The same entity registered concurrently is bound exactly once.
func TestConcurrent_RegisterSameEntity(t *testing.T) {
	reg, _ := newRegistry(t, registry.WithSink(logsink.Discard))
	c := collector.NewOf[apis.Entity](reflect.TypeFor[Sample]())
	if err := reg.Claim(c); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	stub := newStub("shared", reflect.TypeFor[Sample]())

	workers := runtime.GOMAXPROCS(0) * 4
	var (
		ok    atomic.Int32
		start sync.WaitGroup
		done  sync.WaitGroup
	)
	start.Add(1)
	done.Add(workers)
	for range workers {
		go func() {
			defer done.Done()
			start.Wait()
			if reg.Register(stub) {
				ok.Add(1)
			}
		}()
	}
	start.Done()
	done.Wait()

	if ok.Load() != 1 {
		t.Fatalf("successful registrations = %d, want 1", ok.Load())
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if stub.binds.Load() != 1 {
		t.Fatalf("SetEnable calls = %d, want 1", stub.binds.Load())
	}
}

// Concurrent claims of distinct types all succeed.
func TestConcurrent_ClaimDistinctTypes(t *testing.T) {
	reg, _ := newRegistry(t, registry.WithSink(logsink.Discard))

	var g errgroup.Group
	g.Go(func() error { return reg.Claim(collector.New[*Sample]()) })
	g.Go(func() error { return reg.Claim(collector.New[*Orphan]()) })
	g.Go(func() error { return reg.Claim(collector.New[*Third]()) })
	if err := g.Wait(); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if reg.Count() != 3 || len(reg.Entries()) != 3 {
		t.Fatalf("Count() = %d, Entries() = %d, want 3", reg.Count(), len(reg.Entries()))
	}
}

type Third struct{ entity.Base }

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

package reflect_test

import (
	"errors"
	"path"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/config"
	uref "dirpx.dev/oversight/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}

func TestNormalize_Pointers(t *testing.T) {
	conf := config.DefaultConfig()
	var pp **A

	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(A{}), reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{}), reflect.TypeOf(A{})},
		{"ptrptr", reflect.TypeOf(pp), reflect.TypeOf(A{})},
		{"generic", reflect.TypeOf(&G[int]{}), reflect.TypeOf(G[int]{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	conf := config.DefaultConfig()

	if _, err := uref.Normalize(nil, conf); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("Normalize(nil): want ErrReflectNilType, got %v", err)
	}
	if _, err := uref.Normalize(reflect.TypeOf(struct{}{}), conf); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("Normalize(struct{}): want ErrReflectTypeNotNamed, got %v", err)
	}
	if _, err := uref.Normalize(reflect.TypeOf([]A{}), conf); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("Normalize([]A): want ErrReflectTypeNotNamed, got %v", err)
	}
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	var ppp ***A
	short := apis.Config{MaxUnwrap: 2}
	if _, err := uref.Normalize(reflect.TypeOf(ppp), short); !errors.Is(err, uref.ErrReflectTypeNotNamed) {
		t.Fatalf("MaxUnwrap=2 on ***A: want ErrReflectTypeNotNamed, got %v", err)
	}
	// Zero falls back to the default depth.
	if got, err := uref.Normalize(reflect.TypeOf(ppp), apis.Config{}); err != nil || got != reflect.TypeOf(A{}) {
		t.Fatalf("MaxUnwrap=0 on ***A: got (%v, %v), want A", got, err)
	}
}

func TestTypeFor(t *testing.T) {
	if got := uref.MustTypeFor[*A](config.DefaultConfig()); got != reflect.TypeOf(A{}) {
		t.Fatalf("MustTypeFor[*A]() = %v, want A", got)
	}
	if _, err := uref.TypeFor[func()](config.DefaultConfig()); err == nil {
		t.Fatal("TypeFor[func()]: expected error")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustTypeFor[struct{}]: expected panic")
		}
	}()
	_ = uref.MustTypeFor[struct{}](config.DefaultConfig())
}

func TestName(t *testing.T) {
	wantPkg := path.Base(reflect.TypeOf(A{}).PkgPath())

	if got := uref.Name(reflect.TypeOf(A{})); got != wantPkg+".A" {
		t.Fatalf("Name(A) = %q, want %q", got, wantPkg+".A")
	}
	if got := uref.Name(reflect.TypeOf(&A{})); got != wantPkg+".A" {
		t.Fatalf("Name(*A) = %q, want %q", got, wantPkg+".A")
	}
	if got := uref.Name(reflect.TypeOf(G[string]{})); got != wantPkg+".G" {
		t.Fatalf("Name(G[string]) = %q, want %q", got, wantPkg+".G")
	}
	if got := uref.Name(reflect.TypeOf(0)); got != "int" {
		t.Fatalf("Name(int) = %q, want int", got)
	}
	if got := uref.Name(nil); got != "<nil>" {
		t.Fatalf("Name(nil) = %q, want <nil>", got)
	}
}

func TestName_ConcurrentStable(t *testing.T) {
	tys := []reflect.Type{
		reflect.TypeOf(A{}), reflect.TypeOf(&A{}), reflect.TypeOf(G[int]{}),
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				tt := tys[(i+id)%len(tys)]
				if name := uref.Name(tt); !strings.Contains(name, ".") {
					t.Errorf("Name(%v) = %q, want pkg-qualified", tt, name)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

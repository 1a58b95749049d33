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

// Package reflect derives the type tokens that key the registry.
//
// Entities and collectors receive their concrete type explicitly, through a
// type parameter or a reflect.Type argument. This package only canonicalizes
// those tokens (so that *Player and Player name the same managed type) and
// renders them for diagnostics.
package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type (e.g., anonymous struct, func, slice literal).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not a named type")
)

// Normalize unwraps pointers according to cfg.MaxUnwrap and returns the
// nearest named type, or an error if none is found.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Pointer; i++ {
		t = t.Elem()
	}
	if t.Kind() == reflect.Pointer || t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	return t, nil
}

// TypeFor returns the normalized type token for T under cfg.
func TypeFor[T any](cfg apis.Config) (reflect.Type, error) {
	return Normalize(reflect.TypeFor[T](), cfg)
}

// MustTypeFor is like TypeFor but panics if T has no named type.
// Intended for constructors, where an anonymous entity type is a programming error.
func MustTypeFor[T any](cfg apis.Config) reflect.Type {
	t, err := TypeFor[T](cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// typeNameCache caches display names by type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// Name renders t as "pkg.Type" for diagnostics. Generic instantiation
// parameters are stripped and builtin types keep their bare name.
// A nil type renders as "<nil>".
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	base := t
	for base.Kind() == reflect.Pointer && base.Name() == "" {
		base = base.Elem()
	}
	name := stripTypeParams(base.Name())
	if name == "" {
		name = base.String()
	} else if p := base.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}

	typeNameCache.Store(t, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

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

package builder

import (
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/logsink"
	"dirpx.dev/oversight/registry"
	uref "dirpx.dev/oversight/utils/reflect"
)

// Ext is the extension payload understood by the default builder.
// Any other ext value is ignored.
type Ext struct {
	// Sink receives registry reports. Nil means logsink.Default().
	Sink apis.Sink
	// TracerProvider traces registry operations. Nil means the global provider.
	TracerProvider trace.TracerProvider
	// Strategies are inserted between the registry lookup and the fallback.
	Strategies []apis.Strategy
}

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its claims are carried over so every type keeps its collector.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	var x Ext
	switch v := ext.(type) {
	case Ext:
		x = v
	case *Ext:
		if v != nil {
			x = *v
		}
	}

	nreg := registry.New(cfg, extOptions(x)...)
	if prev == nil {
		return nreg
	}
	sink := x.Sink
	if sink == nil {
		sink = logsink.Default()
	}
	for _, e := range prev.Entries() {
		if err := nreg.Claim(e.Collector); err != nil {
			sink.Print(apis.LevelError, "Failed to carry over the collector of type -> [%s]: %v", uref.Name(e.Type), err)
		}
	}
	return nreg
}

func extOptions(x Ext) []registry.Option {
	opts := []registry.Option{registry.WithStrategies(x.Strategies...)}
	if x.Sink != nil {
		opts = append(opts, registry.WithSink(x.Sink))
	}
	if x.TracerProvider != nil {
		opts = append(opts, registry.WithTracerProvider(x.TracerProvider))
	}
	return opts
}

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
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dirpx.dev/oversight/collector"
	"dirpx.dev/oversight/entity"
	"dirpx.dev/oversight/logsink"
	"dirpx.dev/oversight/registry"
)

func newTraced(t *testing.T) (*tracetest.SpanRecorder, registry.Option) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return sr, registry.WithTracerProvider(tp)
}

func attr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTrace_Claim(t *testing.T) {
	sr, opt := newTraced(t)
	reg, _ := newRegistry(t, opt, registry.WithSink(logsink.Discard))

	first := collector.New[*Sample]()
	_ = reg.Claim(first)
	_ = reg.Claim(collector.New[*Sample]())

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	for _, s := range spans {
		if s.Name() != "oversight.registry.claim" {
			t.Fatalf("span name = %q", s.Name())
		}
	}
	if v, ok := attr(spans[0], "oversight.collector.id"); !ok || v.AsString() != first.ID() {
		t.Fatalf("collector id attribute = %v", v)
	}
	if spans[0].Status().Code == codes.Error {
		t.Fatal("first claim span must not be an error")
	}
	if spans[1].Status().Code != codes.Error {
		t.Fatalf("duplicate claim span status = %v, want Error", spans[1].Status().Code)
	}
	if len(spans[1].Events()) == 0 {
		t.Fatal("duplicate claim span must record the error")
	}
}

func TestTrace_Register(t *testing.T) {
	sr, opt := newTraced(t)
	reg, _ := newRegistry(t, opt, registry.WithSink(logsink.Discard))
	_ = collector.New[*Sample]().MustCreate(collector.WithRegistry(reg))
	skip := len(sr.Ended())

	s := entity.Create(newSample(), entity.WithRegistry(reg), entity.WithSink(logsink.Discard))
	entity.Create(newOrphan(), entity.WithRegistry(reg), entity.WithSink(logsink.Discard))
	reg.Register(s)

	spans := sr.Ended()[skip:]
	if len(spans) != 3 {
		t.Fatalf("ended spans = %d, want 3", len(spans))
	}
	tests := []struct {
		registered bool
		fallback   bool
	}{
		{registered: true, fallback: false},
		{registered: true, fallback: true},
		{registered: false, fallback: false},
	}
	for i, tt := range tests {
		span := spans[i]
		if span.Name() != "oversight.registry.register" {
			t.Fatalf("span %d name = %q", i, span.Name())
		}
		if v, _ := attr(span, "oversight.registered"); v.AsBool() != tt.registered {
			t.Errorf("span %d registered = %v, want %v", i, v.AsBool(), tt.registered)
		}
		if v, _ := attr(span, "oversight.fallback"); v.AsBool() != tt.fallback {
			t.Errorf("span %d fallback = %v, want %v", i, v.AsBool(), tt.fallback)
		}
	}
	if v, _ := attr(spans[0], "oversight.entity.id"); v.AsString() != s.ID() {
		t.Fatalf("entity id attribute = %q, want %q", v.AsString(), s.ID())
	}
}

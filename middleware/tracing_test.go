// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestTracing_StartsSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var traceID string
	h := Tracing("rate-anything")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = GetTraceID(r)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/ranks", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if len(traceID) != 32 {
		t.Errorf("Expected a 32-char trace ID, got %q", traceID)
	}
}

func TestGetTraceID_NoSpan(t *testing.T) {
	if id := GetTraceID(httptest.NewRequest("GET", "/", nil)); id != "" {
		t.Errorf("Expected empty trace ID, got %q", id)
	}
}

func TestWithLogging_TraceID(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	logs := captureLogs(t)

	var traceID string
	h := Tracing("rate-anything")(WithLogging(func(w http.ResponseWriter, r *http.Request) {
		traceID = GetTraceID(r)
		w.WriteHeader(http.StatusOK)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/ranks", nil))

	if traceID == "" {
		t.Fatal("Expected an active trace ID")
	}
	if out := logs.String(); !strings.Contains(out, "trace_id="+traceID) {
		t.Errorf("Expected log to contain trace_id=%s, got: %s", traceID, out)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rate-anything/testutil"
)

func TestHealth(t *testing.T) {
	s := testutil.SetupTestStore(t)
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name           string
		checks         []HealthCheck
		expectedStatus int
		expectedBody   string
	}{
		{"no checks", nil, http.StatusOK, "OK"},
		{"store up", []HealthCheck{{Name: "store", Check: s.Ping}}, http.StatusOK, "OK"},
		{"redis down", []HealthCheck{{Name: "store", Check: s.Ping}, {Name: "redis", Check: down}}, http.StatusServiceUnavailable, "redis unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checks...)
			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest("GET", "/health", nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if w.Body.String() != tt.expectedBody {
				t.Errorf("expected body %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHealth_ClosedStore(t *testing.T) {
	s := testutil.SetupTestStore(t)
	s.Close()

	h := NewHealthHandler(HealthCheck{Name: "store", Check: s.Ping})
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}

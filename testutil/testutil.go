// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/rate-anything/cliparse"
	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/store"
)

// SetupTestStore opens a fresh SQLite store in a temp directory. It is
// closed when the test ends.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ratings.db")
	s, err := store.OpenSQL(context.Background(), store.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	cfg := cliparse.Default()
	cfg.DatabaseType = cliparse.DatabaseSQLite
	cfg.DatabaseURL = "ratings.db"
	cfg.SearchTimeout = 200 * time.Millisecond
	cfg.RankPageSize = 3
	cfg.MaxRankPageSize = 5
	return cfg
}

// CreateTestRating applies votes to name and returns the final record.
func CreateTestRating(t *testing.T, s store.Store, name string, description *string, votes ...int) models.Rating {
	t.Helper()

	var rec models.Rating
	for _, v := range votes {
		var err error
		rec, err = s.Vote(context.Background(), name, v, description)
		if err != nil {
			t.Fatalf("Failed to vote %d on %s: %v", v, name, err)
		}
	}
	return rec
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

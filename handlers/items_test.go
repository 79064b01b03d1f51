// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/picker"
	"github.com/danielhkuo/rate-anything/testutil"
)

func TestItems_Random(t *testing.T) {
	p := picker.New([]picker.Item{
		{Slug: "Tokyo", Weight: 2},
		{Slug: "Pizza", Weight: 1},
		{Slug: "Bad_word", Weight: 50},
	}, []string{"Bad"})
	h := NewItemsHandler(p)

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		h.Random(w, httptest.NewRequest("GET", "/api/items/random", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.RandomItemResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Slug != "Tokyo" && resp.Slug != "Pizza" {
			t.Fatalf("unexpected slug %q", resp.Slug)
		}
	}
}

func TestItems_Battle(t *testing.T) {
	h := NewItemsHandler(picker.New([]picker.Item{
		{Slug: "Tokyo", Weight: 100},
		{Slug: "Pizza", Weight: 1},
	}, nil))

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		h.Battle(w, httptest.NewRequest("GET", "/api/items/battle", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.BattleResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Left == resp.Right {
			t.Fatalf("battle returned the same item twice: %q", resp.Left)
		}
	}
}

func TestItems_Unavailable(t *testing.T) {
	tests := []struct {
		name           string
		picker         *picker.Picker
		expectedStatus int
	}{
		{"no items file", nil, http.StatusServiceUnavailable},
		{"all items banned", picker.New([]picker.Item{{Slug: "spam", Weight: 1}}, []string{"spam"}), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewItemsHandler(tt.picker)

			w := httptest.NewRecorder()
			h.Random(w, httptest.NewRequest("GET", "/api/items/random", nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			w = httptest.NewRecorder()
			h.Battle(w, httptest.NewRequest("GET", "/api/items/battle", nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	t.Run("battle needs two items", func(t *testing.T) {
		h := NewItemsHandler(picker.New([]picker.Item{{Slug: "solo", Weight: 1}}, nil))
		w := httptest.NewRecorder()
		h.Battle(w, httptest.NewRequest("GET", "/api/items/battle", nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

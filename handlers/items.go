// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rate-anything/middleware"
	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/picker"
)

type ItemsHandler struct {
	picker *picker.Picker
}

// NewItemsHandler serves random items from p. A nil p answers 503.
func NewItemsHandler(p *picker.Picker) *ItemsHandler {
	return &ItemsHandler{picker: p}
}

// Random handles GET /api/items/random
func (h *ItemsHandler) Random(w http.ResponseWriter, r *http.Request) {
	if h.picker == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "No items file configured")
		return
	}

	slug, err := h.picker.Pick()
	if err != nil {
		h.pickError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RandomItemResponse{Slug: slug})
}

// Battle handles GET /api/items/battle
func (h *ItemsHandler) Battle(w http.ResponseWriter, r *http.Request) {
	if h.picker == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "No items file configured")
		return
	}

	left, right, err := h.picker.Pair()
	if err != nil {
		h.pickError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.BattleResponse{Left: left, Right: right})
}

func (h *ItemsHandler) pickError(w http.ResponseWriter, err error) {
	if errors.Is(err, picker.ErrNoEligible) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No eligible items")
		return
	}
	slog.Error("failed to pick item", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to pick item")
}

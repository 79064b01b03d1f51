// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/rate-anything/cliparse"
	"github.com/danielhkuo/rate-anything/middleware"
	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/rating"
	"github.com/danielhkuo/rate-anything/store"
)

type RanksHandler struct {
	store       store.Store
	pageSize    int
	maxPageSize int
}

func NewRanksHandler(s store.Store, cfg cliparse.Config) *RanksHandler {
	h := &RanksHandler{store: s, pageSize: cfg.RankPageSize, maxPageSize: cfg.MaxRankPageSize}
	if h.pageSize <= 0 {
		h.pageSize = 100
	}
	if h.maxPageSize < h.pageSize {
		h.maxPageSize = h.pageSize
	}
	return h
}

// GetRanks handles GET /api/ranks?type=score&offset=N&limit=M
func (h *RanksHandler) GetRanks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if typ := q.Get("type"); typ != "" && typ != models.RankByScore {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unsupported ranking type: "+typ)
		return
	}

	offset, ok := queryInt(q.Get("offset"), 0)
	if !ok || offset < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	limit, ok := queryInt(q.Get("limit"), h.pageSize)
	if !ok || limit <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	limit = min(limit, h.maxPageSize)

	entries, err := h.store.Rankings(r.Context(), models.Page{Offset: offset, Limit: limit})
	if errors.Is(err, rating.ErrNoData) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No rankings found")
		return
	}
	if err != nil {
		slog.Error("failed to list rankings", "offset", offset, "limit", limit, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// queryInt parses an optional integer query value.
func queryInt(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

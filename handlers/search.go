// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/rate-anything/middleware"
	"github.com/danielhkuo/rate-anything/rating"
	"github.com/danielhkuo/rate-anything/search"
)

// Searcher returns ranked suggestions for a prefix query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
}

type SearchHandler struct {
	searcher Searcher
}

func NewSearchHandler(s Searcher) *SearchHandler {
	return &SearchHandler{searcher: s}
}

// Search handles GET /api/search?q=...&limit=N
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "q is required")
		return
	}

	limit, ok := queryInt(r.URL.Query().Get("limit"), search.DefaultLimit)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	results, err := h.searcher.Search(r.Context(), query, search.ClampLimit(limit))
	if errors.Is(err, rating.ErrInvalidInput) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Warn("search failed", "query", query, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Search unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

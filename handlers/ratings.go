// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/rate-anything/cliparse"
	"github.com/danielhkuo/rate-anything/metrics"
	"github.com/danielhkuo/rate-anything/middleware"
	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/rating"
	"github.com/danielhkuo/rate-anything/search"
	"github.com/danielhkuo/rate-anything/store"
	"github.com/danielhkuo/rate-anything/voter"
)

// Describer resolves a title to its search index entry.
type Describer interface {
	Lookup(ctx context.Context, title string) (*search.Result, error)
}

type RatingHandler struct {
	store         store.Store
	describer     Describer
	lookupTimeout time.Duration
	metrics       *metrics.Manager
	ipSalt        string
}

// NewRatingHandler creates the rating endpoint. describer and m may be nil.
func NewRatingHandler(s store.Store, describer Describer, cfg cliparse.Config, m *metrics.Manager) *RatingHandler {
	timeout := cfg.SearchTimeout
	if timeout <= 0 {
		timeout = search.DefaultTimeout
	}
	salt := cfg.IPSalt
	if salt == "" {
		var err error
		if salt, err = voter.NewSalt(); err != nil {
			slog.Warn("falling back to unsalted voter fingerprints", "error", err)
		}
	}
	return &RatingHandler{
		store:         s,
		describer:     describer,
		lookupTimeout: timeout,
		metrics:       m,
		ipSalt:        salt,
	}
}

// GetRating handles GET /api/rate/{slug}
func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	name := rating.Slug(r.PathValue("slug"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	rec, err := h.store.Get(r.Context(), name)
	if errors.Is(err, rating.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Rating not found")
		return
	}
	if err != nil {
		slog.Error("failed to get rating", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rec)
}

// SubmitVote handles POST /api/rate/{slug}
// The score is validated before the description lookup or any store access.
func (h *RatingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	name := rating.Slug(r.PathValue("slug"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.RecordVoteError("invalid")
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Score == nil {
		h.metrics.RecordVoteError("invalid")
		middleware.ErrorResponse(w, http.StatusBadRequest, "score is required")
		return
	}
	score, err := rating.ValidateScore(*req.Score)
	if err != nil {
		h.metrics.RecordVoteError("invalid")
		middleware.ErrorResponse(w, http.StatusBadRequest, "score must be an integer from 1 to 10")
		return
	}

	description := h.describe(r.Context(), name)

	rec, err := h.store.Vote(r.Context(), name, score, description)
	if errors.Is(err, rating.ErrInvalidInput) {
		h.metrics.RecordVoteError("invalid")
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.metrics.RecordVoteError("storage")
		slog.Error("failed to record vote", "name", name, "score", score, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.metrics.RecordVote(score, rec.Votes == 1)
	slog.Info("vote recorded",
		"name", name,
		"score", score,
		"votes", rec.Votes,
		"voter", voter.Fingerprint(middleware.GetClientIP(r), h.ipSalt),
	)

	middleware.JSONResponse(w, http.StatusOK, rec)
}

// describe makes one bounded lookup. Any failure yields a nil description.
func (h *RatingHandler) describe(ctx context.Context, name string) *string {
	if h.describer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	title := rating.Title(name)
	res, err := h.describer.Lookup(ctx, title)
	if err != nil {
		h.metrics.RecordLookupFailure("error")
		slog.Warn("description lookup failed", "name", name, "error", err)
		return nil
	}
	if res == nil || res.Description == "" {
		h.metrics.RecordLookupFailure("not_found")
		slog.Warn("no description found", "name", name)
		return nil
	}

	d := res.Description
	return &d
}

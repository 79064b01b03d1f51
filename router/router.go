// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/rate-anything/cliparse"
	"github.com/danielhkuo/rate-anything/handlers"
	"github.com/danielhkuo/rate-anything/metrics"
	"github.com/danielhkuo/rate-anything/middleware"
	"github.com/danielhkuo/rate-anything/picker"
	"github.com/danielhkuo/rate-anything/store"
)

// Deps carries everything the handlers need. Describer, Picker, Metrics
// and HealthChecks are optional.
type Deps struct {
	Store        store.Store
	Config       cliparse.Config
	Searcher     handlers.Searcher
	Describer    handlers.Describer
	Picker       *picker.Picker
	Metrics      *metrics.Manager
	HealthChecks []handlers.HealthCheck
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()
	cfg := deps.Config

	// Initialize handlers
	ratingHandler := handlers.NewRatingHandler(deps.Store, deps.Describer, cfg, deps.Metrics)
	ranksHandler := handlers.NewRanksHandler(deps.Store, cfg)
	searchHandler := handlers.NewSearchHandler(deps.Searcher)
	itemsHandler := handlers.NewItemsHandler(deps.Picker)

	checks := append([]handlers.HealthCheck{{Name: "store", Check: deps.Store.Ping}}, deps.HealthChecks...)
	healthHandler := handlers.NewHealthHandler(checks...)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithMetrics(deps.Metrics, pattern, middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Ratings
	handle("GET /api/rate/{slug}", ratingHandler.GetRating)
	handle("POST /api/rate/{slug}", ratingHandler.SubmitVote)
	handle("GET /api/ranks", ranksHandler.GetRanks)

	// Collaborators
	handle("GET /api/search", searchHandler.Search)
	handle("GET /api/items/random", itemsHandler.Random)
	handle("GET /api/items/battle", itemsHandler.Battle)

	if cfg.MetricsEnabled && deps.Metrics.Enabled() {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rate-anything API v1"))
	})

	return mux
}

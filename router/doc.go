// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the rate-anything API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Store:     s,
		Config:    cfg,
		Searcher:  client,
		Describer: client,
		Metrics:   m,
	})

# Endpoints

	GET  /health              - Store (and Redis) ping
	GET  /api/rate/{slug}     - Current distribution for an item
	POST /api/rate/{slug}     - Cast one vote {"score": 1..10}
	GET  /api/ranks           - Items by score (type, offset, limit)
	GET  /api/search          - Title suggestions (q, limit)
	GET  /api/items/random    - One weighted random item
	GET  /api/items/battle    - Two distinct weighted random items
	GET  /metrics             - Prometheus exposition, when enabled
	GET  /                    - Banner

API routes are wrapped with WithLogging and WithMetrics, labelled by
route pattern.
*/
package router

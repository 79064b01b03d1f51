// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the rate-anything API.

# Handler Types

Each handler is a struct holding its dependencies:

  - RatingHandler: read one rating, submit a vote
  - RanksHandler: paged ranking listing
  - SearchHandler: proxy to the Wikipedia prefix search
  - ItemsHandler: random item and battle pairs from the items file

Handlers are created via constructor functions:

	ratingHandler := handlers.NewRatingHandler(store, client, cfg, metrics)

# Ratings

	GET  /api/rate/{slug} → GetRating
	POST /api/rate/{slug} → SubmitVote  {"score": 7}

The slug is normalized (trimmed, spaces become underscores) before use. The score
is validated first; invalid votes never reach the store. A bounded
description lookup runs before the vote is stored and its failure only
leaves the description empty.

# Rankings

	GET /api/ranks?type=score&offset=0&limit=100

Ordered by score descending, then name. An empty page is 404.

# Health

NewHealthHandler runs each HealthCheck with a shared timeout and reports
the first failure as 503.
*/
package handlers

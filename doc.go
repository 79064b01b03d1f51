// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the rate-anything API server.

rate-anything lets anyone score any Wikipedia topic from 1 to 10 and
ranks topics by their average score. Each item keeps one counter per
score; every vote increments one counter and recomputes the weighted mean
in the same atomic statement.

# Starting the Server

	DATABASE_URL=ratings.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first. See package
cliparse for every setting.

# Architecture

  - rating: score validation and the weighted-mean aggregator
  - store: PostgreSQL, SQLite and in-memory persistence
  - db: schema creation
  - handlers: HTTP handlers (ratings, ranks, search, items, health)
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, request IDs, tracing, metrics, CORS, JSON helpers
  - search: Wikipedia prefix search client with optional Redis cache
  - picker: weighted random item selection
  - metrics: Prometheus collectors
  - tracing: OpenTelemetry setup
  - logging: slog configuration
  - cliparse: configuration parsing
  - models: request/response and domain types
*/
package main

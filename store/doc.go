// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists rating distributions.

# Backends

	s, err := store.Open(ctx, "postgres", "postgres://...")
	s, err := store.Open(ctx, "sqlite", "/var/lib/ratings.db")
	s, err := store.Open(ctx, "memory", "")

PostgreSQL uses github.com/lib/pq and SQLite uses modernc.org/sqlite.
Both run the same schema (package db) and the same upsert:

	INSERT INTO rating (name, description, rating_K, score)
	VALUES ($1, $2, 1, $3)
	ON CONFLICT (name) DO UPDATE SET
		rating_K = rating.rating_K + 1,
		description = excluded.description,
		score = CAST(Σ k·rating_k + K AS DOUBLE PRECISION) /
		        CAST(Σ rating_k + 1 AS DOUBLE PRECISION)
	RETURNING ...

K is the validated vote, so the column name never comes from user text.
The memory backend runs rating.Apply under a mutex.

# Errors

  - rating.ErrNotFound from Get when the name has no votes
  - rating.ErrNoData from Rankings when the page is empty
  - rating.ErrStorage wrapping any driver error
  - rating.ErrInvalidInput from Vote for scores outside 1..10
*/
package store

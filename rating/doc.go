// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rating implements the vote aggregation rules.

# Distribution

Every item keeps ten counters, one per score 1..10, and a persisted
aggregate score:

	score = Σ k·bucket[k] / Σ bucket[k]

# Applying a Vote

	next, err := rating.Apply(prev, "Tokyo", 8, &description)

A nil prev creates the record with bucket[8] = 1 and score = 8. Otherwise
the bucket is incremented and the mean is recomputed over all ten
buckets. The description is always overwritten.

Stores that cannot run Go code inside their critical section (PostgreSQL,
SQLite) compute the same expression in a single upsert statement; see
package store.

# Errors

	ErrInvalidInput - score outside 1..10 or not an integer
	ErrNotFound     - no votes for this name yet
	ErrNoData       - empty ranking page
	ErrStorage      - store failure
	ErrUpstream     - search provider failure
*/
package rating

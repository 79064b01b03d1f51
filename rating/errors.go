// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import "errors"

var (
	// ErrInvalidInput rejects a vote before any storage access.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the item has no votes yet.
	ErrNotFound = errors.New("rating not found")
	// ErrNoData means a ranking page came back empty.
	ErrNoData = errors.New("no rankings found")
	// ErrStorage wraps any failure of the backing store.
	ErrStorage = errors.New("storage failure")
	// ErrUpstream wraps failures of the external search provider.
	ErrUpstream = errors.New("upstream degraded")
)

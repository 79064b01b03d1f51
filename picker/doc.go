// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package picker chooses random items to rate from a weighted list.
//
// The list is a text file with one "slug weight" pair per line:
//
//	# popular topics
//	Tokyo 12.5
//	Pizza 3
//
// Items whose slug contains a banned substring, or whose weight is zero,
// are never returned.
package picker

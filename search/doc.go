// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package search proxies Wikipedia's prefix search.

Search powers the autocomplete box; Lookup resolves a single title to
the description stored alongside a vote. Upstream failures are wrapped
in rating.ErrUpstream.

	c := search.NewClient(
		search.WithTimeout(3*time.Second),
		search.WithCache(search.NewRedisCache(rdb), 10*time.Minute),
	)
	results, err := c.Search(ctx, "Toky", 6)

Only Search responses are cached. Lookup always goes upstream.
*/
package search

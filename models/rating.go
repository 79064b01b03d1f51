// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Score bounds for a single vote
const (
	MinScore = 1
	MaxScore = 10
)

// Ranking order keys
const (
	RankByScore = "score"
)

// Domain types

// Rating is the stored vote distribution for one item.
// Buckets[k-1] counts the votes that cast score k.
type Rating struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Buckets     [MaxScore]int64 `json:"buckets"`
	Score       float64         `json:"score"`
	Votes       int64           `json:"votes"`
}

// Count returns the number of votes cast for score k.
func (r Rating) Count(k int) int64 {
	if k < MinScore || k > MaxScore {
		return 0
	}
	return r.Buckets[k-1]
}

// RankEntry is one row of the ranking listing.
type RankEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Score       float64 `json:"score"`
}

// Page is an offset/limit window over the ranking listing.
type Page struct {
	Offset int
	Limit  int
}

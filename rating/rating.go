// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"fmt"
	"math"
	"strings"

	"github.com/danielhkuo/rate-anything/models"
)

// ValidateScore checks that v is an integer in [MinScore, MaxScore]
// and returns it as an int.
func ValidateScore(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: score must be a number", ErrInvalidInput)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: score must be an integer, got %v", ErrInvalidInput, v)
	}
	if v < models.MinScore || v > models.MaxScore {
		return 0, fmt.Errorf("%w: score must be between %d and %d, got %v",
			ErrInvalidInput, models.MinScore, models.MaxScore, v)
	}
	return int(v), nil
}

// Sums returns the weighted sum Σ k·b[k] and the vote count Σ b[k].
func Sums(buckets [models.MaxScore]int64) (weighted, total int64) {
	for i, n := range buckets {
		weighted += int64(i+1) * n
		total += n
	}
	return weighted, total
}

// Mean returns the weighted mean of the distribution. ok is false when
// there are no votes.
//
// Both sums are exact integers and the result is a single float64
// division, so it matches what the SQL stores compute.
func Mean(buckets [models.MaxScore]int64) (mean float64, ok bool) {
	weighted, total := Sums(buckets)
	if total == 0 {
		return 0, false
	}
	return float64(weighted) / float64(total), true
}

// Apply returns the state after one more vote. prev is nil when the item
// has never been rated. prev is never modified.
func Apply(prev *models.Rating, name string, vote int, description *string) (models.Rating, error) {
	if _, err := ValidateScore(float64(vote)); err != nil {
		return models.Rating{}, err
	}

	var next models.Rating
	if prev == nil {
		next = models.Rating{Name: name}
		next.Buckets[vote-1] = 1
		next.Score = float64(vote)
		next.Votes = 1
		next.Description = copyString(description)
		return next, nil
	}

	next = *prev
	next.Buckets[vote-1]++
	next.Description = copyString(description)

	// recompute from all buckets, never incrementally
	mean, _ := Mean(next.Buckets)
	next.Score = mean
	_, next.Votes = Sums(next.Buckets)
	return next, nil
}

// Slug normalizes an item name into its store key.
func Slug(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// Title turns a slug back into a human-readable title for search lookups.
func Title(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

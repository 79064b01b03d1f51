// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

// VoteRequest carries one vote. Score is a pointer so a missing or null
// value can be told apart from zero.
type VoteRequest struct {
	Score *float64 `json:"score"`
}

// Response types

type RandomItemResponse struct {
	Slug string `json:"slug"`
}

type BattleResponse struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

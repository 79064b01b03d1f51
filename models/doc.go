// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - VoteRequest: score (required, integer 1-10)

# Response Types

  - RandomItemResponse: slug
  - BattleResponse: left, right
  - ErrorResponse: error, message

Rating and RankEntry are written directly as responses.

# Domain Types

  - Rating: vote distribution and cached score for one item
  - RankEntry: name, description, score for the ranking listing
  - Page: offset/limit window over the listing

# Constants

Score bounds:

	MinScore = 1
	MaxScore = 10

Ranking order:

	RankByScore = "score"
*/
package models

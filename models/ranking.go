package models

import "time"

// RankingRow is a single leaderboard entry. Columns depend on the category
// query configured by the admin, so rows are kept as ordered column/value
// maps produced by the ranking repository.
type RankingRow map[string]any

// Ranking is the cached leaderboard snapshot persisted to disk and served
// to the ranking page. LastUpdated is nil when no snapshot has been
// generated yet.
type Ranking struct {
	// Data maps a category id (e.g. "level", "resets") to its rows.
	Data map[string][]RankingRow `json:"data"`

	LastUpdated *time.Time `json:"lastUpdated"`

	// Error is set on the "unavailable" payload returned to unauthenticated
	// visitors when no snapshot exists.
	Error string `json:"error,omitempty"`
}

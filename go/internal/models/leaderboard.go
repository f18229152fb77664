package models

import "github.com/google/uuid"

// LeaderboardEntry is a per-user aggregate over completed sessions. Entries
// are derived on every query and never stored.
type LeaderboardEntry struct {
	UserID             uuid.UUID `json:"user_id"`
	Username           string    `json:"username"`
	TotalGames         int       `json:"total_games"`
	AverageDeviationMs float64   `json:"average_deviation_ms"`
	BestDeviationMs    float64   `json:"best_deviation_ms"`
}

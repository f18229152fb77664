package game

import (
	"github.com/google/uuid"
	"github.com/mcdev12/timeright/go/internal/models"
)

// StartGameResponse is returned when a new session is created.
type StartGameResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Message   string    `json:"message"`
	StartTime int64     `json:"start_time"`
}

// StopGameResponse carries the full timing result for a stopped session.
type StopGameResponse struct {
	SessionID      uuid.UUID `json:"session_id"`
	StartTime      int64     `json:"start_time"`
	EndTime        int64     `json:"end_time"`
	ActualDuration int64     `json:"actual_duration"`
	TargetDuration int64     `json:"target_duration"`
	Deviation      int64     `json:"deviation"`
	Message        string    `json:"message"`
}

// UserStats aggregates a user's play history. AverageDeviation and
// BestDeviation cover completed sessions only, excluding timeout-expired
// ones, and are rounded to 2 decimal places.
type UserStats struct {
	TotalGames       int                  `json:"total_games"`
	CompletedGames   int                  `json:"completed_games"`
	AverageDeviation float64              `json:"average_deviation"`
	BestDeviation    float64              `json:"best_deviation"`
	RecentSessions   []models.GameSession `json:"recent_sessions"`
}

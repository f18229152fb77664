package leaderboard

import "github.com/mcdev12/timeright/go/internal/models"

// LeaderboardResponse is a paged leaderboard view.
type LeaderboardResponse struct {
	Leaderboard  []models.LeaderboardEntry `json:"leaderboard"`
	TotalEntries int                       `json:"total_entries"`
}

// UserPosition is a user's 1-based rank on the full leaderboard. Position 0
// with a nil entry means the user is not ranked.
type UserPosition struct {
	Position   int                      `json:"position"`
	Entry      *models.LeaderboardEntry `json:"entry"`
	TotalUsers int                      `json:"total_users"`
}

// AroundUser is the contiguous leaderboard window centered on a user.
type AroundUser struct {
	Leaderboard  []models.LeaderboardEntry `json:"leaderboard"`
	UserPosition int                       `json:"user_position"`
	TotalUsers   int                       `json:"total_users"`
}

// MostActiveUser is the ranked user with the highest game count.
type MostActiveUser struct {
	Username  string `json:"username"`
	GameCount int    `json:"game_count"`
}

// Stats aggregates the whole leaderboard. AverageDeviation is a mean of the
// per-entry averages, not re-derived from raw sessions.
type Stats struct {
	TotalUsers           int             `json:"total_users"`
	TotalGames           int             `json:"total_games"`
	AverageDeviation     float64         `json:"average_deviation"`
	BestOverallDeviation float64         `json:"best_overall_deviation"`
	MostActiveUser       *MostActiveUser `json:"most_active_user"`
}

// TopPerformers holds three independently sorted top-10 slices of the same
// full leaderboard.
type TopPerformers struct {
	TopByAverage []models.LeaderboardEntry `json:"top_by_average"`
	TopByBest    []models.LeaderboardEntry `json:"top_by_best"`
	TopByGames   []models.LeaderboardEntry `json:"top_by_games"`
}

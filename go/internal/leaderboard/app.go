package leaderboard

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/mcdev12/timeright/go/internal/models"
)

// fullBoardLimit is the limit used when an operation needs the whole
// leaderboard, effectively "all users".
const fullBoardLimit = 1000

// topSliceSize is how many entries each top-performers slice carries.
const topSliceSize = 10

// LeaderboardStore defines the read-only view the ranking engine needs from
// the store.
type LeaderboardStore interface {
	GenerateLeaderboard(limit int) []models.LeaderboardEntry
	TotalUsers() int
}

// App derives ranking views on demand. It holds no state of its own; every
// query recomputes from the store.
type App struct {
	store LeaderboardStore
}

// NewApp creates a new ranking App.
func NewApp(store LeaderboardStore) *App {
	return &App{store: store}
}

// GetLeaderboard returns the top limit entries.
func (a *App) GetLeaderboard(limit int) *LeaderboardResponse {
	board := a.store.GenerateLeaderboard(limit)
	return &LeaderboardResponse{
		Leaderboard:  board,
		TotalEntries: len(board),
	}
}

// GetUserPosition returns the user's 1-based rank on the full leaderboard,
// or position 0 with a nil entry if the user is not ranked.
func (a *App) GetUserPosition(userID uuid.UUID) *UserPosition {
	board := a.store.GenerateLeaderboard(fullBoardLimit)
	idx := indexOf(board, userID)
	if idx == -1 {
		return &UserPosition{Position: 0, Entry: nil, TotalUsers: len(board)}
	}
	entry := board[idx]
	return &UserPosition{
		Position:   idx + 1,
		Entry:      &entry,
		TotalUsers: len(board),
	}
}

// GetLeaderboardAroundUser returns the inclusive window [idx-rng, idx+rng]
// around the user, clamped to the board's bounds.
func (a *App) GetLeaderboardAroundUser(userID uuid.UUID, rng int) *AroundUser {
	board := a.store.GenerateLeaderboard(fullBoardLimit)
	idx := indexOf(board, userID)
	if idx == -1 {
		return &AroundUser{Leaderboard: []models.LeaderboardEntry{}, UserPosition: 0, TotalUsers: len(board)}
	}

	start := idx - rng
	if start < 0 {
		start = 0
	}
	end := idx + rng + 1
	if end > len(board) {
		end = len(board)
	}

	return &AroundUser{
		Leaderboard:  board[start:end],
		UserPosition: idx + 1,
		TotalUsers:   len(board),
	}
}

// GetLeaderboardStats aggregates the full leaderboard. Total users counts
// every registered user, ranked or not.
func (a *App) GetLeaderboardStats() *Stats {
	totalUsers := a.store.TotalUsers()
	board := a.store.GenerateLeaderboard(fullBoardLimit)
	if len(board) == 0 {
		return &Stats{TotalUsers: totalUsers}
	}

	totalGames := 0
	averageSum := 0.0
	best := board[0].BestDeviationMs
	mostActive := board[0]
	for _, entry := range board {
		totalGames += entry.TotalGames
		averageSum += entry.AverageDeviationMs
		if entry.BestDeviationMs < best {
			best = entry.BestDeviationMs
		}
		// Strictly-greater keeps the first-encountered entry on ties.
		if entry.TotalGames > mostActive.TotalGames {
			mostActive = entry
		}
	}

	return &Stats{
		TotalUsers:           totalUsers,
		TotalGames:           totalGames,
		AverageDeviation:     round2(averageSum / float64(len(board))),
		BestOverallDeviation: round2(best),
		MostActiveUser: &MostActiveUser{
			Username:  mostActive.Username,
			GameCount: mostActive.TotalGames,
		},
	}
}

// GetTopPerformers returns three top-10 views over the same full
// leaderboard: by average deviation, by best deviation and by games played.
func (a *App) GetTopPerformers() *TopPerformers {
	board := a.store.GenerateLeaderboard(fullBoardLimit)

	byBest := make([]models.LeaderboardEntry, len(board))
	copy(byBest, board)
	sort.SliceStable(byBest, func(i, j int) bool {
		return byBest[i].BestDeviationMs < byBest[j].BestDeviationMs
	})

	byGames := make([]models.LeaderboardEntry, len(board))
	copy(byGames, board)
	sort.SliceStable(byGames, func(i, j int) bool {
		return byGames[i].TotalGames > byGames[j].TotalGames
	})

	return &TopPerformers{
		TopByAverage: head(board, topSliceSize),
		TopByBest:    head(byBest, topSliceSize),
		TopByGames:   head(byGames, topSliceSize),
	}
}

// GetUserPercentile returns the user's rank-based percentile: 100 for the
// top entry, approaching 0 for the bottom. Unranked users score 0.
func (a *App) GetUserPercentile(userID uuid.UUID) float64 {
	board := a.store.GenerateLeaderboard(fullBoardLimit)
	idx := indexOf(board, userID)
	if idx == -1 || len(board) == 0 {
		return 0
	}
	percentile := float64(len(board)-idx) / float64(len(board)) * 100
	return round2(percentile)
}

func indexOf(board []models.LeaderboardEntry, userID uuid.UUID) int {
	for i, entry := range board {
		if entry.UserID == userID {
			return i
		}
	}
	return -1
}

func head(entries []models.LeaderboardEntry, n int) []models.LeaderboardEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

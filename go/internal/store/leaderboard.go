package store

import (
	"math"
	"sort"

	"github.com/mcdev12/timeright/go/internal/models"
)

// GenerateLeaderboard derives at most limit leaderboard entries from the
// completed sessions of every user, sorted by average deviation ascending
// (lower is better). Users without a completed session are skipped. The
// per-user average deliberately includes timeout-pinned deviations; ties are
// broken by user id so ordering is deterministic.
func (s *Store) GenerateLeaderboard(limit int) []models.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leaderboard := make([]models.LeaderboardEntry, 0, len(s.users))
	for id, user := range s.users {
		completed := s.completedUserSessionsLocked(id)
		if len(completed) == 0 {
			continue
		}

		var deviations []int64
		for _, session := range completed {
			if session.DeviationMs != nil {
				deviations = append(deviations, *session.DeviationMs)
			}
		}
		if len(deviations) == 0 {
			continue
		}

		var sum int64
		best := deviations[0]
		for _, deviation := range deviations {
			sum += deviation
			if deviation < best {
				best = deviation
			}
		}
		average := float64(sum) / float64(len(deviations))

		leaderboard = append(leaderboard, models.LeaderboardEntry{
			UserID:             id,
			Username:           user.Username,
			TotalGames:         len(completed),
			AverageDeviationMs: round2(average),
			BestDeviationMs:    round2(float64(best)),
		})
	}

	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].AverageDeviationMs != leaderboard[j].AverageDeviationMs {
			return leaderboard[i].AverageDeviationMs < leaderboard[j].AverageDeviationMs
		}
		return leaderboard[i].UserID.String() < leaderboard[j].UserID.String()
	})

	if limit >= 0 && len(leaderboard) > limit {
		leaderboard = leaderboard[:limit]
	}
	return leaderboard
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

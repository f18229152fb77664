package leaderboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/timeright/go/internal/models"
	"github.com/mcdev12/timeright/go/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	st := store.New(clock)
	return NewApp(st), st
}

// seedUser registers a user and completes one session per deviation.
func seedUser(t *testing.T, st *store.Store, username string, deviations ...int64) uuid.UUID {
	t.Helper()
	user := st.CreateUser(username, "hash")
	for _, deviation := range deviations {
		session := st.CreateGameSession(user.ID, 0)
		endTime := models.TargetDurationMs + deviation
		dev := deviation
		completed := true
		_, ok := st.UpdateGameSession(session.ID, store.SessionUpdate{
			EndTime:     &endTime,
			DeviationMs: &dev,
			IsCompleted: &completed,
		})
		require.True(t, ok)
	}
	return user.ID
}

func TestGetLeaderboard(t *testing.T) {
	app, st := newTestApp(t)
	best := seedUser(t, st, "best", 100)
	seedUser(t, st, "worst", 300)

	resp := app.GetLeaderboard(10)
	assert.Equal(t, 2, resp.TotalEntries)
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, best, resp.Leaderboard[0].UserID)

	resp = app.GetLeaderboard(1)
	assert.Equal(t, 1, resp.TotalEntries)
}

func TestGetUserPosition(t *testing.T) {
	app, st := newTestApp(t)
	first := seedUser(t, st, "first", 100)
	second := seedUser(t, st, "second", 300)

	pos := app.GetUserPosition(first)
	assert.Equal(t, 1, pos.Position)
	require.NotNil(t, pos.Entry)
	assert.Equal(t, "first", pos.Entry.Username)
	assert.Equal(t, 2, pos.TotalUsers)

	pos = app.GetUserPosition(second)
	assert.Equal(t, 2, pos.Position)

	pos = app.GetUserPosition(uuid.New())
	assert.Equal(t, 0, pos.Position)
	assert.Nil(t, pos.Entry)
	assert.Equal(t, 2, pos.TotalUsers)
}

func TestGetLeaderboardAroundUser_WindowClamping(t *testing.T) {
	app, st := newTestApp(t)

	// Single entry, range larger than the board.
	only := seedUser(t, st, "only", 100)
	around := app.GetLeaderboardAroundUser(only, 3)
	require.Len(t, around.Leaderboard, 1)
	assert.Equal(t, only, around.Leaderboard[0].UserID)
	assert.Equal(t, 1, around.UserPosition)
}

func TestGetLeaderboardAroundUser_MiddleOfBoard(t *testing.T) {
	app, st := newTestApp(t)
	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		ids = append(ids, seedUser(t, st, string(rune('a'+i)), int64(100*(i+1))))
	}

	around := app.GetLeaderboardAroundUser(ids[3], 2)
	require.Len(t, around.Leaderboard, 5)
	assert.Equal(t, ids[1], around.Leaderboard[0].UserID)
	assert.Equal(t, ids[5], around.Leaderboard[4].UserID)
	assert.Equal(t, 4, around.UserPosition)
	assert.Equal(t, 7, around.TotalUsers)
}

func TestGetLeaderboardAroundUser_UnknownUser(t *testing.T) {
	app, st := newTestApp(t)
	seedUser(t, st, "someone", 100)

	around := app.GetLeaderboardAroundUser(uuid.New(), 3)
	assert.Empty(t, around.Leaderboard)
	assert.Equal(t, 0, around.UserPosition)
	assert.Equal(t, 1, around.TotalUsers)
}

func TestGetLeaderboardStats_EmptyStore(t *testing.T) {
	app, _ := newTestApp(t)

	stats := app.GetLeaderboardStats()
	assert.Equal(t, 0, stats.TotalUsers)
	assert.Equal(t, 0, stats.TotalGames)
	assert.Zero(t, stats.AverageDeviation)
	assert.Zero(t, stats.BestOverallDeviation)
	assert.Nil(t, stats.MostActiveUser)
}

func TestGetLeaderboardStats(t *testing.T) {
	app, st := newTestApp(t)
	seedUser(t, st, "alice", 100, 200)     // avg 150, best 100, 2 games
	seedUser(t, st, "bob", 400, 500, 600)  // avg 500, best 400, 3 games
	st.CreateUser("lurker", "hash")        // registered, never played

	stats := app.GetLeaderboardStats()
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 5, stats.TotalGames)
	// Mean of the per-entry averages, not of the raw sessions.
	assert.InDelta(t, 325, stats.AverageDeviation, 0.001)
	assert.InDelta(t, 100, stats.BestOverallDeviation, 0.001)
	require.NotNil(t, stats.MostActiveUser)
	assert.Equal(t, "bob", stats.MostActiveUser.Username)
	assert.Equal(t, 3, stats.MostActiveUser.GameCount)
}

func TestGetTopPerformers(t *testing.T) {
	app, st := newTestApp(t)
	steady := seedUser(t, st, "steady", 100, 120)         // best average
	lucky := seedUser(t, st, "lucky", 10, 900, 950)       // best single, most games
	middling := seedUser(t, st, "middling", 300)

	top := app.GetTopPerformers()
	require.Len(t, top.TopByAverage, 3)
	assert.Equal(t, steady, top.TopByAverage[0].UserID)
	assert.Equal(t, middling, top.TopByAverage[1].UserID)
	assert.Equal(t, lucky, top.TopByBest[0].UserID)
	assert.Equal(t, lucky, top.TopByGames[0].UserID)
}

func TestGetUserPercentile(t *testing.T) {
	app, st := newTestApp(t)
	only := seedUser(t, st, "only", 100)

	assert.InDelta(t, 100.0, app.GetUserPercentile(only), 0.001)
	assert.Zero(t, app.GetUserPercentile(uuid.New()))
}

func TestGetUserPercentile_Ranked(t *testing.T) {
	app, st := newTestApp(t)
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		ids = append(ids, seedUser(t, st, string(rune('a'+i)), int64(100*(i+1))))
	}

	assert.InDelta(t, 100, app.GetUserPercentile(ids[0]), 0.001)
	assert.InDelta(t, 75, app.GetUserPercentile(ids[1]), 0.001)
	assert.InDelta(t, 25, app.GetUserPercentile(ids[3]), 0.001)
}

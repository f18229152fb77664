package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/timeright/go/internal/models"
)

func newTestStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(clock), clock
}

func TestCreateUser(t *testing.T) {
	s, clock := newTestStore(t)

	user := s.CreateUser("alice", "hash1")
	require.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash1", user.PasswordHash)
	assert.Equal(t, clock.Now(), user.CreatedAt)

	other := s.CreateUser("bob", "hash2")
	assert.NotEqual(t, user.ID, other.ID)
	assert.Equal(t, 2, s.TotalUsers())
	assert.Len(t, s.GetAllUsers(), 2)
}

func TestGetUserByID(t *testing.T) {
	s, _ := newTestStore(t)
	user := s.CreateUser("alice", "hash")

	got, ok := s.GetUserByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, user.Username, got.Username)

	_, ok = s.GetUserByID(uuid.New())
	assert.False(t, ok)
}

func TestGetUserByUsername(t *testing.T) {
	s, _ := newTestStore(t)
	user := s.CreateUser("alice", "hash")

	got, ok := s.GetUserByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)

	_, ok = s.GetUserByUsername("nobody")
	assert.False(t, ok)
}

func TestCreateGameSession(t *testing.T) {
	s, clock := newTestStore(t)
	user := s.CreateUser("alice", "hash")

	session := s.CreateGameSession(user.ID, clock.Now().UnixMilli())
	assert.Equal(t, user.ID, session.UserID)
	assert.False(t, session.IsCompleted)
	assert.Nil(t, session.EndTime)
	assert.Nil(t, session.DeviationMs)

	got, ok := s.GetGameSession(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)
}

func TestUpdateGameSession_PartialMerge(t *testing.T) {
	s, clock := newTestStore(t)
	user := s.CreateUser("alice", "hash")
	session := s.CreateGameSession(user.ID, clock.Now().UnixMilli())

	endTime := session.StartTime + 10000
	deviation := int64(0)
	completed := true
	updated, ok := s.UpdateGameSession(session.ID, SessionUpdate{
		EndTime:     &endTime,
		DeviationMs: &deviation,
		IsCompleted: &completed,
	})
	require.True(t, ok)
	require.NotNil(t, updated.EndTime)
	assert.Equal(t, endTime, *updated.EndTime)
	require.NotNil(t, updated.DeviationMs)
	assert.Equal(t, deviation, *updated.DeviationMs)
	assert.True(t, updated.IsCompleted)

	// Untouched fields survive a partial update.
	newDeviation := int64(42)
	updated, ok = s.UpdateGameSession(session.ID, SessionUpdate{DeviationMs: &newDeviation})
	require.True(t, ok)
	assert.Equal(t, endTime, *updated.EndTime)
	assert.Equal(t, newDeviation, *updated.DeviationMs)
	assert.True(t, updated.IsCompleted)
}

func TestUpdateGameSession_UnknownID(t *testing.T) {
	s, _ := newTestStore(t)

	completed := true
	_, ok := s.UpdateGameSession(uuid.New(), SessionUpdate{IsCompleted: &completed})
	assert.False(t, ok)
}

func TestGetUserSessions_InsertionOrder(t *testing.T) {
	s, clock := newTestStore(t)
	user := s.CreateUser("alice", "hash")

	first := s.CreateGameSession(user.ID, clock.Now().UnixMilli())
	clock.Advance(time.Second)
	second := s.CreateGameSession(user.ID, clock.Now().UnixMilli())
	clock.Advance(time.Second)
	third := s.CreateGameSession(user.ID, clock.Now().UnixMilli())

	sessions := s.GetUserSessions(user.ID)
	require.Len(t, sessions, 3)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)
	assert.Equal(t, third.ID, sessions[2].ID)
}

func TestActiveAndCompletedFilters(t *testing.T) {
	s, clock := newTestStore(t)
	user := s.CreateUser("alice", "hash")

	active := s.CreateGameSession(user.ID, clock.Now().UnixMilli())
	done := s.CreateGameSession(user.ID, clock.Now().UnixMilli())
	completeSession(t, s, done.ID, 100)

	activeSessions := s.GetActiveUserSessions(user.ID)
	require.Len(t, activeSessions, 1)
	assert.Equal(t, active.ID, activeSessions[0].ID)

	completedSessions := s.GetCompletedUserSessions(user.ID)
	require.Len(t, completedSessions, 1)
	assert.Equal(t, done.ID, completedSessions[0].ID)

	assert.Equal(t, 2, s.TotalSessions())
	assert.Equal(t, 1, s.TotalCompletedSessions())
}

func TestClearAllData(t *testing.T) {
	s, clock := newTestStore(t)
	user := s.CreateUser("alice", "hash")
	s.CreateGameSession(user.ID, clock.Now().UnixMilli())

	s.ClearAllData()

	assert.Equal(t, 0, s.TotalUsers())
	assert.Equal(t, 0, s.TotalSessions())
	_, ok := s.GetUserByUsername("alice")
	assert.False(t, ok)
	assert.Empty(t, s.GetUserSessions(user.ID))
}

// completeSession marks a session completed with the given deviation via the
// store's only mutation path.
func completeSession(t *testing.T, s *Store, id uuid.UUID, deviation int64) {
	t.Helper()
	session, ok := s.GetGameSession(id)
	require.True(t, ok)
	endTime := session.StartTime + models.TargetDurationMs + deviation
	completed := true
	_, ok = s.UpdateGameSession(id, SessionUpdate{
		EndTime:     &endTime,
		DeviationMs: &deviation,
		IsCompleted: &completed,
	})
	require.True(t, ok)
}

package game

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/timeright/go/internal/models"
	"github.com/mcdev12/timeright/go/internal/store"
)

const startMessage = "Game session started! Try to stop the timer exactly at 10 seconds."

// GameStore defines what the app layer needs from the store.
type GameStore interface {
	GetUserByID(id uuid.UUID) (*models.User, bool)
	CreateGameSession(userID uuid.UUID, startTime int64) *models.GameSession
	GetGameSession(id uuid.UUID) (*models.GameSession, bool)
	UpdateGameSession(id uuid.UUID, upd store.SessionUpdate) (*models.GameSession, bool)
	GetUserSessions(userID uuid.UUID) []models.GameSession
	GetActiveUserSessions(userID uuid.UUID) []models.GameSession
	AllSessions() []models.GameSession
}

// App manages the session lifecycle: start, stop and expiry. Expiry is lazy,
// evaluated on start and stop, plus the explicit CleanupExpiredSessions sweep.
type App struct {
	store GameStore
	clock clockwork.Clock
}

// NewApp creates a new game App reading time from clock.
func NewApp(store GameStore, clock clockwork.Clock) *App {
	return &App{
		store: store,
		clock: clock,
	}
}

// StartGame creates a fresh active session for the user. Any of the user's
// active sessions that have outlived the session timeout are auto-completed
// first. Multiple concurrent active sessions per user are permitted.
func (a *App) StartGame(userID uuid.UUID) (*StartGameResponse, error) {
	if _, ok := a.store.GetUserByID(userID); !ok {
		return nil, ErrUserNotFound
	}

	nowMs := a.clock.Now().UnixMilli()
	for _, session := range a.store.GetActiveUserSessions(userID) {
		if session.Expired(nowMs) {
			a.expireSession(session.ID, session.StartTime)
		}
	}

	session := a.store.CreateGameSession(userID, nowMs)
	log.Info().
		Str("user_id", userID.String()).
		Str("session_id", session.ID.String()).
		Msg("game session started")

	return &StartGameResponse{
		SessionID: session.ID,
		Message:   startMessage,
		StartTime: session.StartTime,
	}, nil
}

// StopGame completes a session and scores it against the target duration.
// With an explicit sessionID that exact session is stopped; otherwise the
// most recently started active session is picked.
func (a *App) StopGame(userID uuid.UUID, sessionID *uuid.UUID) (*StopGameResponse, error) {
	if _, ok := a.store.GetUserByID(userID); !ok {
		return nil, ErrUserNotFound
	}

	var session *models.GameSession
	if sessionID != nil {
		found, ok := a.store.GetGameSession(*sessionID)
		if !ok {
			return nil, ErrSessionNotFound
		}
		if found.UserID != userID {
			return nil, ErrSessionForbidden
		}
		session = found
	} else {
		active := a.store.GetActiveUserSessions(userID)
		if len(active) == 0 {
			return nil, ErrNoActiveSession
		}
		sort.Slice(active, func(i, j int) bool {
			return active[i].StartTime > active[j].StartTime
		})
		session = &active[0]
	}

	if session.IsCompleted {
		return nil, ErrSessionCompleted
	}

	nowMs := a.clock.Now().UnixMilli()
	if session.Expired(nowMs) {
		a.expireSession(session.ID, session.StartTime)
		return nil, ErrSessionExpired
	}

	endTime := nowMs
	actualDuration := endTime - session.StartTime
	deviation := absDuration(actualDuration - models.TargetDurationMs)

	completed := true
	updated, ok := a.store.UpdateGameSession(session.ID, store.SessionUpdate{
		EndTime:     &endTime,
		DeviationMs: &deviation,
		IsCompleted: &completed,
	})
	if !ok {
		return nil, ErrSessionNotFound
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("session_id", updated.ID.String()).
		Int64("deviation_ms", deviation).
		Msg("game session stopped")

	return &StopGameResponse{
		SessionID:      updated.ID,
		StartTime:      updated.StartTime,
		EndTime:        endTime,
		ActualDuration: actualDuration,
		TargetDuration: models.TargetDurationMs,
		Deviation:      deviation,
		Message:        feedbackMessage(deviation),
	}, nil
}

// GetUserStats returns the user's aggregate play history. Timeout-expired
// sessions count toward totals but are excluded from the deviation averages.
func (a *App) GetUserStats(userID uuid.UUID) (*UserStats, error) {
	if _, ok := a.store.GetUserByID(userID); !ok {
		return nil, ErrUserNotFound
	}

	allSessions := a.store.GetUserSessions(userID)
	var completed []models.GameSession
	var deviations []int64
	for _, session := range allSessions {
		if !session.IsCompleted {
			continue
		}
		completed = append(completed, session)
		if session.DeviationMs != nil && *session.DeviationMs < models.SessionTimeoutMs {
			deviations = append(deviations, *session.DeviationMs)
		}
	}

	var average, best float64
	if len(deviations) > 0 {
		var sum int64
		min := deviations[0]
		for _, deviation := range deviations {
			sum += deviation
			if deviation < min {
				min = deviation
			}
		}
		average = round2(float64(sum) / float64(len(deviations)))
		best = round2(float64(min))
	}

	return &UserStats{
		TotalGames:       len(allSessions),
		CompletedGames:   len(completed),
		AverageDeviation: average,
		BestDeviation:    best,
		RecentSessions:   recentSessions(allSessions, 10),
	}, nil
}

// GetActiveSession returns the user's most recently started active session,
// or nil if there is none.
func (a *App) GetActiveSession(userID uuid.UUID) (*models.GameSession, error) {
	if _, ok := a.store.GetUserByID(userID); !ok {
		return nil, ErrUserNotFound
	}

	active := a.store.GetActiveUserSessions(userID)
	if len(active) == 0 {
		return nil, nil
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].StartTime > active[j].StartTime
	})
	return &active[0], nil
}

// CleanupExpiredSessions sweeps every session in the store and completes the
// expired-but-active ones with the timeout-pinned deviation. Returns the
// number of sessions mutated.
func (a *App) CleanupExpiredSessions() int {
	nowMs := a.clock.Now().UnixMilli()
	cleaned := 0
	for _, session := range a.store.AllSessions() {
		if !session.IsCompleted && session.Expired(nowMs) {
			a.expireSession(session.ID, session.StartTime)
			cleaned++
		}
	}
	if cleaned > 0 {
		log.Info().Int("cleaned", cleaned).Msg("expired sessions cleaned up")
	}
	return cleaned
}

// expireSession completes a timed-out session with EndTime pinned to
// startTime + timeout and the deviation pinned to the timeout itself.
func (a *App) expireSession(id uuid.UUID, startTime int64) {
	endTime := startTime + models.SessionTimeoutMs
	deviation := models.SessionTimeoutMs
	completed := true
	a.store.UpdateGameSession(id, store.SessionUpdate{
		EndTime:     &endTime,
		DeviationMs: &deviation,
		IsCompleted: &completed,
	})
	log.Debug().Str("session_id", id.String()).Msg("expired session auto-completed")
}

// feedbackMessage maps a deviation to the tiered player-facing message. The
// breakpoints are inclusive upper bounds in milliseconds.
func feedbackMessage(deviation int64) string {
	switch {
	case deviation <= 50:
		return "Excellent! Perfect timing!"
	case deviation <= 200:
		return "Great job! Very close to the target."
	case deviation <= 500:
		return "Good effort! Try to get closer to 10 seconds."
	case deviation <= 1000:
		return "Not bad! Keep practicing to improve your timing."
	default:
		return "Keep trying! Focus on counting to 10 seconds."
	}
}

// recentSessions returns the last n sessions by creation order, most recent
// first.
func recentSessions(sessions []models.GameSession, n int) []models.GameSession {
	start := len(sessions) - n
	if start < 0 {
		start = 0
	}
	tail := sessions[start:]
	recent := make([]models.GameSession, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		recent = append(recent, tail[i])
	}
	return recent
}

func absDuration(d int64) int64 {
	if d < 0 {
		return -d
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// All durations in the game domain are integer milliseconds.
const (
	// TargetDurationMs is the duration players aim for when stopping the timer.
	TargetDurationMs int64 = 10000

	// SessionTimeoutMs is the age after which an active session counts as
	// expired. An expired session completes with DeviationMs pinned to this
	// value instead of a measured deviation.
	SessionTimeoutMs int64 = 30 * 60 * 1000
)

// GameSession is a single timing attempt. StartTime and EndTime are epoch
// milliseconds. EndTime and DeviationMs are set exactly once, when the
// session completes; a completed session is never mutated again.
type GameSession struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StartTime   int64     `json:"start_time"`
	EndTime     *int64    `json:"end_time,omitempty"`
	DeviationMs *int64    `json:"deviation_ms,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the session's age exceeds the session timeout at
// nowMs. Only meaningful for active sessions.
func (s *GameSession) Expired(nowMs int64) bool {
	return nowMs-s.StartTime > SessionTimeoutMs
}

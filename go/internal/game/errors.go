package game

import "errors"

// Sentinel errors surfaced by the session lifecycle manager. All of them are
// recoverable caller-level conditions, never process-fatal.
var (
	// ErrUserNotFound is returned when the user id is unknown.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound is returned when an explicit session id is unknown.
	ErrSessionNotFound = errors.New("game session not found")

	// ErrSessionForbidden is returned when the session belongs to another user.
	ErrSessionForbidden = errors.New("session does not belong to user")

	// ErrNoActiveSession is returned by an implicit stop when the user has no
	// active session.
	ErrNoActiveSession = errors.New("no active game session")

	// ErrSessionCompleted is returned when stopping an already-completed
	// session. The session is never recomputed.
	ErrSessionCompleted = errors.New("game session already completed")

	// ErrSessionExpired is returned when the session timed out before the
	// stop. The session is completed with the timeout-pinned deviation.
	ErrSessionExpired = errors.New("game session expired")
)

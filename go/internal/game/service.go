package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/timeright/go/internal/auth"
	"github.com/mcdev12/timeright/go/internal/httpx"
	"github.com/mcdev12/timeright/go/internal/models"
)

// GameApp defines what the service layer needs from the game application.
type GameApp interface {
	StartGame(userID uuid.UUID) (*StartGameResponse, error)
	StopGame(userID uuid.UUID, sessionID *uuid.UUID) (*StopGameResponse, error)
	GetUserStats(userID uuid.UUID) (*UserStats, error)
	GetActiveSession(userID uuid.UUID) (*models.GameSession, error)
	CleanupExpiredSessions() int
}

// Service exposes the game application over REST.
type Service struct {
	app GameApp
}

// NewService creates a new game REST service.
func NewService(app GameApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the game endpoints on mux. All routes require
// authentication; the per-user routes additionally require the path user to
// match the authenticated one.
func (s *Service) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("POST /games/{userId}/start", mw.Authenticate(mw.RequireUserMatch(s.handleStartGame)))
	mux.HandleFunc("POST /games/{userId}/stop", mw.Authenticate(mw.RequireUserMatch(s.handleStopGame)))
	mux.HandleFunc("GET /games/{userId}/stats", mw.Authenticate(mw.RequireUserMatch(s.handleUserStats)))
	mux.HandleFunc("GET /games/{userId}/active", mw.Authenticate(mw.RequireUserMatch(s.handleActiveSession)))
	mux.HandleFunc("POST /games/cleanup", mw.Authenticate(s.handleCleanup))
}

func (s *Service) handleStartGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	resp, err := s.app.StartGame(userID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, "Game started successfully", resp)
}

func (s *Service) handleStopGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	// The session id in the body is optional; without it the most recent
	// active session is stopped.
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	var sessionID *uuid.UUID
	if body.SessionID != "" {
		id, err := uuid.Parse(body.SessionID)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid session id")
			return
		}
		sessionID = &id
	}

	resp, err := s.app.StopGame(userID, sessionID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Game stopped successfully", resp)
}

func (s *Service) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	stats, err := s.app.GetUserStats(userID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "User statistics retrieved successfully", stats)
}

func (s *Service) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	session, err := s.app.GetActiveSession(userID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if session == nil {
		httpx.JSON(w, http.StatusOK, "No active game session", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, "Active session retrieved successfully", session)
}

func (s *Service) handleCleanup(w http.ResponseWriter, r *http.Request) {
	cleaned := s.app.CleanupExpiredSessions()
	httpx.JSON(w, http.StatusOK, "Expired sessions cleaned up successfully", map[string]int{
		"cleaned_sessions": cleaned,
	})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid user id")
		return uuid.Nil, false
	}
	return userID, true
}

// writeGameError maps lifecycle errors to REST status codes: unknown
// entities 404, foreign sessions 403, expiry 410, everything else 400.
func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrSessionForbidden):
		status = http.StatusForbidden
	case errors.Is(err, ErrSessionExpired):
		status = http.StatusGone
	}
	httpx.Error(w, status, err.Error())
}

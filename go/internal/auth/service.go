package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcdev12/timeright/go/internal/httpx"
)

// AuthApp defines what the service layer needs from the auth application.
type AuthApp interface {
	Register(creds Credentials) (*AuthResponse, error)
	Login(creds Credentials) (*AuthResponse, error)
	Refresh(tokenString string) (string, error)
}

// Service exposes the auth application over REST.
type Service struct {
	app AuthApp
}

// NewService creates a new auth REST service.
func NewService(app AuthApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the auth endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, mw *Middleware) {
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("GET /auth/me", mw.Authenticate(s.handleMe))
	mux.HandleFunc("POST /auth/logout", mw.Authenticate(s.handleLogout))
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	resp, err := s.app.Register(creds)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUsernameTaken) {
			status = http.StatusConflict
		}
		httpx.Error(w, status, err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, "User registered successfully", resp)
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	resp, err := s.app.Login(creds)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		httpx.Error(w, status, err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, "Login successful", resp)
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		httpx.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	refreshed, err := s.app.Refresh(token)
	if err != nil {
		httpx.Error(w, http.StatusUnauthorized, "Access denied. Invalid token.")
		return
	}
	httpx.JSON(w, http.StatusOK, "Token refreshed successfully", map[string]string{"token": refreshed})
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Access denied. Authentication required.")
		return
	}
	httpx.JSON(w, http.StatusOK, "User retrieved successfully", map[string]any{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout is client-side discard.
	httpx.JSON(w, http.StatusOK, "Logout successful", nil)
}

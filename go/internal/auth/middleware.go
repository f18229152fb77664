package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcdev12/timeright/go/internal/httpx"
	"github.com/mcdev12/timeright/go/internal/models"
)

type contextKey int

const userContextKey contextKey = iota

// UserFromContext returns the user attached to the request context by
// Authenticate.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// Middleware guards HTTP handlers with bearer-token authentication.
type Middleware struct {
	app *App
}

// NewMiddleware creates auth middleware backed by app.
func NewMiddleware(app *App) *Middleware {
	return &Middleware{app: app}
}

// Authenticate rejects requests without a valid bearer token and attaches
// the resolved user to the request context.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpx.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		user, ok := m.app.UserFromToken(token)
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access denied. Invalid token.")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireUserMatch rejects requests whose {userId} path segment differs from
// the authenticated user. Must run after Authenticate.
func (m *Middleware) RequireUserMatch(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access denied. Authentication required.")
			return
		}
		if user.ID.String() != r.PathValue("userId") {
			httpx.Error(w, http.StatusForbidden, "Access denied. You can only access your own resources.")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

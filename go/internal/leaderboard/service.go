package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mcdev12/timeright/go/internal/httpx"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	defaultRange = 5
	maxRange     = 50
)

// LeaderboardApp defines what the service layer needs from the ranking
// application.
type LeaderboardApp interface {
	GetLeaderboard(limit int) *LeaderboardResponse
	GetUserPosition(userID uuid.UUID) *UserPosition
	GetLeaderboardAroundUser(userID uuid.UUID, rng int) *AroundUser
	GetLeaderboardStats() *Stats
	GetTopPerformers() *TopPerformers
	GetUserPercentile(userID uuid.UUID) float64
}

// Service exposes the ranking application over REST. All routes are public.
type Service struct {
	app LeaderboardApp
}

// NewService creates a new leaderboard REST service.
func NewService(app LeaderboardApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the leaderboard endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /leaderboard/stats", s.handleStats)
	mux.HandleFunc("GET /leaderboard/top-performers", s.handleTopPerformers)
	mux.HandleFunc("GET /leaderboard/user/{userId}", s.handleUserPosition)
	mux.HandleFunc("GET /leaderboard/user/{userId}/around", s.handleAroundUser)
	mux.HandleFunc("GET /leaderboard/user/{userId}/percentile", s.handlePercentile)
}

func (s *Service) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultLimit, 1, maxLimit)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "Limit must be a number between 1 and 100")
		return
	}
	httpx.JSON(w, http.StatusOK, "Leaderboard retrieved successfully", s.app.GetLeaderboard(limit))
}

func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, "Leaderboard statistics retrieved successfully", s.app.GetLeaderboardStats())
}

func (s *Service) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, "Top performers retrieved successfully", s.app.GetTopPerformers())
}

func (s *Service) handleUserPosition(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, "User position retrieved successfully", s.app.GetUserPosition(userID))
}

func (s *Service) handleAroundUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	rng, ok := queryInt(r, "range", defaultRange, 1, maxRange)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "Range must be a number between 1 and 50")
		return
	}
	httpx.JSON(w, http.StatusOK, "Leaderboard around user retrieved successfully", s.app.GetLeaderboardAroundUser(userID, rng))
}

func (s *Service) handlePercentile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, "User percentile retrieved successfully", map[string]any{
		"user_id":    userID,
		"percentile": s.app.GetUserPercentile(userID),
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

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent. Present-but-invalid or out-of-bounds values fail.
func queryInt(r *http.Request, name string, def, min, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return 0, false
	}
	return v, true
}

package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/timeright/go/internal/models"
)

// Store is the authoritative in-memory home of all users and game sessions.
// Individual operations are atomic under the mutex; multi-step sequences
// (check-then-create, filter-then-update) are not transactional, so
// concurrent requests for the same user can interleave.
type Store struct {
	mu              sync.RWMutex
	clock           clockwork.Clock
	users           map[uuid.UUID]models.User
	usersByUsername map[string]uuid.UUID
	sessions        map[uuid.UUID]models.GameSession
	userSessions    map[uuid.UUID][]uuid.UUID // userID -> session ids in start order
}

// New creates an empty Store that reads time from clock.
func New(clock clockwork.Clock) *Store {
	return &Store{
		clock:           clock,
		users:           make(map[uuid.UUID]models.User),
		usersByUsername: make(map[string]uuid.UUID),
		sessions:        make(map[uuid.UUID]models.GameSession),
		userSessions:    make(map[uuid.UUID][]uuid.UUID),
	}
}

// CreateUser stores a new user under a freshly generated id. Username
// uniqueness is the caller's responsibility; the store does not enforce it.
func (s *Store) CreateUser(username, passwordHash string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.clock.Now(),
	}
	s.users[user.ID] = user
	s.usersByUsername[username] = user.ID
	return &user
}

// GetUserByID returns the user with the given id, or false if unknown.
func (s *Store) GetUserByID(id uuid.UUID) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return &user, true
}

// GetUserByUsername returns the user with the given username, or false if
// unknown.
func (s *Store) GetUserByUsername(username string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByUsername[username]
	if !ok {
		return nil, false
	}
	user := s.users[id]
	return &user, true
}

// GetAllUsers returns every registered user.
func (s *Store) GetAllUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users
}

// CreateGameSession stores a new active session for userID starting at
// startTime (epoch milliseconds) and appends it to the user's session list.
func (s *Store) CreateGameSession(userID uuid.UUID, startTime int64) *models.GameSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := models.GameSession{
		ID:          uuid.New(),
		UserID:      userID,
		StartTime:   startTime,
		IsCompleted: false,
		CreatedAt:   s.clock.Now(),
	}
	s.sessions[session.ID] = session
	s.userSessions[userID] = append(s.userSessions[userID], session.ID)
	return &session
}

// GetGameSession returns the session with the given id, or false if unknown.
func (s *Store) GetGameSession(id uuid.UUID) (*models.GameSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return &session, true
}

// SessionUpdate is a partial update for a game session. Nil fields are left
// untouched.
type SessionUpdate struct {
	EndTime     *int64
	DeviationMs *int64
	IsCompleted *bool
}

// UpdateGameSession merges upd into the stored session and returns the
// result, or false if the id is unknown. This is the only mutation path for
// sessions.
func (s *Store) UpdateGameSession(id uuid.UUID, upd SessionUpdate) (*models.GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if upd.EndTime != nil {
		endTime := *upd.EndTime
		session.EndTime = &endTime
	}
	if upd.DeviationMs != nil {
		deviation := *upd.DeviationMs
		session.DeviationMs = &deviation
	}
	if upd.IsCompleted != nil {
		session.IsCompleted = *upd.IsCompleted
	}
	s.sessions[id] = session
	return &session, true
}

// GetUserSessions returns the user's sessions in insertion order, which is
// start order.
func (s *Store) GetUserSessions(userID uuid.UUID) []models.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userSessionsLocked(userID)
}

// GetActiveUserSessions returns the user's sessions that have not completed.
func (s *Store) GetActiveUserSessions(userID uuid.UUID) []models.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []models.GameSession
	for _, session := range s.userSessionsLocked(userID) {
		if !session.IsCompleted {
			active = append(active, session)
		}
	}
	return active
}

// GetCompletedUserSessions returns the user's completed sessions.
func (s *Store) GetCompletedUserSessions(userID uuid.UUID) []models.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completedUserSessionsLocked(userID)
}

// AllSessions returns every session in the store, across all users.
func (s *Store) AllSessions() []models.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]models.GameSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// TotalUsers returns the number of registered users.
func (s *Store) TotalUsers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// TotalSessions returns the number of sessions ever created.
func (s *Store) TotalSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// TotalCompletedSessions returns the number of completed sessions.
func (s *Store) TotalCompletedSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, session := range s.sessions {
		if session.IsCompleted {
			count++
		}
	}
	return count
}

// ClearAllData resets every index. Used by test harnesses only; never called
// on the production request path.
func (s *Store) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[uuid.UUID]models.User)
	s.usersByUsername = make(map[string]uuid.UUID)
	s.sessions = make(map[uuid.UUID]models.GameSession)
	s.userSessions = make(map[uuid.UUID][]uuid.UUID)
}

func (s *Store) userSessionsLocked(userID uuid.UUID) []models.GameSession {
	ids := s.userSessions[userID]
	sessions := make([]models.GameSession, 0, len(ids))
	for _, id := range ids {
		if session, ok := s.sessions[id]; ok {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

func (s *Store) completedUserSessionsLocked(userID uuid.UUID) []models.GameSession {
	var completed []models.GameSession
	for _, session := range s.userSessionsLocked(userID) {
		if session.IsCompleted {
			completed = append(completed, session)
		}
	}
	return completed
}

package auth

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcdev12/timeright/go/internal/models"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

const bcryptCost = 12

// DefaultTokenTTL is how long issued tokens stay valid unless configured
// otherwise.
const DefaultTokenTTL = 24 * time.Hour

// AuthStore defines what the app layer needs from the store.
type AuthStore interface {
	CreateUser(username, passwordHash string) *models.User
	GetUserByID(id uuid.UUID) (*models.User, bool)
	GetUserByUsername(username string) (*models.User, bool)
}

// App handles registration, login and token verification.
type App struct {
	store  AuthStore
	clock  clockwork.Clock
	secret []byte
	ttl    time.Duration
}

// NewApp creates a new auth App signing tokens with secret.
func NewApp(store AuthStore, clock clockwork.Clock, secret []byte, ttl time.Duration) *App {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &App{
		store:  store,
		clock:  clock,
		secret: secret,
		ttl:    ttl,
	}
}

// Register validates the credentials, creates the user with a bcrypt
// password hash and returns a signed token. The existence check and the
// create are not atomic; see the store's race note.
func (a *App) Register(creds Credentials) (*AuthResponse, error) {
	if !usernameRe.MatchString(creds.Username) {
		return nil, ErrInvalidUsername
	}
	if len(creds.Password) < 6 {
		return nil, ErrInvalidPassword
	}
	if _, exists := a.store.GetUserByUsername(creds.Username); exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := a.store.CreateUser(creds.Username, string(hash))
	token, err := GenerateToken(user, a.secret, a.ttl, a.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("user registered")

	return &AuthResponse{
		Token: token,
		User:  PublicUser{ID: user.ID, Username: user.Username},
	}, nil
}

// Login verifies the credentials and returns a fresh token.
func (a *App) Login(creds Credentials) (*AuthResponse, error) {
	user, ok := a.store.GetUserByUsername(creds.Username)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user, a.secret, a.ttl, a.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return &AuthResponse{
		Token: token,
		User:  PublicUser{ID: user.ID, Username: user.Username},
	}, nil
}

// Refresh issues a new token for the user referenced by a still-valid token.
func (a *App) Refresh(tokenString string) (string, error) {
	user, err := a.userFromToken(tokenString)
	if err != nil {
		return "", err
	}
	return GenerateToken(user, a.secret, a.ttl, a.clock.Now())
}

// UserFromToken resolves a token to the stored user, or false when the token
// is invalid or the user is gone.
func (a *App) UserFromToken(tokenString string) (*models.User, bool) {
	user, err := a.userFromToken(tokenString)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (a *App) userFromToken(tokenString string) (*models.User, error) {
	claims, err := ParseToken(tokenString, a.secret)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, ok := a.store.GetUserByID(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

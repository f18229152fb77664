package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered player. Users are created once at
// registration and never mutated afterwards.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

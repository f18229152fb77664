package auth

import "errors"

var (
	// ErrInvalidUsername is returned when the username fails the format check.
	ErrInvalidUsername = errors.New("username must be 3-20 characters long and contain only letters, numbers, and underscores")

	// ErrInvalidPassword is returned when the password is too short.
	ErrInvalidPassword = errors.New("password must be at least 6 characters long")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown usernames and bad passwords
	// so login failures don't leak which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for malformed, expired or forged tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound is returned when a valid token references a user that
	// no longer exists in the store.
	ErrUserNotFound = errors.New("user not found")
)

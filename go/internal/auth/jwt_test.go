package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/timeright/go/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Username:  "alice",
		CreatedAt: time.Now(),
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("super-secret")
	user := testUser()

	token, err := GenerateToken(user, secret, time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken(testUser(), secret, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), []byte("right-secret"), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

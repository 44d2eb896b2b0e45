package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siege-works/garrison/internal/auth"
	"github.com/siege-works/garrison/internal/shared"
)

func TestIssueAndVerifyToken(t *testing.T) {
	secret := []byte("super-secret")

	tok, err := auth.IssueToken(42, secret, time.Hour)
	require.NoError(t, err)

	userID, err := auth.UserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestExpiredToken(t *testing.T) {
	secret := []byte("secret")

	tok, err := auth.IssueToken(1, secret, -time.Second)
	require.NoError(t, err)

	_, err = auth.UserIDFromToken(tok, secret)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestWrongSecret(t *testing.T) {
	tok, err := auth.IssueToken(1, []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = auth.UserIDFromToken(tok, []byte("wrong"))
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	_, err := auth.UserIDFromToken("not-a-jwt", []byte("secret"))
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour)

	token, err := manager.Issue("budi@example.com", "ADMIN", "Budi")
	require.NoError(t, err)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", claims.Email())
	assert.Equal(t, "Budi", claims.Name)
	assert.True(t, claims.IsAdmin())
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).Issue("budi@example.com", "USER", "Budi")
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	token, err := NewTokenManager("secret", -time.Minute).Issue("budi@example.com", "USER", "Budi")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIsAdminCaseInsensitive(t *testing.T) {
	claims := &Claims{Role: "admin"}
	assert.True(t, claims.IsAdmin())

	claims = &Claims{Role: "USER"}
	assert.False(t, claims.IsAdmin())
}

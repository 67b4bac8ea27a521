package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-do-not-use",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "campus-bridge-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := newTestManager()

	token, jti, err := manager.GenerateAccessToken(42, "hr@acme.test", "company", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "hr@acme.test", claims.Email)
	assert.Equal(t, "company", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "campus-bridge-test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := newTestManager()
	other := NewJWTManager(JWTConfig{
		Secret: "different-secret",
		Expiry: time.Hour,
		Issuer: "campus-bridge-test",
	})

	token, _, err := manager.GenerateAccessToken(1, "a@b.test", "company", 0)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret: "test-secret-do-not-use",
		Expiry: -time.Minute, // already expired
		Issuer: "campus-bridge-test",
	})

	token, _, err := manager.GenerateAccessToken(1, "a@b.test", "company", 0)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshAccessTokenRequiresRefreshType(t *testing.T) {
	manager := newTestManager()

	access, _, err := manager.GenerateAccessToken(1, "a@b.test", "company", 0)
	require.NoError(t, err)

	_, _, err = manager.RefreshAccessToken(access, 0)
	assert.ErrorIs(t, err, ErrInvalidToken, "an access token cannot be used to refresh")

	refresh, _, err := manager.GenerateRefreshToken(1, "a@b.test", "company", 0)
	require.NoError(t, err)

	newAccess, jti, err := manager.RefreshAccessToken(refresh, 0)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}

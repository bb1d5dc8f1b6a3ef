package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestGenerateToken(t *testing.T) {
	t.Run("Successfully generate token", func(t *testing.T) {
		token, err := GenerateToken(1, "user@example.com", "user", testSecret, true)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Fail with empty secret", func(t *testing.T) {
		token, err := GenerateToken(1, "user@example.com", "user", "", true)

		assert.Error(t, err)
		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Empty(t, token)
	})

	t.Run("Token contains correct claims", func(t *testing.T) {
		token, err := GenerateToken(42, "provider@example.com", "admin", testSecret, true)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "provider@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		assert.True(t, claims.EmailVerified)
	})

	t.Run("Unverified email claim survives round trip", func(t *testing.T) {
		token, err := GenerateToken(7, "new@example.com", "user", testSecret, false)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)
		assert.False(t, claims.EmailVerified)
	})

	t.Run("Token expires after TTL", func(t *testing.T) {
		token, err := GenerateToken(1, "user@example.com", "user", testSecret, true)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		expectedExpiry := time.Now().Add(AccessTokenTTL)
		diff := claims.ExpiresAt.Time.Sub(expectedExpiry).Abs()
		assert.Less(t, diff, 2*time.Second)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Successfully validate valid token", func(t *testing.T) {
		token, _ := GenerateToken(100, "test@example.com", "admin", testSecret, true)

		claims, err := ValidateToken(token, testSecret)

		assert.NoError(t, err)
		assert.Equal(t, 100, claims.UserID)
	})

	t.Run("Fail with empty secret", func(t *testing.T) {
		token, _ := GenerateToken(100, "test@example.com", "admin", testSecret, true)

		claims, err := ValidateToken(token, "")

		assert.Error(t, err)
		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Nil(t, claims)
	})

	t.Run("Fail with wrong secret", func(t *testing.T) {
		token, _ := GenerateToken(100, "test@example.com", "admin", testSecret, true)

		claims, err := ValidateToken(token, "wrong-secret")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Fail with invalid token format", func(t *testing.T) {
		claims, err := ValidateToken("invalid.token.format", testSecret)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Fail with empty token", func(t *testing.T) {
		claims, err := ValidateToken("", testSecret)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

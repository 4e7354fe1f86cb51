package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewJWTService("test-secret")

	pair, err := svc.GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := NewJWTService("secret-a").GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	pair, err := svc.GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)

	// Only refresh tokens may mint a new pair.
	_, err = svc.RefreshToken(pair.AccessToken)
	assert.Error(t, err)

	newPair, err := svc.RefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
}

func TestExtractUserID(t *testing.T) {
	svc := NewJWTService("test-secret")

	pair, err := svc.GenerateTokenPair("user-42", "user@example.com")
	require.NoError(t, err)

	userID, err := svc.ExtractUserID(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

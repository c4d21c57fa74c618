package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing"

func TestHashAndCheckPassword(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	hash, err := svc.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, svc.CheckPasswordHash("password123", hash))
	assert.Error(t, svc.CheckPasswordHash("wrong-password", hash))
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	token, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidateToken_Idempotent(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	token, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	first, err := svc.ValidateToken(token)
	require.NoError(t, err)
	second, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewAuthService(testSecret, -time.Hour)

	token, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	other := NewAuthService("a-completely-different-secret", time.Hour)
	token, err := other.GenerateToken("user-123")
	require.NoError(t, err)

	svc := NewAuthService(testSecret, time.Hour)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := NewAuthService(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt-token"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "four segments", token: "aaaa.bbbb.cccc.dddd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestValidateToken_MissingClaim(t *testing.T) {
	// Well-signed token whose payload carries no user identity.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := NewAuthService(testSecret, time.Hour)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestValidateToken_SecretNotConfigured(t *testing.T) {
	svc := NewAuthService("", time.Hour)

	_, err := svc.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestGenerateToken_SecretNotConfigured(t *testing.T) {
	svc := NewAuthService("", time.Hour)

	_, err := svc.GenerateToken("user-123")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

package auth

import (
	"testing"
	"time"

	"github.com/glossary/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "glossary-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:    "user_1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		Admin:     true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID())
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.Admin)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Positive(t, claims.GetRemainingTTL())
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: "user_1"})
	require.NoError(t, err)

	// refresh secret defaults to the access secret, so only the type check
	// rejects this token
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-signing-key!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "glossary-test",
	})

	pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: "user_1"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RequiresSubject(t *testing.T) {
	svc := newTestService()
	_, err := svc.GenerateTokenPair(GenerateTokenInput{})
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: "user_1", Email: "ada@example.com"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, GenerateTokenInput{Email: "ada@example.com"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID())

	_, err = svc.RefreshTokenPair(pair.AccessToken, GenerateTokenInput{})
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingflex/internal/domain"
	apperrors "kingflex/internal/errors"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate(&domain.User{
		ID:    7,
		Email: "jordan@example.test",
		Role:  domain.UserRoleAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jordan@example.test", claims.Email)
	assert.Equal(t, domain.UserRoleAdmin, claims.Role)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate(&domain.User{ID: 1, Email: "a@example.test", Role: domain.UserRoleUser})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(&domain.User{ID: 1, Email: "a@example.test", Role: domain.UserRoleUser})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	require.Error(t, err)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

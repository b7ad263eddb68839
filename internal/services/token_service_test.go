package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/models"
)

const testJWTSecret = "test-secret-key-at-least-32-characters"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	svc, err := NewTokenService(testJWTSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func testTokenUser() *models.User {
	return &models.User{
		ID:    1,
		Email: "alice@example.com",
		Role:  constants.RoleUser,
	}
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("too-short", time.Hour, time.Hour)
	require.Error(t, err)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	user := testTokenUser()

	token, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Subject)
	assert.Equal(t, constants.RoleUser, claims.Role)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueRefreshToken(testTokenUser())
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestTokenService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestTokenService(t)
	user := testTokenUser()

	accessToken, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := newTestTokenService(t)

	// Issue in the past, validate at the present.
	svc.timeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.IssueAccessToken(testTokenUser())
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken(testTokenUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewTokenService("another-secret-key-that-is-32-chars!", time.Hour, time.Hour)
	require.NoError(t, err)

	token, err := other.IssueAccessToken(testTokenUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateAccessToken(input)
		assert.Error(t, err, "input %q", input)
	}
}

package service

import (
	"testing"
	"time"

	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	authconstant "github.com/Tanimou/user-management-system-sub001/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService("secret-key", 15*time.Minute, 7*24*time.Hour)

	assert.NotNil(t, ts)
	assert.Equal(t, "secret-key", ts.Secret)
	assert.Equal(t, 15*time.Minute, ts.GetAccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, ts.GetRefreshTokenTTL())
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("secret-key", 15*time.Minute, 7*24*time.Hour)

	token, err := ts.GenerateAccessToken("user-42", "user@example.com", []string{"user", "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"user", "admin"}, claims.Roles)
	assert.Contains(t, claims.Audience, authconstant.AccessTokenAudience)
	assert.Equal(t, authconstant.TokenIssuer, claims.Issuer)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	ts := NewTokenService("secret-key", 15*time.Minute, 7*24*time.Hour)

	token, err := ts.GenerateRefreshToken("user-42")
	require.NoError(t, err)

	claims, err := ts.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Contains(t, claims.Audience, authconstant.RefreshTokenAudience)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_RefreshTokensAreUnique(t *testing.T) {
	ts := NewTokenService("secret-key", 15*time.Minute, 7*24*time.Hour)

	first, err := ts.GenerateRefreshToken("user-42")
	require.NoError(t, err)
	second, err := ts.GenerateRefreshToken("user-42")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	ts := NewTokenService("secret-key", -time.Minute, -time.Minute)

	accessToken, err := ts.GenerateAccessToken("user-42", "user@example.com", nil)
	require.NoError(t, err)
	refreshToken, err := ts.GenerateRefreshToken("user-42")
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, autherror.ErrExpiredToken)

	_, err = ts.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, autherror.ErrExpiredToken)
}

func TestTokenService_MalformedToken(t *testing.T) {
	ts := NewTokenService("secret-key", 15*time.Minute, 7*24*time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := ts.VerifyAccessToken("not.a.token")
		assert.ErrorIs(t, err, autherror.ErrMalformedToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ts.VerifyRefreshToken("")
		assert.ErrorIs(t, err, autherror.ErrMalformedToken)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		other := NewTokenService("different-secret", 15*time.Minute, 7*24*time.Hour)
		token, err := other.GenerateAccessToken("user-42", "user@example.com", nil)
		require.NoError(t, err)

		_, err = ts.VerifyAccessToken(token)
		assert.ErrorIs(t, err, autherror.ErrMalformedToken)
	})
}

// A refresh token must never be accepted where an access token is
// expected, and vice versa. The audience claim enforces the split.
func TestTokenService_WrongAudience(t *testing.T) {
	ts := NewTokenService("secret-key", 15*time.Minute, 7*24*time.Hour)

	accessToken, err := ts.GenerateAccessToken("user-42", "user@example.com", nil)
	require.NoError(t, err)
	refreshToken, err := ts.GenerateRefreshToken("user-42")
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, autherror.ErrWrongAudience)

	_, err = ts.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, autherror.ErrWrongAudience)
}

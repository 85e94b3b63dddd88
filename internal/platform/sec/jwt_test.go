// Copyright (c) 2026 VidShare. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", "vidshare.test")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_Misconfiguration ensures empty or shared secrets are
rejected at construction time.
*/
func TestNewTokenService_Misconfiguration(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
	}{
		{"empty_access", "", "r"},
		{"empty_refresh", "a", ""},
		{"identical_secrets", "same", "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.accessSecret, tt.refreshSecret, "iss")
			assert.Error(t, err)
		})
	}
}

/*
TestAccessToken_RoundTrip verifies that a freshly issued access token
carries the expected claims.
*/
func TestAccessToken_RoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken("user-1", "alice", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "vidshare.test", claims.Issuer)
}

/*
TestAccessToken_Rejections covers the three mandatory failure modes:
wrong secret, past expiry, and malformed input.
*/
func TestAccessToken_Rejections(t *testing.T) {
	service := newTokenService(t)

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("completely-different", "refresh-secret-for-tests", "vidshare.test")
		require.NoError(t, err)

		token, err := other.GenerateAccessToken("user-1", "alice", 15*time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-1", "alice", -1*time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := service.VerifyAccessToken("not.a.jwt")
		assert.Error(t, err)
	})
}

/*
TestTokenTypes_AreNotInterchangeable ensures the dual-secret scheme holds:
a refresh token never verifies as an access token and vice versa.
*/
func TestTokenTypes_AreNotInterchangeable(t *testing.T) {
	service := newTokenService(t)

	refreshToken, err := service.GenerateRefreshToken("user-1", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	accessToken, err := service.GenerateAccessToken("user-1", "alice", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
}

/*
TestRefreshToken_RoundTrip verifies subject extraction from refresh tokens.
*/
func TestRefreshToken_RoundTrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateRefreshToken("user-42", 24*time.Hour)
	require.NoError(t, err)

	userID, err := service.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

/*
TestTokens_AreUniquePerIssuance ensures every issued credential is a distinct
string even when minted back-to-back within the same second. Refresh rotation
relies on this: if two consecutive refresh tokens could collide, the stored
credential would be "swapped" for itself and the consumed token would stay
redeemable.
*/
func TestTokens_AreUniquePerIssuance(t *testing.T) {
	service := newTokenService(t)

	seenRefresh := map[string]bool{}
	seenAccess := map[string]bool{}

	for i := 0; i < 50; i++ {
		refreshToken, err := service.GenerateRefreshToken("user-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, seenRefresh[refreshToken], "refresh token issued twice")
		seenRefresh[refreshToken] = true

		accessToken, err := service.GenerateAccessToken("user-1", "alice", time.Hour)
		require.NoError(t, err)
		assert.False(t, seenAccess[accessToken], "access token issued twice")
		seenAccess[accessToken] = true
	}
}

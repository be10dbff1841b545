// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiphamduc/streamora/internal/platform/sec"
)

func newTestSigner(t *testing.T, accessTTL, refreshTTL time.Duration) *sec.TokenSigner {
	t.Helper()

	signer, err := sec.NewTokenSigner("access-secret-for-tests", "refresh-secret-for-tests", "streamora.test", accessTTL, refreshTTL)
	require.NoError(t, err)
	return signer
}

/*
TestTokenSigner_AccessRoundtrip verifies that a freshly signed access token
verifies back to the original subject.
*/
func TestTokenSigner_AccessRoundtrip(t *testing.T) {
	signer := newTestSigner(t, 15*time.Minute, 24*time.Hour)

	token, err := signer.SignAccessToken("user-123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
}

/*
TestTokenSigner_RefreshRoundtrip verifies the refresh token family.
*/
func TestTokenSigner_RefreshRoundtrip(t *testing.T) {
	signer := newTestSigner(t, 15*time.Minute, 24*time.Hour)

	token, err := signer.SignRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := signer.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}

/*
TestTokenSigner_KeySeparation ensures a refresh token is never accepted as
an access token and vice versa.
*/
func TestTokenSigner_KeySeparation(t *testing.T) {
	signer := newTestSigner(t, 15*time.Minute, 24*time.Hour)

	refreshToken, err := signer.SignRefreshToken("user-123")
	require.NoError(t, err)
	_, err = signer.VerifyAccessToken(refreshToken)
	assert.Error(t, err)

	accessToken, err := signer.SignAccessToken("user-123", "alice")
	require.NoError(t, err)
	_, err = signer.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
}

/*
TestTokenSigner_Expiry ensures expired tokens fail verification.
*/
func TestTokenSigner_Expiry(t *testing.T) {
	signer := newTestSigner(t, -1*time.Minute, -1*time.Minute)

	accessToken, err := signer.SignAccessToken("user-123", "alice")
	require.NoError(t, err)
	_, err = signer.VerifyAccessToken(accessToken)
	assert.Error(t, err)

	refreshToken, err := signer.SignRefreshToken("user-123")
	require.NoError(t, err)
	_, err = signer.VerifyRefreshToken(refreshToken)
	assert.Error(t, err)
}

/*
TestTokenSigner_Garbage ensures malformed input is rejected.
*/
func TestTokenSigner_Garbage(t *testing.T) {
	signer := newTestSigner(t, 15*time.Minute, 24*time.Hour)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := signer.VerifyAccessToken(input)
		assert.Error(t, err)
	}
}

/*
TestNewTokenSigner_Validation rejects missing or shared secrets.
*/
func TestNewTokenSigner_Validation(t *testing.T) {
	_, err := sec.NewTokenSigner("", "refresh", "iss", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenSigner("same", "same", "iss", time.Minute, time.Hour)
	assert.Error(t, err)
}

/*
TestPasswordHash_Roundtrip covers bcrypt hash and comparison.
*/
func TestPasswordHash_Roundtrip(t *testing.T) {
	hash, err := sec.HashPassword("Secret1!")
	require.NoError(t, err)
	require.NotEqual(t, "Secret1!", hash)

	assert.True(t, sec.CheckPasswordHash("Secret1!", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

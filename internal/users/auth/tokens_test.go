// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/sec"
	"github.com/haiphamduc/streamora/internal/users/auth"
	"github.com/haiphamduc/streamora/pkg/uuidv7"
)

// newTestSigner creates a signer with distinct test secrets.
func newTestSigner(t *testing.T) *sec.TokenSigner {
	t.Helper()

	signer, err := sec.NewTokenSigner(
		"test-access-secret-0123456789",
		"test-refresh-secret-0123456789",
		"streamora.test",
		15*time.Minute,
		720*time.Hour,
	)
	require.NoError(t, err)

	return signer
}

// seedUser inserts an account directly into the fake repository.
func seedUser(t *testing.T, repo *memoryUserRepository) *auth.User {
	t.Helper()

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Example",
		AvatarURL: "https://cdn.streamora.test/avatars/alice.png",
	}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

/*
TestTokenService_IssueAndVerify checks the happy path: a freshly issued access
token verifies back to the same user, and the refresh token lands in the
session slot.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	repo := newMemoryUserRepository()
	service := auth.NewTokenService(newTestSigner(t), repo)
	user := seedUser(t, repo)

	pair, err := service.IssueTokenPair(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// 1. Access token round-trips to the original subject
	claims, err := service.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)

	// 2. Refresh token is stored verbatim in the session slot
	assert.Equal(t, pair.RefreshToken, repo.storedRefreshToken(user.ID))
}

/*
TestTokenService_RotationIsSingleUse verifies that a rotated-out refresh token
is permanently dead: the second presentation fails as stale.
*/
func TestTokenService_RotationIsSingleUse(t *testing.T) {
	repo := newMemoryUserRepository()
	service := auth.NewTokenService(newTestSigner(t), repo)
	user := seedUser(t, repo)

	first, err := service.IssueTokenPair(context.Background(), user)
	require.NoError(t, err)

	// 1. First rotation succeeds and produces a different pair
	rotatedUser, second, err := service.VerifyAndRotateRefresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, rotatedUser.ID)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, second.RefreshToken, repo.storedRefreshToken(user.ID))

	// 2. Replaying the retired token fails with a generic 401, stale cause attached
	_, _, err = service.VerifyAndRotateRefresh(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrTokenStale)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestTokenService_RevokeInvalidatesRefresh verifies logout semantics: an empty
session slot rejects every previously issued refresh token.
*/
func TestTokenService_RevokeInvalidatesRefresh(t *testing.T) {
	repo := newMemoryUserRepository()
	service := auth.NewTokenService(newTestSigner(t), repo)
	user := seedUser(t, repo)

	pair, err := service.IssueTokenPair(context.Background(), user)
	require.NoError(t, err)

	require.NoError(t, service.Revoke(context.Background(), user.ID))
	assert.Empty(t, repo.storedRefreshToken(user.ID))

	_, _, err = service.VerifyAndRotateRefresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestTokenService_IssueIsAtomic verifies that a failed slot write leaks no
tokens: the caller receives only the error and the slot is unchanged.
*/
func TestTokenService_IssueIsAtomic(t *testing.T) {
	repo := newMemoryUserRepository()
	service := auth.NewTokenService(newTestSigner(t), repo)
	user := seedUser(t, repo)

	repo.failWrites = true

	pair, err := service.IssueTokenPair(context.Background(), user)
	require.Error(t, err)
	assert.Nil(t, pair)
	assert.Empty(t, repo.storedRefreshToken(user.ID))

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 500, appError.HTTPStatus)
}

/*
TestTokenService_RejectsCrossFamilyTokens verifies key separation: an access
token can never be exchanged as a refresh token.
*/
func TestTokenService_RejectsCrossFamilyTokens(t *testing.T) {
	repo := newMemoryUserRepository()
	service := auth.NewTokenService(newTestSigner(t), repo)
	user := seedUser(t, repo)

	pair, err := service.IssueTokenPair(context.Background(), user)
	require.NoError(t, err)

	_, _, err = service.VerifyAndRotateRefresh(context.Background(), pair.AccessToken)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestTokenService_LoadIdentity verifies the sanitized projection used by the
session middleware.
*/
func TestTokenService_LoadIdentity(t *testing.T) {
	repo := newMemoryUserRepository()
	service := auth.NewTokenService(newTestSigner(t), repo)
	user := seedUser(t, repo)

	identity, err := service.LoadIdentity(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, user.Username, identity.Username)
	assert.Equal(t, user.Email, identity.Email)

	// Unknown subjects surface as NotFound for the middleware to map to 401.
	_, err = service.LoadIdentity(context.Background(), uuidv7.New())
	assert.True(t, apperr.IsNotFound(err))
}

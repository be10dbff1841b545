// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/sec"
)

// # Session Lifecycle

// Sentinel causes attached to 401 responses for refresh failures.
//
// Clients see the same generic Unauthorized either way; these sentinels exist
// so server-side logs can distinguish a logout race from token reuse.
var (
	// ErrTokenRevoked marks a refresh attempt against an empty session slot.
	ErrTokenRevoked = errors.New("auth: refresh token has been revoked")

	// ErrTokenStale marks a refresh token that was valid once but has since
	// been rotated out of the session slot (single-use violation).
	ErrTokenStale = errors.New("auth: refresh token is stale")
)

// TokenPair is the access/refresh credential pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService issues, verifies, and rotates the JWT session credentials.
//
// # Invariants
//
//   - A token pair is only handed out after the refresh token has been
//     durably stored in the account's session slot.
//   - Each refresh token is single-use: rotation overwrites the slot, so a
//     replayed token fails the slot comparison.
type TokenService struct {
	signer *sec.TokenSigner
	users  UserRepository
}

// NewTokenService constructs a [TokenService].
func NewTokenService(signer *sec.TokenSigner, users UserRepository) *TokenService {
	return &TokenService{signer: signer, users: users}
}

// AccessTTL returns the configured access token lifetime (for cookie expiry).
func (service *TokenService) AccessTTL() time.Duration { return service.signer.AccessTTL() }

// RefreshTTL returns the configured refresh token lifetime (for cookie expiry).
func (service *TokenService) RefreshTTL() time.Duration { return service.signer.RefreshTTL() }

/*
IssueTokenPair creates a fresh access/refresh pair and stores the refresh half.

Description: Signs both JWTs, then persists the refresh token into the user's
session slot. If the store write fails, NO tokens are returned: a pair the
server cannot later verify against the slot must never reach a client.

Parameters:
  - context: context.Context
  - user: *User (The authenticated account)

Returns:
  - *TokenPair: Signed credentials
  - error: Signing or persistence failures
*/
func (service *TokenService) IssueTokenPair(context context.Context, user *User) (*TokenPair, error) {
	accessToken, err := service.signer.SignAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := service.signer.SignRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.users.UpdateRefreshToken(context, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

/*
VerifyAccessToken validates an access token string and returns its claims.

Delegates to the signer; exposed on the service so the HTTP layer depends on a
single session authority.
*/
func (service *TokenService) VerifyAccessToken(tokenStr string) (*sec.AccessClaims, error) {
	return service.signer.VerifyAccessToken(tokenStr)
}

/*
VerifyAndRotateRefresh exchanges a presented refresh token for a new pair.

Description: The token must pass BOTH checks: a valid signature/expiry, and an
exact match against the account's stored session slot. An empty slot means the
user logged out ([ErrTokenRevoked]); a mismatched slot means the token was
already rotated ([ErrTokenStale]). Every failure surfaces to clients as the
same generic 401, with the precise cause preserved in the error chain for
audit logs.

On success the slot is overwritten with the new refresh token, retiring the
presented one.

Parameters:
  - context: context.Context
  - presented: string (Refresh JWT from cookie or request body)

Returns:
  - *User: The account the session belongs to
  - *TokenPair: Fresh credentials
  - error: apperr.Unauthorized with the audit cause attached
*/
func (service *TokenService) VerifyAndRotateRefresh(context context.Context, presented string) (*User, *TokenPair, error) {
	invalid := apperr.Unauthorized("Invalid or expired refresh token")

	claims, err := service.signer.VerifyRefreshToken(presented)
	if err != nil {
		return nil, nil, invalid.WithCause(err)
	}

	user, err := service.users.FindByID(context, claims.Subject)
	if err != nil {
		if apperr.IsNotFound(err) {
			// Account deleted after the token was issued.
			return nil, nil, invalid.WithCause(err)
		}
		return nil, nil, err
	}

	switch {
	case user.RefreshToken == "":
		return nil, nil, invalid.WithCause(ErrTokenRevoked)
	case user.RefreshToken != presented:
		return nil, nil, invalid.WithCause(ErrTokenStale)
	}

	pair, err := service.IssueTokenPair(context, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

/*
Revoke empties the account's session slot, ending the active session.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (service *TokenService) Revoke(context context.Context, userID string) error {
	return service.users.ClearRefreshToken(context, userID)
}

/*
LoadIdentity resolves a verified user ID into its sanitized projection.

Implements the session middleware's identity loader contract.

Parameters:
  - context: context.Context
  - userID: string (Subject of a verified access token)

Returns:
  - *sec.Identity: Credential-free account view
  - error: apperr.NotFound or database errors
*/
func (service *TokenService) LoadIdentity(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return user.Identity(), nil
}

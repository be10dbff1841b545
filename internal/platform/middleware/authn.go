// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/constants"
	"github.com/haiphamduc/streamora/internal/platform/ctxutil"
	"github.com/haiphamduc/streamora/internal/platform/respond"
	"github.com/haiphamduc/streamora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token signer
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AccessClaims, error)
}

// IdentityLoader resolves a verified user ID into its sanitized projection.
//
// The loaded [sec.Identity] never contains credential fields, so everything
// downstream of the middleware works with a safe view of the account.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the access token on an incoming request.
//
// # Flow
//  1. Look for the 'access_token' cookie; fall back to
//     'Authorization: Bearer <token>'. The cookie wins when both are present.
//  2. If absent, the request proceeds as anonymous ([RequireAuth] rejects it
//     later on protected routes).
//  3. If present, verify the JWT via [TokenVerifier]. Expired and malformed
//     tokens are rejected identically.
//  4. Resolve the subject to a sanitized [sec.Identity] and inject it into
//     the request context for downstream handlers.
//
// The middleware never mutates tokens; rotation happens only in the refresh
// endpoint.
func Authenticate(verifier TokenVerifier, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenStr, found := extractAccessToken(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if !found {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired access token").WithCause(err))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			identity, err := loader.LoadIdentity(request.Context(), claims.UserID)
			if err != nil {
				// The account may have been removed after the token was issued.
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired access token").WithCause(err))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			// Report the identity back to the request logger upstream so the
			// finished-request entry carries user_id.
			if capture, ok := request.Context().Value(identityCaptureKey{}).(*identityCapture); ok {
				capture.identity = identity
			}
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// extractAccessToken locates the bearer credential on the request.
//
// The cookie takes precedence over the Authorization header. A malformed
// Authorization header counts as "present but invalid" rather than absent, so
// it fails verification instead of silently becoming anonymous.
func extractAccessToken(request *http.Request) (token string, found bool) {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true
	}

	return strings.TrimSpace(parts[1]), true
}

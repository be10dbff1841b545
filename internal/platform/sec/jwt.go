// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces defined on the consumer side.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/haiphamduc/streamora/pkg/uuidv7"
)

// AccessClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID and Username directly inside the JWT, the session
// middleware can authenticate a request WITHOUT querying the database for the
// credential record itself. Only the sanitized profile projection is loaded.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// RefreshClaims represents the payload of a JWT Refresh Token.
//
// Refresh tokens carry only registered claims. Everything else needed to decide
// whether the token is still live comes from the single stored slot on the
// user record, which is the source of truth for revocation.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies the two JWT families used by the platform.
//
// # Key Separation
//
// Access and refresh tokens are signed with DISTINCT secrets so that a
// refresh token can never be replayed as an access token (and vice versa):
// verification against the wrong secret fails the signature check.
type TokenSigner struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenSigner creates a TokenSigner with HS256 secrets and per-family TTLs.
func NewTokenSigner(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenSigner, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("sec: access and refresh secrets must differ")
	}

	return &TokenSigner{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL returns the configured lifetime of access tokens.
func (signer *TokenSigner) AccessTTL() time.Duration { return signer.accessTTL }

// RefreshTTL returns the configured lifetime of refresh tokens.
func (signer *TokenSigner) RefreshTTL() time.Duration { return signer.refreshTTL }

// SignAccessToken creates a new short-lived JWT access token for a user.
func (signer *TokenSigner) SignAccessToken(userID, username string) (string, error) {
	currentTime := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuidv7.New(),
			Subject:   userID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(signer.accessTTL)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// SignRefreshToken creates a new long-lived JWT refresh token for a user.
func (signer *TokenSigner) SignRefreshToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique jti: consecutive tokens for the same user must never be
			// byte-identical, or rotation could not retire the predecessor.
			ID:        uuidv7.New(),
			Subject:   userID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(signer.refreshTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// VerifyAccessToken checks the signature and validity of an access token string.
//
// Missing, malformed, expired and badly-signed tokens all fail the same way.
// Callers must not distinguish between these cases towards clients.
func (signer *TokenSigner) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.accessSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid access token: %w", err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid access token claims")
	}

	return claims, nil
}

// VerifyRefreshToken checks the signature and validity of a refresh token string.
func (signer *TokenSigner) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return signer.refreshSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid refresh token claims")
	}

	return claims, nil
}

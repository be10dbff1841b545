// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core account entity plus the logic for registration, login,
token rotation, and credential changes.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
transport dependencies and encapsulates all business rules related to user
identity.
*/
package auth

import (
	"time"

	"github.com/haiphamduc/streamora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Streamora platform.
//
// # Sessions
//
// The RefreshToken field is the single session slot for the account: it holds
// the one currently-valid refresh token (or empty for "logged out"). Issuing a
// new pair overwrites it, which is what makes every refresh token single-use.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Explicitly omitted from JSON for security.
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	RefreshToken  string    `json:"-"` // Session slot. Omitted for security.
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Identity returns the sanitized projection of the account used by the
// session middleware and every API response body.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		CoverImageURL: user.CoverImageURL,
		CreatedAt:     user.CreatedAt,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullName     = "fullname"
	FieldLogin        = "login"
	FieldOldPassword  = "oldPassword"
	FieldNewPassword  = "newPassword"
	FieldRefreshToken = "refreshToken"
	FieldAccessToken  = "accessToken"
	FieldUser         = "user"
)

// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package sec

import "time"

// Identity is the sanitized user projection attached to authenticated requests.
//
// # Sanitization
//
// Credential fields (password hash, refresh token) are never part of this
// struct, so nothing downstream of the session middleware can leak them.
type Identity struct {
	UserID        string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

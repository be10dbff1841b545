// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth

// # Authentication Constraints

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxFullNameLength bounds the display name shown on channels.
	MaxFullNameLength = 80
)

// # Object Storage Layout

const (
	// AvatarKeyPrefix is the bucket folder for avatar images.
	AvatarKeyPrefix = "avatars/"

	// CoverImageKeyPrefix is the bucket folder for channel cover images.
	CoverImageKeyPrefix = "covers/"
)

// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

/*
Package account handles the authenticated member's own profile management.

It provides the self-service operations: reading the current identity,
updating profile fields, and replacing the avatar or channel cover image.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Boundary: These paths can never mutate the password hash or the session
    slot; credential changes live exclusively in the auth package.
*/
package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence subset needed for profile updates.
//
// The Postgres user repository in the auth package satisfies this contract.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update persists mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: apperr.Conflict (duplicate email) or persistence failures
	*/
	Update(context context.Context, user *auth.User) error
}

// # Service Layer

// Service orchestrates self-service profile updates.
type Service struct {
	accounts AccountRepository
	storage  auth.Uploader
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accounts AccountRepository, storage auth.Uploader, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		storage:  storage,
		logger:   logger,
	}
}

// # Profile Management

// UpdateProfileInput defines the mutable profile fields.
type UpdateProfileInput struct {
	FullName string
	Email    string
}

/*
UpdateProfile replaces the member's display name and email.

Description: Fetches the current account state, applies the new values, and
persists. Email uniqueness is enforced by the storage layer; a duplicate
surfaces as a Conflict.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated profile
  - error: apperr.NotFound, apperr.Conflict, or persistence failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(input.FullName)
	user.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := service.accounts.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

/*
UpdateAvatar replaces the member's avatar image.

Description: Uploads the new image FIRST, then persists the returned URL. A
failed upload leaves the profile untouched; the previous object stays live in
the bucket until garbage collection.

Parameters:
  - context: context.Context
  - userID: string
  - image: *auth.ImageFile

Returns:
  - *auth.User: The updated profile
  - error: Upload, apperr.NotFound, or persistence failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID string, image *auth.ImageFile) (*auth.User, error) {
	return service.updateImage(context, userID, image, auth.AvatarKeyPrefix, func(user *auth.User, url string) {
		user.AvatarURL = url
	})
}

/*
UpdateCoverImage replaces the member's channel cover image.

Parameters:
  - context: context.Context
  - userID: string
  - image: *auth.ImageFile

Returns:
  - *auth.User: The updated profile
  - error: Upload, apperr.NotFound, or persistence failures
*/
func (service *Service) UpdateCoverImage(context context.Context, userID string, image *auth.ImageFile) (*auth.User, error) {
	return service.updateImage(context, userID, image, auth.CoverImageKeyPrefix, func(user *auth.User, url string) {
		user.CoverImageURL = url
	})
}

// updateImage is the shared upload-then-persist path for both image slots.
func (service *Service) updateImage(
	context context.Context,
	userID string,
	image *auth.ImageFile,
	keyPrefix string,
	apply func(*auth.User, string),
) (*auth.User, error) {
	user, err := service.accounts.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	url, err := service.storage.Upload(context, auth.ImageKey(keyPrefix, image), image.ContentType, image.Data)
	if err != nil {
		return nil, apperr.Persistence("profile image upload", err)
	}

	apply(user, url)

	if err := service.accounts.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_image_updated",
		slog.String("user_id", userID),
		slog.String("slot", keyPrefix),
	)

	return user, nil
}

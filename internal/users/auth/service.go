// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/sec"
	"github.com/haiphamduc/streamora/pkg/handle"
	"github.com/haiphamduc/streamora/pkg/uuidv7"
)

// # Contracts & Types

// Uploader defines the object storage contract for profile media.
//
// Implementations return the public URL of the stored object. Uploads are
// awaited synchronously: a URL is only persisted after the object is durable.
type Uploader interface {
	Upload(context context.Context, key, contentType string, data []byte) (string, error)
}

// ImageFile is a buffered image upload handed from the delivery layer.
type ImageFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Service implements user account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any change to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	users   UserRepository
	tokens  *TokenService
	storage Uploader
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, tokens *TokenService, storage Uploader) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		storage: storage,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
//
// Avatar is mandatory; CoverImage may be nil.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	Avatar     *ImageFile
	CoverImage *ImageFile
}

/*
Register validates, hashes, uploads, and persists a brand new user account.

Description: Canonicalizes the username into its handle form, rejects
duplicate identities, stores the profile images, and only then creates the
account row. The avatar upload happens BEFORE the insert so the record never
exists without its mandatory image.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (credential fields still populated; callers must
    respond with the sanitized projection)
  - error: apperr.Conflict, apperr.ValidationError, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := handle.Canonical(input.Username)
	if !handle.IsValid(username) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldUsername,
			Message: "Must be 3-30 characters: lowercase letters, digits, underscores, hyphens",
		})
	}
	if input.Avatar == nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "avatar",
			Message: "An avatar image is required",
		})
	}

	// Identity uniqueness. The database unique indexes are the real guard;
	// these lookups exist to produce friendly per-field conflicts.
	if err := service.ensureAvailable(context, username, input.Email); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	avatarURL, err := service.storage.Upload(context,
		ImageKey(AvatarKeyPrefix, input.Avatar), input.Avatar.ContentType, input.Avatar.Data)
	if err != nil {
		return nil, apperr.Persistence("avatar upload", err)
	}

	coverImageURL := ""
	if input.CoverImage != nil {
		coverImageURL, err = service.storage.Upload(context,
			ImageKey(CoverImageKeyPrefix, input.CoverImage), input.CoverImage.ContentType, input.CoverImage.Data)
		if err != nil {
			return nil, apperr.Persistence("cover image upload", err)
		}
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuidv7.New(),
		Username:      username,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:  hashedPassword,
		FullName:      strings.TrimSpace(input.FullName),
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ensureAvailable rejects a registration whose username or email is taken.
func (service *Service) ensureAvailable(context context.Context, username, email string) error {
	if _, err := service.users.FindByUsername(context, username); err == nil {
		return apperr.Conflict("Username is already taken")
	} else if !apperr.IsNotFound(err) {
		return err
	}

	if _, err := service.users.FindByEmail(context, email); err == nil {
		return apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return err
	}

	return nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Username or email.
	Password string
}

/*
Login authenticates a member and establishes a session.

Description: Resolves the account by username or email, verifies the password
hash, and issues a fresh token pair (overwriting the session slot — a login on
a second device invalidates the first device's refresh token).

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *User: The authenticated account
  - *TokenPair: Session credentials
  - error: apperr.NotFound (unknown identifier), apperr.Unauthorized (wrong
    password), or storage errors
*/
func (service *Service) Login(context context.Context, input LoginInput) (*User, *TokenPair, error) {
	user, err := service.users.FindByLogin(context, strings.TrimSpace(input.Login))
	if err != nil {
		return nil, nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, nil, apperr.Unauthorized("Invalid credentials")
	}

	pair, err := service.tokens.IssueTokenPair(context, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

/*
Logout ends the authenticated member's session.

Description: Empties the session slot, which immediately invalidates any
outstanding refresh token. Already-issued access tokens keep working until
they expire; they are stateless by design.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	return service.tokens.Revoke(context, userID)
}

// # Credential Rotation

/*
ChangePassword rotates the member's password after verifying the current one.

Description: The new password flows through the same bcrypt path as
registration. The session slot is left intact: changing a password does not
log the member out of their current session.

Parameters:
  - context: context.Context
  - userID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - error: apperr.Unauthorized (current password mismatch), apperr.NotFound,
    or persistence failures
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	return service.users.UpdatePassword(context, userID, newHash)
}

// # Helpers

// ImageKey derives a collision-free object key for an uploaded image.
//
// The extension comes from the client filename when present, otherwise from
// the sniffed content type. The key body is a fresh UUIDv7 so keys sort by
// upload time in bucket listings.
func ImageKey(prefix string, file *ImageFile) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		switch file.ContentType {
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}

	return prefix + uuidv7.New() + ext
}

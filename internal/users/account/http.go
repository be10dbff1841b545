// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haiphamduc/streamora/internal/platform/constants"
	"github.com/haiphamduc/streamora/internal/platform/middleware"
	requestutil "github.com/haiphamduc/streamora/internal/platform/request"
	"github.com/haiphamduc/streamora/internal/platform/respond"
	"github.com/haiphamduc/streamora/internal/platform/validate"
	"github.com/haiphamduc/streamora/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements the self-service profile HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Mount attaches the profile self-service routes to the users router.
//
// # Endpoints (all authenticated)
//   - GET   /current-user       : Echoes the session identity.
//   - PATCH /update-user        : Replaces fullname and email.
//   - PATCH /update-avatar      : Replaces the avatar image.
//   - PATCH /update-cover-image : Replaces the cover image.
func (handler *Handler) Mount(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/current-user", handler.currentUser)
		r.Patch("/update-user", handler.updateProfile)
		r.Patch("/update-avatar", handler.updateAvatar)
		r.Patch("/update-cover-image", handler.updateCoverImage)
	})
}

// # Request Payloads

type updateProfileRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

// # Handlers

/*
CurrentUser returns the authenticated member's own profile.

GET /api/v1/users/current-user

Description: Echoes the sanitized identity loaded by the session middleware.
No extra database round-trip happens here.

Response:
  - 200: Sanitized user projection
  - 401: Not authenticated
*/
func (handler *Handler) currentUser(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity, "Current user fetched successfully")
}

/*
UpdateProfile replaces the member's display name and email.

PATCH /api/v1/users/update-user

Request:
  - Body: updateProfileRequest (fullname, email — both required)

Response:
  - 200: Updated sanitized user projection
  - 400: Validation failure or duplicate email
  - 401: Not authenticated
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldFullName, input.FullName).
		MaxLen(auth.FieldFullName, input.FullName, auth.MaxFullNameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Identity(), "Profile updated successfully")
}

/*
UpdateAvatar replaces the member's avatar image.

PATCH /api/v1/users/update-avatar

Request:
  - Multipart file: avatar (required)

Response:
  - 200: Updated sanitized user projection
  - 400: Missing file or non-image content
  - 401: Not authenticated
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, constants.FormFieldAvatar, handler.accountService.UpdateAvatar,
		"Avatar updated successfully")
}

/*
UpdateCoverImage replaces the member's channel cover image.

PATCH /api/v1/users/update-cover-image

Request:
  - Multipart file: coverImage (required)

Response:
  - 200: Updated sanitized user projection
  - 400: Missing file or non-image content
  - 401: Not authenticated
*/
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, constants.FormFieldCoverImage, handler.accountService.UpdateCoverImage,
		"Cover image updated successfully")
}

// updateImage is the shared transport path for both single-file image updates.
func (handler *Handler) updateImage(
	writer http.ResponseWriter,
	request *http.Request,
	field string,
	update func(ctx context.Context, userID string, image *auth.ImageFile) (*auth.User, error),
	message string,
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, err := requestutil.FormImage(request, field)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := update(request.Context(), userID, &auth.ImageFile{
		Data:        upload.Data,
		ContentType: upload.ContentType,
		Filename:    upload.Filename,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Identity(), message)
}

// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/constants"
	"github.com/haiphamduc/streamora/internal/platform/middleware"
	requestutil "github.com/haiphamduc/streamora/internal/platform/request"
	"github.com/haiphamduc/streamora/internal/platform/respond"
	"github.com/haiphamduc/streamora/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the session lifecycle HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (registration, login,
// refresh) plus the authenticated session operations (logout, password
// change). Profile reads and updates live in the account handler.
type Handler struct {
	authService  *Service
	tokenService *TokenService
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(service *Service, tokens *TokenService) *Handler {
	return &Handler{authService: service, tokenService: tokens}
}

// Mount attaches the session lifecycle routes to the users router.
//
// # Endpoints
//   - POST /register       : Creates a new account (multipart).
//   - POST /login          : Authenticates and sets session cookies.
//   - POST /refresh-token  : Rotates the refresh token.
//   - GET  /logout         : Ends the session (auth).
//   - POST /change-password: Rotates the credential (auth).
func (handler *Handler) Mount(router chi.Router) {
	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
	})
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	// Older clients send the camelCase variant; both spellings are accepted.
	RefreshTokenCamel string `json:"refreshToken"`
}

// value returns the presented token, preferring the canonical field name.
func (r refreshRequest) value() string {
	if r.RefreshToken != "" {
		return r.RefreshToken
	}
	return r.RefreshTokenCamel
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// # Handlers

/*
Register handles the creation of a new user account.

POST /api/v1/users/register

Description: Accepts a multipart form carrying the profile fields, a mandatory
avatar image, and an optional cover image. Validation failures and duplicate
identities abort before anything is uploaded.

Request:
  - Multipart fields: username, email, password, fullname
  - Files: avatar (required), coverImage (optional)

Response:
  - 201: Sanitized user projection (no credential fields)
  - 400: Validation failure or duplicate username/email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	avatar, err := requestutil.FormImage(request, constants.FormFieldAvatar)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	coverImage, err := requestutil.OptionalFormImage(request, constants.FormFieldCoverImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := request.FormValue(FieldUsername)
	email := request.FormValue(FieldEmail)
	password := request.FormValue(FieldPassword)
	fullName := request.FormValue(FieldFullName)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, MinPasswordLength).
		Required(FieldFullName, fullName).
		MaxLen(FieldFullName, fullName, MaxFullNameLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:   username,
		Email:      email,
		Password:   password,
		FullName:   fullName,
		Avatar:     toImageFile(avatar),
		CoverImage: toImageFile(coverImage),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user.Identity(), "User registered successfully")
}

/*
Login authenticates a member and establishes a session.

POST /api/v1/users/login

Description: Accepts either username or email. On success, both tokens are
set as http-only secure cookies AND returned in the body for non-browser
clients.

Request:
  - Body: loginRequest (username or email, password)

Response:
  - 200: {user, accessToken, refreshToken}
  - 401: Wrong password
  - 404: Unknown username/email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	login := input.Username
	if login == "" {
		login = input.Email
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, login)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, pair, err := handler.authService.Login(request.Context(), LoginInput{
		Login:    login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, pair)

	respond.OK(writer, map[string]any{
		FieldUser:         user.Identity(),
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
	}, "Logged in successfully")
}

/*
Logout terminates the current session.

GET /api/v1/users/logout

Description: Empties the server-side session slot and clears both security
cookies from the client.

Response:
  - 200: Session terminated
  - 401: Not authenticated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)

	respond.OK(writer, map[string]any{}, "Logged out successfully")
}

/*
Refresh exchanges a refresh token for a fresh token pair.

POST /api/v1/users/refresh-token

Description: Reads the refresh token from the cookie, falling back to the
JSON body. The presented token is single-use: on success the session slot is
rotated and the old token becomes permanently invalid.

Request:
  - Cookie: refresh_token, or Body: {"refresh_token": "..."}

Response:
  - 200: {accessToken, refreshToken}
  - 401: Missing, invalid, revoked, or stale refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	presented := handler.extractRefreshToken(request)
	if presented == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	_, pair, err := handler.tokenService.VerifyAndRotateRefresh(request.Context(), presented)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, pair)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  pair.AccessToken,
		FieldRefreshToken: pair.RefreshToken,
	}, "Session refreshed successfully")
}

/*
ChangePassword rotates the authenticated member's password.

POST /api/v1/users/change-password

Description: Verifies the current password before writing the new hash. The
active session remains valid.

Request:
  - Body: changePasswordRequest (oldPassword, newPassword)

Response:
  - 200: Password updated
  - 401: Current password incorrect or not authenticated
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{}, "Password changed successfully")
}

// # Cookie Management

// setSessionCookies attaches both tokens as http-only secure cookies.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, pair *TokenPair) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    pair.AccessToken,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(handler.tokenService.AccessTTL().Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    pair.RefreshToken,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(handler.tokenService.RefreshTTL().Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both session cookies on the client.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.SessionCookiePath,
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// extractRefreshToken locates the refresh token on the request.
// The cookie takes precedence over the JSON body, mirroring access tokens.
func (handler *Handler) extractRefreshToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var input refreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return ""
	}

	return input.value()
}

// toImageFile converts a buffered multipart upload into the service's type.
// Returns nil for an absent optional upload.
func toImageFile(upload *requestutil.ImageUpload) *ImageFile {
	if upload == nil {
		return nil
	}
	return &ImageFile{
		Data:        upload.Data,
		ContentType: upload.ContentType,
		Filename:    upload.Filename,
	}
}

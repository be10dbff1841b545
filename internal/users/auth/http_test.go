// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiphamduc/streamora/internal/platform/middleware"
	"github.com/haiphamduc/streamora/internal/users/account"
	"github.com/haiphamduc/streamora/internal/users/auth"
)

// pngSignature is enough for content sniffing to classify the body as image/png.
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// newTestRouter assembles the users API surface over in-memory collaborators.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	repo := newMemoryUserRepository()
	tokens := auth.NewTokenService(newTestSigner(t), repo)
	authService := auth.NewService(repo, tokens, newMemoryUploader())
	authHandler := auth.NewHandler(authService, tokens)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accountService := account.NewService(repo, newMemoryUploader(), logger)
	accountHandler := account.NewHandler(accountService)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens, tokens))
	router.Route("/api/v1/users", func(users chi.Router) {
		authHandler.Mount(users)
		accountHandler.Mount(users)
	})

	return router
}

// registerForm builds a multipart registration request body.
func registerForm(t *testing.T, username, email, password, fullname string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	require.NoError(t, form.WriteField("username", username))
	require.NoError(t, form.WriteField("email", email))
	require.NoError(t, form.WriteField("password", password))
	require.NoError(t, form.WriteField("fullname", fullname))

	file, err := form.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = file.Write(pngSignature)
	require.NoError(t, err)

	require.NoError(t, form.Close())

	return body, form.FormDataContentType()
}

// decodeData unmarshals the success envelope's data object.
func decodeData(t *testing.T, responseBody *bytes.Buffer) map[string]any {
	t.Helper()

	var envelope struct {
		Status  int            `json:"status"`
		Data    map[string]any `json:"data"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(responseBody.Bytes(), &envelope))

	return envelope.Data
}

/*
TestSessionLifecycle walks the full happy path and the single-use guarantee:
register, login, refresh, then replay the retired refresh token.
*/
func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// ── 1. Register ───────────────────────────────────────────────────────
	body, contentType := registerForm(t, "alice", "alice@x.com", "Secret1!", "Alice Example")
	request := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	created := decodeData(t, recorder.Body)
	assert.Equal(t, "alice", created["username"])
	// The sanitized projection must not leak credential fields.
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "passwordHash")
	assert.NotContains(t, created, "refreshToken")

	// ── 2. Login ──────────────────────────────────────────────────────────
	loginBody, err := json.Marshal(map[string]string{
		"username": "alice",
		"password": "Secret1!",
	})
	require.NoError(t, err)

	request = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(loginBody))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// Both session cookies are set http-only.
	cookies := recorder.Result().Cookies()
	cookieNames := make(map[string]bool, len(cookies))
	for _, cookie := range cookies {
		cookieNames[cookie.Name] = true
		assert.True(t, cookie.HttpOnly, cookie.Name)
		assert.True(t, cookie.Secure, cookie.Name)
	}
	assert.True(t, cookieNames["access_token"])
	assert.True(t, cookieNames["refresh_token"])

	session := decodeData(t, recorder.Body)
	accessToken, _ := session["accessToken"].(string)
	firstRefresh, _ := session["refreshToken"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, firstRefresh)

	// ── 3. Refresh rotates the pair ───────────────────────────────────────
	refreshBody, err := json.Marshal(map[string]string{"refresh_token": firstRefresh})
	require.NoError(t, err)

	request = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", bytes.NewReader(refreshBody))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	rotated := decodeData(t, recorder.Body)
	secondRefresh, _ := rotated["refreshToken"].(string)
	require.NotEmpty(t, secondRefresh)
	assert.NotEqual(t, firstRefresh, secondRefresh)

	// ── 4. The camelCase body field is accepted as a fallback ─────────────
	camelBody, err := json.Marshal(map[string]string{"refreshToken": secondRefresh})
	require.NoError(t, err)

	request = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", bytes.NewReader(camelBody))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// ── 5. Replaying a retired token fails ────────────────────────────────
	request = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", bytes.NewReader(refreshBody))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestCurrentUser_AuthGate verifies the 401 gate and the bearer happy path on
the identity echo endpoint.
*/
func TestCurrentUser_AuthGate(t *testing.T) {
	router := newTestRouter(t)

	// ── 1. Anonymous request is rejected ──────────────────────────────────
	request := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// ── 2. Register + login to obtain an access token ─────────────────────
	body, contentType := registerForm(t, "bob", "bob@x.com", "Secret1!", "Bob Example")
	request = httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	request.Header.Set("Content-Type", contentType)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	loginBody, err := json.Marshal(map[string]string{"email": "bob@x.com", "password": "Secret1!"})
	require.NoError(t, err)
	request = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(loginBody))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	session := decodeData(t, recorder.Body)
	accessToken, _ := session["accessToken"].(string)
	require.NotEmpty(t, accessToken)

	// ── 3. Bearer credential unlocks the endpoint ─────────────────────────
	request = httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	request.Header.Set("Authorization", "Bearer "+accessToken)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	identity := decodeData(t, recorder.Body)
	assert.Equal(t, "bob", identity["username"])
	assert.Equal(t, "bob@x.com", identity["email"])
}

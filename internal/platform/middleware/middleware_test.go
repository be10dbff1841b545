// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haiphamduc/streamora/internal/platform/constants"
	"github.com/haiphamduc/streamora/internal/platform/middleware"
)

// loggedChain wires StructuredLogger around Authenticate so the finished-request
// entry can report the resolved identity.
func loggedChain(t *testing.T, buffer *bytes.Buffer) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(buffer, nil))
	verifier := &fakeVerifier{validToken: "good-token", userID: "user-1"}
	loader := &fakeLoader{userID: "user-1"}

	inner := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	return middleware.StructuredLogger(logger)(middleware.Authenticate(verifier, loader)(inner))
}

// lastLogEntry decodes the final JSON line the handler chain emitted.
func lastLogEntry(t *testing.T, buffer *bytes.Buffer) map[string]any {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buffer.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

/*
TestStructuredLogger_AuthenticatedUserID verifies the finished-request log line
carries the user_id resolved by the auth middleware, even though Authenticate
runs downstream of the logger.
*/
func TestStructuredLogger_AuthenticatedUserID(t *testing.T) {
	var buffer bytes.Buffer
	chain := loggedChain(t, &buffer)

	request := httptest.NewRequest(http.MethodGet, "/current-user", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer good-token")
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	entry := lastLogEntry(t, &buffer)
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "user-1", entry["user_id"])
}

/*
TestStructuredLogger_AnonymousOmitsUserID ensures anonymous requests finish
without a user_id attribute.
*/
func TestStructuredLogger_AnonymousOmitsUserID(t *testing.T) {
	var buffer bytes.Buffer
	chain := loggedChain(t, &buffer)

	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	entry := lastLogEntry(t, &buffer)
	assert.Equal(t, "http_request_finished", entry["msg"])
	_, present := entry["user_id"]
	assert.False(t, present)
}

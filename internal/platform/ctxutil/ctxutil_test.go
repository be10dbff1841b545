// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haiphamduc/streamora/internal/platform/ctxutil"
	"github.com/haiphamduc/streamora/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()

	// 1. Falls back to the default logger when absent
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve a custom logger
	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies identity storage for authenticated requests.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	// 1. Anonymous by default
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	identity := &sec.Identity{UserID: "user-1", Username: "alice"}
	ctx = ctxutil.WithIdentity(ctx, identity)
	assert.Equal(t, identity, ctxutil.GetIdentity(ctx))
}

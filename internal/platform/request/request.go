// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, common body
decoding patterns, and multipart image uploads, ensuring consistent error
handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/constants"
	"github.com/haiphamduc/streamora/internal/platform/ctxutil"
	"github.com/haiphamduc/streamora/internal/platform/sec"
	"github.com/haiphamduc/streamora/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredIdentity ensures the request is authenticated and returns the user projection.

Returns:
  - *sec.Identity: The authenticated, sanitized user
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return identity, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	identity, err := RequiredIdentity(request)
	if err != nil {
		return "", err
	}

	return identity.UserID, nil
}

// # Multipart Uploads

// ImageUpload is an in-memory multipart image file ready for object storage.
type ImageUpload struct {
	// Data is the raw file content.
	Data []byte
	// ContentType is sniffed from the content, never trusted from the client.
	ContentType string
	// Filename is the client-provided name, used only to derive an extension.
	Filename string
}

/*
FormImage extracts a required image file from a multipart form field.

Description: Parses the multipart body (bounded by constants.MaxUploadBytes),
reads the named file fully into memory, and sniffs its content type. Uploads
are small profile images, so buffering is acceptable.

Parameters:
  - request: *http.Request
  - field: string (Multipart form field name)

Returns:
  - *ImageUpload: Buffered file
  - error: apperr.ValidationError if the field is missing or not an image
*/
func FormImage(request *http.Request, field string) (*ImageUpload, error) {
	upload, err := OptionalFormImage(request, field)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, validate.RequiredError(field, "An image file is required")
	}

	return upload, nil
}

/*
OptionalFormImage extracts an image file from a multipart form field if present.

Returns:
  - *ImageUpload: Buffered file, or nil when the field was not supplied
  - error: apperr.ValidationError on oversized bodies or non-image content
*/
func OptionalFormImage(request *http.Request, field string) (*ImageUpload, error) {
	// ParseMultipartForm is idempotent: subsequent calls for other fields
	// reuse the already-parsed form.
	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		return nil, validate.RequiredError(field, "Invalid multipart form data")
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, validate.RequiredError(field, "Invalid multipart form data")
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes+1))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > constants.MaxUploadBytes {
		return nil, validate.RequiredError(field, "File exceeds the maximum upload size")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, validate.RequiredError(field, "File must be an image")
	}

	return &ImageUpload{
		Data:        data,
		ContentType: contentType,
		Filename:    header.Filename,
	}, nil
}

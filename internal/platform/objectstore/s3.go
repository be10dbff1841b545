// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

/*
Package objectstore provides the S3-compatible object storage client used for
profile media (avatars, cover images).

It targets Cloudflare R2 in production and MinIO in development; both speak
the S3 wire protocol, so a single client with a configurable endpoint covers
every environment.
*/
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store uploads objects to an S3-compatible bucket and resolves their
// public URLs.
type S3Store struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	publicBaseURL string
}

// Options configures the [S3Store].
type Options struct {
	// Region is the bucket region ("auto" for R2).
	Region string
	// Bucket is the destination bucket name.
	Bucket string
	// Endpoint overrides the AWS endpoint for R2/MinIO. Empty means AWS proper.
	Endpoint string
	// PublicBaseURL is the CDN or bucket origin that serves uploaded objects.
	PublicBaseURL string
}

// NewS3Store builds the client from ambient AWS credentials plus [Options].
//
// # Parameters
//   - ctx: Context for credential resolution.
//   - opts: Bucket, region, and endpoint settings.
//   - logger: Structured logger for connection events.
func NewS3Store(ctx context.Context, opts Options, logger *slog.Logger) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Path-style addressing is required by MinIO and friendly to R2.
			o.UsePathStyle = true
		}
	})

	logger.Info("object storage client ready",
		slog.String("bucket", opts.Bucket),
		slog.String("region", opts.Region),
	)

	return &S3Store{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

// Upload stores data under key and returns the public URL of the object.
//
// The upload is awaited synchronously; callers persist the returned URL only
// after the object is durably stored.
func (store *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := store.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: upload of %q failed: %w", key, err)
	}

	return store.publicBaseURL + "/" + key, nil
}

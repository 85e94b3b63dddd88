// Copyright (c) 2026 VidShare. All rights reserved.

/*
Package storage provides the S3-compatible object store used for all media
files: video streams, thumbnails, avatars, and channel cover images.

Architecture:

  - One bucket, key-prefixed by media kind (videos/, thumbnails/, avatars/, covers/).
  - Keys embed the upload date and a UUID so they never collide and can be
    lifecycled by prefix.
  - Public delivery happens through a CDN or bucket website endpoint; this
    package only derives the public URL, it never proxies reads.

Works against MinIO, Cloudflare R2, and AWS S3 via a configurable endpoint.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/Monuyadav-01/vidoeshareapp/internal/platform/config"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/uuid"
)

// S3Store implements media persistence on top of an S3-compatible bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *slog.Logger
}

// NewS3Store builds the S3 client from application configuration and
// verifies the credentials are at least syntactically usable.
func NewS3Store(ctx context.Context, cfg *appconfig.Config, logger *slog.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load S3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.S3Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// MinIO and most self-hosted gateways require path-style addressing.
			options.UsePathStyle = true
		}
	})

	logger.Info("s3 store configured",
		slog.String("bucket", cfg.S3Bucket),
		slog.String("region", cfg.S3Region),
	)

	return &S3Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// NewKey derives a collision-free object key under the given media prefix,
// e.g. "videos/2026/9/1/018f3c...-....mp4".
func NewKey(prefix string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%d/%d/%s", prefix, now.Year(), now.Month(), now.Day(), uuid.New())
}

/*
Upload streams an object into the bucket and returns its public URL.

Parameters:
  - context: context.Context
  - key: string (object key, usually from [NewKey])
  - contentType: string (MIME type forwarded to the bucket)
  - body: io.Reader (file content, streamed — never buffered in full)

Returns:
  - string: Publicly resolvable URL for the stored object
  - error: Upload failures
*/
func (store *S3Store) Upload(context context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := store.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload failed for key %q: %w", key, err)
	}

	return store.publicBaseURL + "/" + key, nil
}

/*
Delete removes an object by its public URL.

Description: Accepts the URL as persisted on the owning record, converts it
back to the bucket key, and issues the delete. Unknown URLs are ignored so
that records pointing at externally-managed media never fail deletion.

Parameters:
  - context: context.Context
  - publicURL: string

Returns:
  - error: Deletion failures
*/
func (store *S3Store) Delete(context context.Context, publicURL string) error {
	key, ok := store.keyFromURL(publicURL)
	if !ok {
		return nil
	}

	_, err := store.client.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete failed for key %q: %w", key, err)
	}

	return nil
}

// keyFromURL converts a public URL back into the bucket key it was built from.
func (store *S3Store) keyFromURL(publicURL string) (string, bool) {
	prefix := store.publicBaseURL + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, prefix), true
}

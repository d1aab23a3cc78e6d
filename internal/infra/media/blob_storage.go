// Package media stores uploaded video assets behind a portable blob API.
package media

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local filesystem buckets
	_ "gocloud.dev/blob/s3blob"   // s3-compatible buckets

	"vidtube/config"
	"vidtube/internal/domain/lifecycle"
	"vidtube/internal/domain/service"
	"vidtube/internal/errors"

	"go.uber.org/fx"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params defines the dependencies for the blob storage.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	LC     fx.Lifecycle
}

// NewBlobStorage opens the configured bucket and registers its shutdown hook.
func NewBlobStorage(params Params) (service.MediaStorage, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media bucket url must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "open media bucket")
	}

	storage := &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(params.Config.Media.PublicBaseURL, "/"),
		logger:        params.Logger,
	}

	params.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return storage, nil
}

// Upload writes the content under key and returns its public URL.
func (s *blobStorage) Upload(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "open bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		// Abort the partial write before surfacing the copy error.
		if closeErr := writer.Close(); closeErr != nil {
			s.logger.Warn("closing aborted media write failed",
				slog.String("key", key),
				slog.Any("error", closeErr),
			)
		}

		return "", errors.Wrap(err, "write media content")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "commit media content")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes a previously uploaded object. Missing objects are ignored so
// cleanup stays idempotent.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return errors.Wrap(err, "check media object")
	}
	if !exists {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "delete media object")
	}

	return nil
}

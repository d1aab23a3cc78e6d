package service

import (
	"context"
	"io"
)

// MediaStorage abstracts the external media host. It accepts file content
// and returns a stable public URL; the core never deals with the hosting
// provider directly.
type MediaStorage interface {
	// Upload stores the content under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, content io.Reader) (string, error)

	// Delete removes a previously uploaded object. Missing objects are not
	// an error.
	Delete(ctx context.Context, key string) error
}

package service

import (
	"context"
	"io"
)

// ImageStore persists uploaded images and returns a stable public URL.
// The domain only ever stores the URL string.
type ImageStore interface {
	// Upload writes the image under the given key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes a stored image. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}

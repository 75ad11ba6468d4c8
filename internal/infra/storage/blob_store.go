// Package storage persists uploaded images in a blob bucket.
package storage

import (
	"context"
	"io"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local development driver
	"gocloud.dev/gcerrors"

	"campuseats/config"
	"campuseats/internal/domain/lifecycle"
	"campuseats/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// blobImageStore is a concrete implementation of the ImageStore interface on
// top of a gocloud.dev blob bucket. The bucket URL decides the backend, so
// local development runs on the filesystem and production on object storage
// without code changes.
type blobImageStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobImageStore is the constructor for blobImageStore. The bucket is
// opened eagerly and closed through the fx lifecycle.
func NewBlobImageStore(lc fx.Lifecycle, cfg *config.Config) (service.ImageStore, error) {
	if cfg.ImageStore == nil || cfg.ImageStore.BucketURL == "" {
		return nil, errors.New("image store bucket must be configured")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, cfg.ImageStore.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image bucket")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobImageStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.ImageStore.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the image under the given key and returns its public URL.
func (s *blobImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write image")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish image write")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes a stored image. Missing objects are not an error.
func (s *blobImageStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete image")
	}

	return nil
}

package model

import (
	"context"
	"io"
)

// ImageStore persists meal images in object storage.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns the public URL the stored object is served from.
	URL(key string) string
}

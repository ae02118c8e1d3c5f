package storage

import (
	"context"
	"io"
)

// BlobStore stores photo files and hands out their public URLs. A negative
// size means unknown.
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

package service

import "context"

// BlobStore hosts flyer images and hands back a public URL for each upload.
type BlobStore interface {
	// Upload stores data under a fresh key and returns its public URL.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)

	// Close releases the underlying bucket.
	Close() error
}

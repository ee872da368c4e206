// Package blob uploads flyer images to any gocloud.dev bucket (local files,
// memory, S3-compatible storage or Google Cloud Storage).
package blob

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"marketplace/config"
	"marketplace/internal/domain/service"
	"marketplace/internal/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selected by the URL scheme of blob.bucketUrl.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type bucketStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	keyPrefix     string
}

// New opens the configured bucket and closes it when the application stops.
func New(params Params) (service.BlobStore, error) {
	cfg := params.Config.Blob

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	store := NewBucketStore(bucket, cfg.PublicBaseURL, cfg.KeyPrefix)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})
	params.Logger.Info("Flyer bucket opened", slog.String("bucket", cfg.BucketURL))

	return store, nil
}

// NewBucketStore wraps an already opened bucket.
func NewBucketStore(bucket *blob.Bucket, publicBaseURL, keyPrefix string) service.BlobStore {
	return &bucketStore{
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		keyPrefix:     keyPrefix,
	}
}

// Upload writes data under <prefix><uuid><ext> and returns publicBaseURL joined with the key.
// An empty contentType is detected from the payload.
func (s *bucketStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty upload")
	}

	detected := mimetype.Detect(data)
	if contentType == "" {
		contentType = detected.String()
	}

	key := s.keyPrefix + uuid.NewString() + detected.Extension()

	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	return s.publicURL(key), nil
}

func (s *bucketStore) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return "/" + path.Clean(key)
	}

	return strings.TrimSuffix(s.publicBaseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

func (s *bucketStore) Close() error {
	return s.bucket.Close()
}

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectStore is the provider-neutral surface used for staging input files
// and publishing generated samples.
type ObjectStore interface {
	// Fetch copies the object into dst and returns the number of bytes written.
	Fetch(ctx context.Context, bucket, key string, dst io.Writer) (int64, error)
	// Upload stores size bytes from r under key.
	Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
}

// Open builds the ObjectStore selected by cfg.Provider.
func Open(ctx context.Context, cfg Config) (ObjectStore, error) {
	switch cfg.Provider {
	case "", ProviderMinio:
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewMinioStore(client), nil
	case ProviderAWS:
		store, err := NewAWSStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}

// MinioStore adapts a Client to ObjectStore.
type MinioStore struct {
	client Client
}

// NewMinioStore wraps client.
func NewMinioStore(client Client) *MinioStore {
	return &MinioStore{client: client}
}

// Fetch stats the object first because minio's GetObject is lazy and would
// only report a missing key on the first read.
func (s *MinioStore) Fetch(ctx context.Context, bucket, key string, dst io.Writer) (int64, error) {
	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return 0, fmt.Errorf("failed to stat %s/%s: %w", bucket, key, err)
	}

	reader, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to get %s/%s: %w", bucket, key, err)
	}
	defer reader.Close()

	n, err := io.Copy(dst, reader)
	if err != nil {
		return n, fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return n, nil
}

// Upload creates the bucket on first use, then writes the object.
func (s *MinioStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	_, err = s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

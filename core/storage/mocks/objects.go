package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// ObjectStore is a mock implementation of storage.ObjectStore.
// Fetch writes the string returned as the first value into dst.
type ObjectStore struct {
	mock.Mock
}

func (m *ObjectStore) Fetch(ctx context.Context, bucket, key string, dst io.Writer) (int64, error) {
	args := m.Called(ctx, bucket, key, dst)
	if err := args.Error(1); err != nil {
		return 0, err
	}
	n, err := io.WriteString(dst, args.String(0))
	return int64(n), err
}

func (m *ObjectStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, bucket, key, r, size, contentType)
	return args.Error(0)
}

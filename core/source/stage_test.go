package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"library-ingest/core/reconcile"
	"library-ingest/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		loc     Location
		wantErr bool
	}{
		{"Path", Location{Path: "books.csv"}, false},
		{"Remote", Location{Bucket: "library", Key: "books.csv"}, false},
		{"Both", Location{Path: "books.csv", Key: "books.csv"}, true},
		{"Neither", Location{}, true},
		{"KeyWithoutBucket", Location{Key: "books.csv"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStager_Local(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("h\n"), 0o644))

	stager := NewStager(nil, "", zap.NewNop())

	t.Run("Exists", func(t *testing.T) {
		staged, err := stager.Stage(context.Background(), Location{Path: path})
		require.NoError(t, err)
		assert.Equal(t, path, staged.Path)

		// Closing never removes a caller-owned file
		require.NoError(t, staged.Close())
		assert.FileExists(t, path)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := stager.Stage(context.Background(), Location{Path: filepath.Join(dir, "nope.csv")})
		assert.ErrorIs(t, err, reconcile.ErrInputNotFound)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := stager.Stage(context.Background(), Location{Path: dir})
		assert.ErrorIs(t, err, reconcile.ErrInputNotFound)
	})
}

func TestStager_Remote(t *testing.T) {
	t.Run("DownloadsAndCleansUp", func(t *testing.T) {
		dir := t.TempDir()
		objects := new(mocks.ObjectStore)
		objects.On("Fetch", mock.Anything, "library", "in/books.csv", mock.Anything).Return("h\n1,Jane,1,Moby\n", nil)

		staged, err := NewStager(objects, dir, nil).Stage(context.Background(), Location{Bucket: "library", Key: "in/books.csv"})
		require.NoError(t, err)

		data, err := os.ReadFile(staged.Path)
		require.NoError(t, err)
		assert.Equal(t, "h\n1,Jane,1,Moby\n", string(data))
		assert.Equal(t, dir, filepath.Dir(staged.Path))

		require.NoError(t, staged.Close())
		assert.NoFileExists(t, staged.Path)
		assert.NoError(t, staged.Close())
	})

	t.Run("MissingObject", func(t *testing.T) {
		dir := t.TempDir()
		objects := new(mocks.ObjectStore)
		objects.On("Fetch", mock.Anything, "library", "gone.csv", mock.Anything).
			Return("", minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := NewStager(objects, dir, nil).Stage(context.Background(), Location{Bucket: "library", Key: "gone.csv"})
		assert.ErrorIs(t, err, reconcile.ErrInputNotFound)

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries, "temp file should be removed on failure")
	})

	t.Run("Unreachable", func(t *testing.T) {
		objects := new(mocks.ObjectStore)
		objects.On("Fetch", mock.Anything, "library", "books.csv", mock.Anything).
			Return("", errors.New("dial tcp 127.0.0.1:9000: connect: connection refused"))

		_, err := NewStager(objects, t.TempDir(), nil).Stage(context.Background(), Location{Bucket: "library", Key: "books.csv"})
		assert.ErrorIs(t, err, reconcile.ErrConnectivity)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		_, err := NewStager(nil, "", nil).Stage(context.Background(), Location{Bucket: "library", Key: "books.csv"})
		assert.Error(t, err)
		assert.Equal(t, reconcile.Kind(0), reconcile.KindOf(err))
	})
}

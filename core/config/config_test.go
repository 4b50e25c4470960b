package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "amkadian", cfg.Database.Name)
	assert.Equal(t, "amkadian", cfg.Database.User)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "minio", cfg.Storage.Provider)
	assert.Equal(t, "library", cfg.Storage.Bucket)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Source.Path)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "6543")
	t.Setenv("DATABASE_AUTO_MIGRATE", "true")
	t.Setenv("SOURCE_KEY", "incoming/books.csv")
	t.Setenv("STORAGE_BUCKET", "uploads")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "incoming/books.csv", cfg.Source.Key)
	// Source bucket falls back to the storage bucket
	assert.Equal(t, "uploads", cfg.Source.Bucket)
}

func TestLoadConfig_LegacyEnvironment(t *testing.T) {
	t.Setenv("DB_NAME", "legacy")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("S3_BUCKET_NAME", "old-bucket")
	t.Setenv("S3_FILE_KEY", "path/to/your_file.csv")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.Database.Name)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "old-bucket", cfg.Source.Bucket)
	assert.Equal(t, "path/to/your_file.csv", cfg.Source.Key)
}

func TestLoadConfig_CanonicalBeatsLegacy(t *testing.T) {
	t.Setenv("DATABASE_USER", "canonical")
	t.Setenv("DB_USER", "legacy")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "canonical", cfg.Database.User)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nSOURCE_PATH=./data/sample_books_authors.csv\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SOURCE_PATH")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./data/sample_books_authors.csv", cfg.Source.Path)
}

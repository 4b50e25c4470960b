package storage_test

import (
	"context"
	"testing"

	"library-ingest/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestOpen(t *testing.T) {
	t.Run("DefaultsToMinio", func(t *testing.T) {
		store, err := storage.Open(context.Background(), storage.Config{Endpoint: "localhost:9000"})
		assert.NoError(t, err)
		assert.IsType(t, &storage.MinioStore{}, store)
	})

	t.Run("AWS", func(t *testing.T) {
		cfg := storage.Config{
			Provider:  storage.ProviderAWS,
			AccessKey: "AKIA",
			SecretKey: "SECRET",
			Region:    "eu-west-1",
		}
		store, err := storage.Open(context.Background(), cfg)
		assert.NoError(t, err)
		assert.IsType(t, &storage.AWSStore{}, store)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := storage.Open(context.Background(), storage.Config{Provider: "ftp"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ftp")
	})
}

// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client and the AWS SDK behind ObjectStore, the small
// surface the ingester needs: download an input object and upload a
// generated sample.
//
// # Providers
//
//   - minio (default): any S3-compatible endpoint with static credentials.
//   - aws: AWS S3 through the SDK's default credentials chain, with optional
//     static keys and endpoint override.
//
// # Client Interface
//
// The Client interface abstracts the MinIO client so it can be mocked in unit
// tests (see core/storage/mocks).
//
// # Usage
//
//	store, err := storage.Open(ctx, cfg.Storage)
//	n, err := store.Fetch(ctx, "library", "incoming/books.csv", file)
//	if storage.IsNotFound(err) {
//	    // object or bucket missing
//	}
package storage

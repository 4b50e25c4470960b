package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of *s3.Client used by AWSStore.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AWSStore implements ObjectStore on top of the AWS SDK.
type AWSStore struct {
	api S3API
}

// NewAWSStore loads the default AWS configuration (environment, shared
// config, instance role). Static keys and a custom endpoint are applied only
// when set, so an unconfigured deployment behaves like the stock SDK.
func NewAWSStore(ctx context.Context, cfg Config) (*AWSStore, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewAWSStoreFromAPI(client), nil
}

// NewAWSStoreFromAPI wraps an existing client.
func NewAWSStoreFromAPI(api S3API) *AWSStore {
	return &AWSStore{api: api}
}

// Fetch downloads the object into dst.
func (s *AWSStore) Fetch(ctx context.Context, bucket, key string, dst io.Writer) (int64, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return 0, fmt.Errorf("failed to get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	n, err := io.Copy(dst, out.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return n, nil
}

// Upload writes the object. The bucket must already exist.
func (s *AWSStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          r,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

package storage

import "time"

const (
	// ProviderMinio talks to any S3-compatible endpoint through minio-go.
	ProviderMinio = "minio"
	// ProviderAWS uses the AWS SDK and its default credentials chain.
	ProviderAWS = "aws"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the client implementation (minio, aws).
	Provider string `mapstructure:"provider" default:"minio"`
	// Endpoint is the URL of the storage service. Optional for aws.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the default bucket for input files and generated samples.
	Bucket string `mapstructure:"bucket" default:"library"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

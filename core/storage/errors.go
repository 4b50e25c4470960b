package storage

import (
	"errors"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
)

// IsNotFound reports whether err means the bucket or object does not exist,
// for either provider.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return isNotFoundCode(apiErr.ErrorCode())
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		return isNotFoundCode(minioErr.Code)
	}
	return false
}

func isNotFoundCode(code string) bool {
	switch code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	default:
		return false
	}
}

package uploader

import (
	"context"
	"fmt"

	"github.com/13rac1/cpam/internal/manifest"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// headClient is the part of the S3 API ShouldUpload needs.
type headClient interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// ShouldUpload reports whether key is missing remotely or differs in size
// from the local file.
func ShouldUpload(ctx context.Context, client headClient, bucket, key string, localSize int64) (bool, error) {
	head, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if manifest.IsNotFound(err) {
			return true, nil
		}
		return false, fmt.Errorf("head object %s: %w", key, err)
	}

	if head.ContentLength == nil {
		return true, nil
	}

	return *head.ContentLength != localSize, nil
}

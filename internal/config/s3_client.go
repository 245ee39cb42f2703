package config

import (
	"context"
	"fmt"

	"github.com/13rac1/cpam/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// appID is sent in the AWS user agent.
const appID = "cpam"

// CredentialSource names the credential provider NewS3Client will use.
func CredentialSource(cfg *types.Config) string {
	switch {
	case cfg.Auth.AccessKeyID != "":
		return "static"
	case cfg.Auth.Profile != "":
		return "profile:" + cfg.Auth.Profile
	default:
		return "default-chain"
	}
}

// NewS3Client creates an S3 client for the publish target.
// Authentication priority: static credentials > AWS profile > default credential chain.
func NewS3Client(ctx context.Context, cfg *types.Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.S3.Region),
		config.WithRetryMaxAttempts(3),
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithAppID(appID),
	}

	switch CredentialSource(cfg) {
	case "static":
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.Auth.AccessKeyID,
				cfg.Auth.SecretAccessKey,
				cfg.Auth.SessionToken,
			),
		))
	case "default-chain":
	default:
		opts = append(opts, config.WithSharedConfigProfile(cfg.Auth.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, s3Options(cfg.S3)), nil
}

// s3Options applies custom endpoints such as MinIO or Backblaze B2.
func s3Options(s types.S3Config) func(*s3.Options) {
	return func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
		if s.ForcePathStyle {
			o.UsePathStyle = true
		}
	}
}

package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the part of the S3 API the index needs.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store reads and writes the index object of one publish prefix.
type Store struct {
	client S3Client
	bucket string
	key    string
}

// NewStore returns a Store for the index under prefix in bucket.
func NewStore(client S3Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, key: Key(prefix)}
}

// Key returns the index object key.
func (s *Store) Key() string { return s.key }

// Load downloads the index. A missing object yields an empty index.
func (s *Store) Load(ctx context.Context) (*Index, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if IsNotFound(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("downloading %s: %w", s.key, err)
	}
	defer func() { _ = out.Body.Close() }()

	return Decode(out.Body)
}

// Save replaces the index object.
func (s *Store) Save(ctx context.Context, x *Index) error {
	data, err := x.Encode()
	if err != nil {
		return err
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("uploading %s: %w", s.key, err)
	}
	return nil
}

// Decode parses an index document, rejecting unknown format versions.
func Decode(r io.Reader) (*Index, error) {
	var x Index
	if err := json.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("parsing index JSON: %w", err)
	}
	if x.Version != currentVersion {
		return nil, fmt.Errorf("unsupported index version: %d", x.Version)
	}
	if x.Artifacts == nil {
		x.Artifacts = make(map[string]ArtifactEntry)
	}
	return &x, nil
}

// Encode renders the index as indented JSON.
func (x *Index) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling index: %w", err)
	}
	return data, nil
}

// IsNotFound reports whether err is a missing-object error. Some
// S3-compatible stores answer with a bare API error code instead of the
// typed S3 errors.
func IsNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	return false
}

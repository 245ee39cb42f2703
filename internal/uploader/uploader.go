// Package uploader publishes built executables to S3-compatible storage.
// Each artifact is stored at <prefix><project>/<mode>/<file>, uploaded with
// the multipart manager, and recorded in the remote index so an unchanged
// build is skipped on the next publish.
package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/13rac1/cpam/internal/manifest"
	"github.com/13rac1/cpam/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the S3 API surface the publisher uses.
type Client interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Artifact is a local executable to publish.
type Artifact struct {
	LocalPath string
	S3Key     string
	Project   string
	Mode      string // Debug or Release
	Generator string
	Size      int64
	ModTime   time.Time
}

// NewArtifact stats localPath and computes its key under prefix.
func NewArtifact(prefix, project, mode, generator, localPath string) (Artifact, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return Artifact{}, fmt.Errorf("stat %s: %w", localPath, err)
	}
	if info.IsDir() {
		return Artifact{}, fmt.Errorf("%s is a directory", localPath)
	}

	return Artifact{
		LocalPath: localPath,
		S3Key:     ComputeS3Key(prefix, project, mode, filepath.Base(localPath)),
		Project:   project,
		Mode:      mode,
		Generator: generator,
		Size:      info.Size(),
		ModTime:   info.ModTime().UTC(),
	}, nil
}

// ComputeS3Key returns <prefix><project>/<mode>/<file> with forward slashes.
// The prefix is normalized to have a trailing slash if non-empty.
func ComputeS3Key(prefix, project, mode, file string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	// filepath.ToSlash only converts the host separator.
	parts := []string{project, mode, file}
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "\\", "/")
	}

	return strings.ReplaceAll(prefix, "\\", "/") + strings.Join(parts, "/")
}

// Result describes what Publish did.
type Result struct {
	Key        string
	Uploaded   bool
	Skipped    bool
	SkipReason string
	Bytes      int64
}

// Publisher uploads artifacts and maintains the remote index.
type Publisher struct {
	bucket string
	prefix string
	client Client
	out    io.Writer
	logger *slog.Logger
}

// New creates a Publisher for the configured bucket and prefix. Progress is
// written to out.
func New(cfg *types.Config, client Client, out io.Writer, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{
		bucket: cfg.S3.Bucket,
		prefix: cfg.S3.Prefix,
		client: client,
		out:    out,
		logger: logger,
	}
}

// IndexKey returns the index object key.
func (p *Publisher) IndexKey() string {
	return manifest.Key(p.prefix)
}

// Index downloads the remote index.
func (p *Publisher) Index(ctx context.Context) (*manifest.Index, error) {
	return manifest.NewStore(p.client, p.bucket, p.prefix).Load(ctx)
}

// Publish uploads a unless the index or the remote object shows it is
// unchanged. With dryRun nothing is written remotely.
func (p *Publisher) Publish(ctx context.Context, a Artifact, dryRun bool) (*Result, error) {
	res := &Result{Key: a.S3Key}

	idx, err := p.Index(ctx)
	if err != nil {
		// Treat as first publish; the object check below still applies.
		p.logger.Warn("failed to load index", "key", p.IndexKey(), "error", err)
		idx = manifest.New()
	}

	if idx.Unchanged(a.S3Key, a.ModTime, a.Size) {
		p.skip(res, a, "unchanged")
		return res, nil
	}

	// Objects published before the index existed are matched by size.
	if _, known := idx.Artifacts[a.S3Key]; !known {
		upload, err := ShouldUpload(ctx, p.client, p.bucket, a.S3Key, a.Size)
		if err != nil {
			return res, err
		}
		if !upload {
			p.skip(res, a, "already present")
			if !dryRun {
				p.saveIndex(ctx, idx, a)
			}
			return res, nil
		}
	}

	if dryRun {
		fmt.Fprintf(p.out, "Would upload %s (%s) to s3://%s/%s\n", a.LocalPath, formatSize(a.Size), p.bucket, a.S3Key)
		return res, nil
	}

	fmt.Fprintf(p.out, "Uploading %s (%s) to s3://%s/%s\n", a.LocalPath, formatSize(a.Size), p.bucket, a.S3Key)
	if err := p.uploadFile(ctx, a); err != nil {
		return res, fmt.Errorf("uploading %s: %w", a.LocalPath, err)
	}
	res.Uploaded = true
	res.Bytes = a.Size

	p.saveIndex(ctx, idx, a)
	return res, nil
}

func (p *Publisher) skip(res *Result, a Artifact, reason string) {
	res.Skipped, res.SkipReason = true, reason
	fmt.Fprintf(p.out, "Skipping %s (%s)\n", a.LocalPath, reason)
}

// saveIndex records a and uploads the index. Failure only warns: the
// artifact itself is already in place.
func (p *Publisher) saveIndex(ctx context.Context, idx *manifest.Index, a Artifact) {
	idx.Record(a.S3Key, manifest.ArtifactEntry{
		Project:   a.Project,
		Mode:      a.Mode,
		Generator: a.Generator,
		Mtime:     a.ModTime,
		Size:      a.Size,
	})
	if err := manifest.NewStore(p.client, p.bucket, p.prefix).Save(ctx, idx); err != nil {
		p.logger.Warn("failed to save index", "key", p.IndexKey(), "error", err)
	}
}

func (p *Publisher) uploadFile(ctx context.Context, a Artifact) error {
	f, err := os.Open(a.LocalPath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			p.logger.Warn("failed to close file", "path", a.LocalPath, "error", closeErr)
		}
	}()

	uploader := manager.NewUploader(p.client, func(mu *manager.Uploader) {
		mu.Concurrency = 5
		mu.PartSize = 5 * 1024 * 1024
	})

	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(a.S3Key),
		Body:        f,
		ContentType: aws.String("application/octet-stream"),
		Metadata: map[string]string{
			"cpam-project":   a.Project,
			"cpam-mode":      a.Mode,
			"cpam-generator": a.Generator,
		},
	})
	if err != nil {
		return fmt.Errorf("s3 upload: %w", err)
	}
	return nil
}

// formatSize formats a byte count as a human-readable string.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

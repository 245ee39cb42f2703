package discover

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/13rac1/cpam/internal/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// indexObject is the publish index name, skipped when counting artifacts.
const indexObject = ".index.json"

// DiscoverRemote lists projects published under bucket/prefix/. Each
// immediate child prefix is a project and each object below it that is not
// the index counts as an artifact.
func DiscoverRemote(ctx context.Context, client s3.ListObjectsV2APIClient, bucket, prefix string) ([]types.RemoteProject, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	projectPrefixes, err := listProjectPrefixes(ctx, client, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("list project prefixes: %w", err)
	}

	var projects []types.RemoteProject
	for _, projectPrefix := range projectPrefixes {
		name := extractProjectName(projectPrefix, prefix)
		if name == "" || name == "." {
			continue
		}

		count, modes, err := countArtifacts(ctx, client, bucket, projectPrefix)
		if err != nil {
			return nil, fmt.Errorf("count artifacts in %s: %w", name, err)
		}

		projects = append(projects, types.RemoteProject{
			Name:      name,
			Prefix:    projectPrefix,
			Artifacts: count,
			Modes:     modes,
		})
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})

	return projects, nil
}

func listProjectPrefixes(ctx context.Context, client s3.ListObjectsV2APIClient, bucket, prefix string) ([]string, error) {
	var prefixes []string

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket:    &bucket,
		Prefix:    &prefix,
		Delimiter: strPtr("/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, cp := range page.CommonPrefixes {
			if cp.Prefix != nil {
				prefixes = append(prefixes, *cp.Prefix)
			}
		}
	}

	return prefixes, nil
}

// countArtifacts counts objects under prefix and collects the configuration
// directory names (the first path element below prefix).
func countArtifacts(ctx context.Context, client s3.ListObjectsV2APIClient, bucket, prefix string) (int, []string, error) {
	count := 0
	seen := make(map[string]bool)

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: &bucket,
		Prefix: &prefix,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || path.Base(*obj.Key) == indexObject {
				continue
			}
			count++
			rest := strings.TrimPrefix(*obj.Key, prefix)
			if mode, _, ok := strings.Cut(rest, "/"); ok && mode != "" {
				seen[mode] = true
			}
		}
	}

	modes := make([]string, 0, len(seen))
	for m := range seen {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	return count, modes, nil
}

// extractProjectName returns the last element of projectPrefix below
// basePrefix: "cpam/demo/" under "cpam/" is "demo".
func extractProjectName(projectPrefix, basePrefix string) string {
	name := strings.TrimPrefix(projectPrefix, basePrefix)
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return ""
	}
	return path.Base(name)
}

func strPtr(s string) *string {
	return &s
}

// Package manifest tracks published build artifacts in a JSON index stored
// next to them in S3. The index records the local executable's modification
// time and size per key, so an unchanged build is not uploaded again.
package manifest

import (
	"strings"
	"time"
)

// FileName is the index object name under the publish prefix.
const FileName = ".index.json"

// currentVersion is the only index format cpam reads and writes.
const currentVersion = 1

// Index maps S3 keys to the artifacts published there.
type Index struct {
	Version   int                      `json:"version"`
	Artifacts map[string]ArtifactEntry `json:"artifacts"`
}

// ArtifactEntry describes one published executable.
type ArtifactEntry struct {
	Project   string    `json:"project"`
	Mode      string    `json:"mode"`      // Debug or Release
	Generator string    `json:"generator"` // CMake generator that produced it
	Mtime     time.Time `json:"mtime"`     // local file modification time (UTC)
	Size      int64     `json:"size"`
}

// New creates an empty index.
func New() *Index {
	return &Index{
		Version:   currentVersion,
		Artifacts: make(map[string]ArtifactEntry),
	}
}

// Key returns the index object key for a publish prefix.
func Key(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + FileName
}

// Unchanged reports whether key was already published with the same
// modification time and size.
func (x *Index) Unchanged(key string, mtime time.Time, size int64) bool {
	e, ok := x.Artifacts[key]
	return ok && e.Mtime.Equal(mtime.UTC()) && e.Size == size
}

// Record stores entry under key, normalizing the time to UTC.
func (x *Index) Record(key string, entry ArtifactEntry) {
	entry.Mtime = entry.Mtime.UTC()
	x.Artifacts[key] = entry
}

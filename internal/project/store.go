// Package project loads and saves the cpam.toml project document.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/13rac1/cpam/internal/types"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the project document name, always at the project root.
const FileName = "cpam.toml"

// ErrNotFound is returned by Load when dir has no cpam.toml.
var ErrNotFound = errors.New(FileName + " not found")

// ParseError means cpam.toml exists but is not a valid document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	var de *toml.DecodeError
	if errors.As(e.Err, &de) {
		row, col := de.Position()
		return fmt.Sprintf("failed to parse %s at line %d, column %d: %v", e.Path, row, col, de)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Path returns the cpam.toml path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Default returns an empty document.
func Default() *types.CpamConfig {
	return &types.CpamConfig{}
}

// Load reads dir/cpam.toml. It returns ErrNotFound (wrapped) when the file is
// missing and *ParseError when it cannot be decoded.
func Load(dir string) (*types.CpamConfig, error) {
	path := Path(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg types.CpamConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	// An empty [dependencies] table is the same document as no table.
	if len(cfg.Dependencies) == 0 {
		cfg.Dependencies = nil
	}

	return &cfg, nil
}

// Save replaces dir/cpam.toml with cfg. The document is written to a
// temporary file in dir and renamed into place.
func Save(dir string, cfg *types.CpamConfig) error {
	if cfg == nil {
		cfg = Default()
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", FileName, err)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}

	path := Path(dir)
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

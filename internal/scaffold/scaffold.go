// Package scaffold creates the directory tree, sources, CMakeLists.txt and
// cpam.toml of a new project.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/13rac1/cpam/internal/generator"
	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/project"
	"github.com/13rac1/cpam/internal/types"
)

// Subdirectories created under every project root.
var Subdirectories = []string{"include", "src", "lib"}

// Options describes the project to create.
type Options struct {
	Name        string
	Language    types.Language
	BuildTool   types.BuildTool
	ProjectType types.ProjectType
	// Compiler is a compiler command, or "" / "default" to let CMake choose.
	Compiler string
	Profile  platform.Profile
}

// HasCompiler reports whether an explicit compiler was chosen.
func (o Options) HasCompiler() bool {
	return o.Compiler != "" && o.Compiler != "default"
}

// DirectoryCreateError means a project directory could not be created.
type DirectoryCreateError struct {
	Path string
	Err  error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("failed to create directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error { return e.Err }

// FileWriteError means a generated file could not be written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// Result lists what Create produced.
type Result struct {
	Root string
	// Files are the files written, relative to Root, in creation order.
	Files []string
	// Warnings are non-fatal failures. Nothing already written is rolled back.
	Warnings []error
	Config   *types.CpamConfig
}

// Exists reports whether the project root for name already exists in parent.
func Exists(parent, name string) bool {
	_, err := os.Stat(filepath.Join(parent, name))
	return err == nil
}

// Create builds the project under parent/opts.Name. Failing to create the
// root directory is fatal; every later failure is recorded in
// Result.Warnings and creation continues. An existing root is reused.
func Create(parent string, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, errors.New("project name is required")
	}
	if opts.ProjectType == types.ProjectTypeUnknown {
		opts.ProjectType = types.ProjectTypeBinary
	}

	root := filepath.Join(parent, opts.Name)
	if err := os.Mkdir(root, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, &DirectoryCreateError{Path: root, Err: err}
	}

	res := &Result{Root: root}

	for _, dir := range Subdirectories {
		path := filepath.Join(root, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			res.Warnings = append(res.Warnings, &DirectoryCreateError{Path: path, Err: err})
		}
	}

	for _, f := range Sources(opts) {
		res.write(f.Path, f.Content)
	}
	res.write("CMakeLists.txt", CMakeLists(opts))

	cfg := Config(opts)
	res.Config = cfg
	if err := project.Save(root, cfg); err != nil {
		res.Warnings = append(res.Warnings, &FileWriteError{Path: project.Path(root), Err: err})
	} else {
		res.Files = append(res.Files, project.FileName)
	}

	return res, nil
}

func (r *Result) write(rel, content string) {
	path := filepath.Join(r.Root, filepath.FromSlash(rel))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.Warnings = append(r.Warnings, &FileWriteError{Path: path, Err: err})
		return
	}
	r.Files = append(r.Files, rel)
}

// Config returns the cpam.toml document for a new project.
func Config(opts Options) *types.CpamConfig {
	cfg := &types.CpamConfig{
		Project: &types.ProjectConfig{
			Name:        opts.Name,
			Language:    opts.Language.String(),
			BuildTool:   opts.BuildTool.String(),
			ProjectType: opts.ProjectType.String(),
		},
		Build: &types.BuildConfig{
			Generator: generator.ForBuildTool(opts.BuildTool, opts.Profile),
			SourceDir: types.DefaultSourceDir,
			BuildDir:  types.DefaultBuildDir,
		},
	}
	if opts.HasCompiler() {
		cfg.Build.Options = []string{
			fmt.Sprintf("-DCMAKE_%s_COMPILER=%s", opts.Language.CMakeName(), opts.Compiler),
		}
	}
	return cfg
}

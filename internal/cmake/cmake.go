// Package cmake drives the cmake configure and build steps.
package cmake

import (
	"context"
	"fmt"
	"os"
)

// Executable is the cmake binary name looked up on PATH.
const Executable = "cmake"

// Build configuration names.
const (
	Debug   = "Debug"
	Release = "Release"
)

// BuildTypeFor returns the configuration name for a release flag.
func BuildTypeFor(release bool) string {
	if release {
		return Release
	}
	return Debug
}

// CMake drives a configure and build for one source/build directory pair.
type CMake struct {
	runner    Runner
	sourceDir string
	buildDir  string
	generator string
	buildType string
	options   []string
}

// New returns a CMake that launches processes through runner.
func New(runner Runner, sourceDir, buildDir string) *CMake {
	return &CMake{
		runner:    runner,
		sourceDir: sourceDir,
		buildDir:  buildDir,
	}
}

// Generator sets the -G value. Empty lets cmake choose.
func (c *CMake) Generator(name string) { c.generator = name }

// BuildType sets CMAKE_BUILD_TYPE and the --config value.
func (c *CMake) BuildType(name string) { c.buildType = name }

// Options sets extra configure arguments, passed verbatim and in order.
func (c *CMake) Options(opts []string) { c.options = append([]string(nil), opts...) }

// BuildDir returns the build directory.
func (c *CMake) BuildDir() string { return c.buildDir }

// ConfigureArgs returns the arguments of the configure step.
func (c *CMake) ConfigureArgs() []string {
	args := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		args = append(args, "-G", c.generator)
	}
	if c.buildType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+c.buildType)
	}
	return append(args, c.options...)
}

// BuildArgs returns the arguments of the build step.
func (c *CMake) BuildArgs() []string {
	args := []string{"--build", c.buildDir}
	if c.buildType != "" {
		args = append(args, "--config", c.buildType)
	}
	return args
}

// Configure creates the build directory and runs the configure step.
func (c *CMake) Configure(ctx context.Context) error {
	if err := os.MkdirAll(c.buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory %s: %w", c.buildDir, err)
	}
	return c.runner.Run(ctx, Command{Name: Executable, Args: c.ConfigureArgs()})
}

// Build runs the build step.
func (c *CMake) Build(ctx context.Context) error {
	return c.runner.Run(ctx, Command{Name: Executable, Args: c.BuildArgs()})
}

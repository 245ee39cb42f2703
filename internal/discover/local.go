// Package discover finds the local toolchain and remotely published builds.
// Compilers are found by launching each candidate with --version, tools by
// searching PATH, and published projects by listing the S3 publish prefix.
package discover

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/13rac1/cpam/internal/cmake"
	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/types"
)

// VersionFlag is passed to every compiler candidate.
const VersionFlag = "--version"

// Candidates returns the compiler command names considered for lang, in
// preference order. Host-native compilers come first for C and C++.
func Candidates(lang types.Language, p platform.Profile) []string {
	var names []string
	switch lang {
	case types.LanguageC:
		names = []string{"gcc", "clang", "cc"}
	case types.LanguageCPP:
		names = []string{"g++", "clang++", "c++"}
	case types.LanguageCUDA:
		names = []string{"nvcc"}
	default:
		names = []string{"g++", "clang++"}
	}

	if lang == types.LanguageC || lang == types.LanguageCPP {
		names = append(append([]string(nil), p.NativeCompilers...), names...)
	}
	return names
}

// Compilers launches every candidate for lang with --version and returns
// those that started. A candidate that starts but exits non-zero still
// counts as available. Results are not cached: each call probes again.
func Compilers(ctx context.Context, lang types.Language, p platform.Profile, runner cmake.Runner) []string {
	var found []string
	for _, name := range Candidates(lang, p) {
		err := runner.Run(ctx, cmake.Command{Name: name, Args: []string{VersionFlag}})
		if err == nil {
			found = append(found, name)
			continue
		}
		var exitErr *cmake.ExitError
		if errors.As(err, &exitErr) {
			found = append(found, name)
		}
	}
	return found
}

// LookupTool returns the absolute path of name on PATH.
func LookupTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	return path, nil
}

// GeneratorTool returns the program a generator drives, or "" when the
// generator does not need one on PATH.
func GeneratorTool(generator string) string {
	switch {
	case generator == platform.GeneratorNinja || generator == "Ninja Multi-Config":
		return "ninja"
	case generator == platform.GeneratorUnixMakefiles:
		return "make"
	case generator == "MinGW Makefiles":
		return "mingw32-make"
	case generator == "NMake Makefiles":
		return "nmake"
	default:
		return ""
	}
}

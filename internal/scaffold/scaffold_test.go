package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/project"
	"github.com/13rac1/cpam/internal/types"
	"github.com/google/go-cmp/cmp"
)

func TestCreateBinary(t *testing.T) {
	tests := []struct {
		name     string
		lang     types.Language
		wantMain string
		wantLang string
	}{
		{"c", types.LanguageC, "src/main.c", "LANGUAGES C"},
		{"cpp", types.LanguageCPP, "src/main.cpp", "LANGUAGES CXX"},
		{"cuda", types.LanguageCUDA, "src/main.cu", "LANGUAGES CUDA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := t.TempDir()
			res, err := Create(parent, Options{
				Name:        "demo",
				Language:    tt.lang,
				BuildTool:   types.BuildToolNinja,
				ProjectType: types.ProjectTypeBinary,
				Profile:     platform.ForOS("linux"),
			})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if len(res.Warnings) != 0 {
				t.Errorf("Warnings = %v", res.Warnings)
			}

			wantFiles := []string{tt.wantMain, "CMakeLists.txt", "cpam.toml"}
			if diff := cmp.Diff(wantFiles, res.Files); diff != "" {
				t.Errorf("Files mismatch (-want +got):\n%s", diff)
			}

			for _, dir := range Subdirectories {
				if info, err := os.Stat(filepath.Join(res.Root, dir)); err != nil || !info.IsDir() {
					t.Errorf("missing directory %s", dir)
				}
			}

			cmakeLists := readFile(t, filepath.Join(res.Root, "CMakeLists.txt"))
			if !strings.Contains(cmakeLists, tt.wantLang) {
				t.Errorf("CMakeLists.txt missing %q:\n%s", tt.wantLang, cmakeLists)
			}
			if !strings.Contains(cmakeLists, "add_executable(demo "+tt.wantMain+")") {
				t.Errorf("CMakeLists.txt missing add_executable:\n%s", cmakeLists)
			}
		})
	}
}

func TestCreateWritesLoadableConfig(t *testing.T) {
	parent := t.TempDir()
	res, err := Create(parent, Options{
		Name:        "demo",
		Language:    types.LanguageCPP,
		BuildTool:   types.BuildToolIDE,
		ProjectType: types.ProjectTypeBinary,
		Compiler:    "clang++",
		Profile:     platform.ForOS("windows"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := project.Load(res.Root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &types.CpamConfig{
		Project: &types.ProjectConfig{Name: "demo", Language: "cpp", BuildTool: "vs", ProjectType: "bin"},
		Build: &types.BuildConfig{
			Generator: "Visual Studio 17 2022",
			SourceDir: ".",
			BuildDir:  "build",
			Options:   []string{"-DCMAKE_CXX_COMPILER=clang++"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cpam.toml mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, res.Config); diff != "" {
		t.Errorf("Result.Config mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateLibrary(t *testing.T) {
	parent := t.TempDir()
	res, err := Create(parent, Options{
		Name:        "my-lib",
		Language:    types.LanguageC,
		BuildTool:   types.BuildToolMake,
		ProjectType: types.ProjectTypeLibrary,
		Profile:     platform.ForOS("linux"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	wantFiles := []string{"include/my-lib.h", "src/my-lib.c", "CMakeLists.txt", "cpam.toml"}
	if diff := cmp.Diff(wantFiles, res.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	header := readFile(t, filepath.Join(res.Root, "include", "my-lib.h"))
	if !strings.Contains(header, "#ifndef MY_LIB_H") || !strings.Contains(header, "void my_lib_hello(void);") {
		t.Errorf("unexpected header:\n%s", header)
	}
	src := readFile(t, filepath.Join(res.Root, "src", "my-lib.c"))
	if !strings.Contains(src, `#include "my-lib.h"`) {
		t.Errorf("source does not include header:\n%s", src)
	}
	cmakeLists := readFile(t, filepath.Join(res.Root, "CMakeLists.txt"))
	if !strings.Contains(cmakeLists, "add_library(my-lib src/my-lib.c)") {
		t.Errorf("CMakeLists.txt missing add_library:\n%s", cmakeLists)
	}
	if strings.Contains(cmakeLists, "add_executable") {
		t.Errorf("library CMakeLists.txt contains add_executable:\n%s", cmakeLists)
	}
}

func TestCMakeListsCompiler(t *testing.T) {
	opts := Options{Name: "demo", Language: types.LanguageCUDA, Compiler: "nvcc"}
	got := CMakeLists(opts)

	want := `cmake_minimum_required(VERSION 3.10)

set(CMAKE_CUDA_COMPILER nvcc)

project(demo LANGUAGES CUDA)

set(CMAKE_CUDA_STANDARD 17)
set(CMAKE_CUDA_STANDARD_REQUIRED ON)

add_executable(demo src/main.cu)
target_include_directories(demo PRIVATE ${CMAKE_CURRENT_SOURCE_DIR}/include)
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CMakeLists() mismatch (-want +got):\n%s", diff)
	}
}

func TestCMakeListsDefaultCompiler(t *testing.T) {
	got := CMakeLists(Options{Name: "demo", Language: types.LanguageC, Compiler: "default"})
	if strings.Contains(got, "COMPILER") {
		t.Errorf("default compiler written to CMakeLists.txt:\n%s", got)
	}
	if !strings.Contains(got, "set(CMAKE_C_STANDARD 11)") {
		t.Errorf("missing C standard:\n%s", got)
	}
}

func TestConfigCompilerOption(t *testing.T) {
	tests := []struct {
		lang     types.Language
		compiler string
		want     []string
	}{
		{types.LanguageC, "gcc", []string{"-DCMAKE_C_COMPILER=gcc"}},
		{types.LanguageCPP, "g++", []string{"-DCMAKE_CXX_COMPILER=g++"}},
		{types.LanguageCUDA, "nvcc", []string{"-DCMAKE_CUDA_COMPILER=nvcc"}},
		{types.LanguageCPP, "default", nil},
		{types.LanguageCPP, "", nil},
	}
	for _, tt := range tests {
		cfg := Config(Options{Name: "x", Language: tt.lang, Compiler: tt.compiler, Profile: platform.ForOS("linux")})
		if diff := cmp.Diff(tt.want, cfg.Build.Options); diff != "" {
			t.Errorf("%v/%q options mismatch (-want +got):\n%s", tt.lang, tt.compiler, diff)
		}
	}
}

func TestCreateExistingRootIsReused(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "demo")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(root, "README.md")
	if err := os.WriteFile(keep, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(parent, "demo") {
		t.Fatal("Exists() = false for existing directory")
	}
	if _, err := Create(parent, Options{Name: "demo", Language: types.LanguageCPP, Profile: platform.ForOS("linux")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if readFile(t, keep) != "keep" {
		t.Error("unrelated file was modified")
	}
}

func TestCreateRootFailureIsFatal(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Create(blocker, Options{Name: "demo", Language: types.LanguageCPP})
	var dce *DirectoryCreateError
	if !errors.As(err, &dce) {
		t.Fatalf("Create() error = %v, want *DirectoryCreateError", err)
	}
}

func TestCreateFileFailureIsWarning(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions differ on windows")
	}
	parent := t.TempDir()
	root := filepath.Join(parent, "demo")
	// A regular file where src/ should be makes the source write fail.
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	res, err := Create(parent, Options{Name: "demo", Language: types.LanguageCPP, Profile: platform.ForOS("linux")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var dirErrs, fileErrs int
	for _, w := range res.Warnings {
		var dce *DirectoryCreateError
		var fwe *FileWriteError
		switch {
		case errors.As(w, &dce):
			dirErrs++
		case errors.As(w, &fwe):
			fileErrs++
		}
	}
	if dirErrs != 1 || fileErrs != 1 {
		t.Errorf("warnings = %v, want one directory and one file error", res.Warnings)
	}
	if diff := cmp.Diff([]string{"CMakeLists.txt", "cpam.toml"}, res.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateRequiresName(t *testing.T) {
	if _, err := Create(t.TempDir(), Options{Name: " "}); err == nil {
		t.Error("Create() error = nil, want error")
	}
}

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"demo":     "demo",
		"my-lib":   "my_lib",
		"2d-math":  "_2d_math",
		"my lib.x": "my_lib_x",
	}
	for in, want := range tests {
		if got := identifier(in); got != want {
			t.Errorf("identifier(%q) = %q, want %q", in, got, want)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// Package doctor checks that a project directory and the host toolchain are
// ready for cpam build.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/13rac1/cpam/internal/cmake"
	"github.com/13rac1/cpam/internal/discover"
	"github.com/13rac1/cpam/internal/generator"
	"github.com/13rac1/cpam/internal/locate"
	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/project"
	"github.com/13rac1/cpam/internal/types"
)

const (
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func checkmark() string {
	return colorGreen + "✓" + colorReset
}

func crossmark() string {
	return colorRed + "✗" + colorReset
}

func warnmark() string {
	return colorYellow + "!" + colorReset
}

// Inputs configures a doctor run.
type Inputs struct {
	// Dir is the project directory holding cpam.toml.
	Dir     string
	Profile platform.Profile
	// Generator overrides the resolved generator when non-empty.
	Generator string
	// BuildDir overrides build.build_dir when non-empty.
	BuildDir string
	Release  bool
	// LookPath finds tools on PATH. Defaults to discover.LookupTool.
	LookPath func(name string) (string, error)
	// Runner launches compiler candidates. Defaults to a silent ExecRunner.
	Runner cmake.Runner
	// Probe checks executable candidates. Defaults to locate.FileExists.
	Probe locate.Probe
}

// RunChecks performs all doctor checks, writing the report to w, and returns
// whether all required checks passed. Missing build output is reported as a
// warning only.
func RunChecks(ctx context.Context, w io.Writer, in Inputs) bool {
	if in.LookPath == nil {
		in.LookPath = discover.LookupTool
	}
	if in.Runner == nil {
		in.Runner = cmake.ExecRunner{}
	}

	fmt.Fprintln(w, "cpam doctor - Project and toolchain check")
	fmt.Fprintln(w)

	allPassed := true

	// Project checks
	fmt.Fprintln(w, "Project:")
	cfg, ok := checkProject(w, in.Dir)
	if !ok {
		allPassed = false
	}
	fmt.Fprintln(w)

	// Toolchain checks
	fmt.Fprintln(w, "Toolchain:")
	if path, err := in.LookPath(cmake.Executable); err != nil {
		fmt.Fprintf(w, "  %s cmake not found on PATH\n", crossmark())
		fmt.Fprintf(w, "    → Install CMake 3.10 or newer\n")
		allPassed = false
	} else {
		fmt.Fprintf(w, "  %s cmake found: %s\n", checkmark(), path)
	}

	res := generator.Resolve(cfg, in.Generator, in.Profile)
	fmt.Fprintf(w, "  %s Generator: %s (from %s)\n", checkmark(), res.Generator, res.Source)
	if res.UnknownTool() {
		fmt.Fprintf(w, "  %s build_tool %q not recognized, using %s\n", warnmark(), res.RawTool, res.Generator)
	}

	if tool := discover.GeneratorTool(res.Generator); tool != "" {
		if path, err := in.LookPath(tool); err != nil {
			fmt.Fprintf(w, "  %s %s not found on PATH (required by %s)\n", crossmark(), tool, res.Generator)
			allPassed = false
		} else {
			fmt.Fprintf(w, "  %s %s found: %s\n", checkmark(), tool, path)
		}
	}

	lang := types.LanguageCPP
	if cfg.Project != nil {
		if l := types.ParseLanguage(cfg.Project.Language); l != types.LanguageUnknown {
			lang = l
		}
	}
	compilers := discover.Compilers(ctx, lang, in.Profile, in.Runner)
	if len(compilers) == 0 {
		fmt.Fprintf(w, "  %s No %s compiler found (tried %v)\n", crossmark(), lang, discover.Candidates(lang, in.Profile))
		allPassed = false
	} else {
		fmt.Fprintf(w, "  %s %s compilers: %v\n", checkmark(), lang, compilers)
	}
	fmt.Fprintln(w)

	// Build output checks
	fmt.Fprintln(w, "Build:")
	buildDir := cfg.BuildDir()
	if in.BuildDir != "" {
		buildDir = in.BuildDir
	}
	if !filepath.IsAbs(buildDir) && in.Dir != "" {
		buildDir = filepath.Join(in.Dir, buildDir)
	}
	checkBuild(w, cfg, res.Generator, buildDir, in)

	fmt.Fprintln(w)
	printSummary(w, allPassed)
	return allPassed
}

// checkProject loads cpam.toml from dir. It always returns a usable document:
// the defaults when the file is missing or malformed.
func checkProject(w io.Writer, dir string) (*types.CpamConfig, bool) {
	path := project.Path(dir)
	cfg, err := project.Load(dir)

	var parseErr *project.ParseError
	switch {
	case errors.Is(err, project.ErrNotFound):
		fmt.Fprintf(w, "  %s %s not found: %s\n", crossmark(), project.FileName, path)
		fmt.Fprintf(w, "    → Run cpam new to scaffold a project\n")
		return project.Default(), false
	case errors.As(err, &parseErr):
		fmt.Fprintf(w, "  %s %s is malformed\n", crossmark(), project.FileName)
		fmt.Fprintf(w, "    → %v\n", parseErr)
		return project.Default(), false
	case err != nil:
		fmt.Fprintf(w, "  %s Cannot read %s\n", crossmark(), path)
		fmt.Fprintf(w, "    → Error: %v\n", err)
		return project.Default(), false
	}

	fmt.Fprintf(w, "  %s %s loaded: %s\n", checkmark(), project.FileName, path)
	if cfg.Project == nil {
		fmt.Fprintf(w, "  %s No [project] section; run will ask for the executable name\n", warnmark())
	} else {
		fmt.Fprintf(w, "  %s Project: %s (%s, %s)\n", checkmark(), cfg.Project.Name, cfg.Project.Language, cfg.Project.ProjectType)
	}

	deps := len(cfg.Dependencies)
	word := "dependencies"
	if deps == 1 {
		word = "dependency"
	}
	fmt.Fprintf(w, "  %s %d %s declared\n", checkmark(), deps, word)
	return cfg, true
}

func checkBuild(w io.Writer, cfg *types.CpamConfig, gen, buildDir string, in Inputs) {
	info, err := os.Stat(buildDir)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  %s Build directory does not exist yet: %s\n", warnmark(), buildDir)
		fmt.Fprintf(w, "    → Run cpam build\n")
		return
	case !info.IsDir():
		fmt.Fprintf(w, "  %s Build path is not a directory: %s\n", warnmark(), buildDir)
		return
	}
	fmt.Fprintf(w, "  %s Build directory exists: %s\n", checkmark(), buildDir)

	name := cfg.ProjectName()
	if name == "" {
		return
	}

	req := locate.Request{BuildDir: buildDir, Name: name, Generator: gen, Release: in.Release}
	exe, err := locate.Resolve(req, in.Profile, in.Probe)
	if err != nil {
		fmt.Fprintf(w, "  %s %s executable not built: %v\n", warnmark(), req.Config(), err)
		return
	}
	fmt.Fprintf(w, "  %s %s executable: %s\n", checkmark(), req.Config(), exe)
}

func printSummary(w io.Writer, allPassed bool) {
	if allPassed {
		fmt.Fprintln(w, "All checks passed! Ready to build with cpam.")
	} else {
		fmt.Fprintln(w, "Some checks failed. Please fix the issues above.")
	}
}

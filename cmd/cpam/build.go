package main

import (
	"fmt"

	"github.com/13rac1/cpam/internal/cmake"
	"github.com/13rac1/cpam/internal/generator"
	"github.com/13rac1/cpam/internal/redactor"
	"github.com/13rac1/cpam/internal/types"
	"github.com/spf13/cobra"
)

var (
	buildRelease   bool
	buildDirFlag   string
	buildGenerator string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and build the project with CMake",
	Long: `Runs "cmake -S <source> -B <build> -G <generator> -DCMAKE_BUILD_TYPE=<type>"
followed by "cmake --build <build> --config <type>". The generator comes from
--generator, build.generator, project.build_tool or the host default, in
that order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)
		cfg, override, _, err := loadProjectOrDefault(cmd, p, buildGenerator)
		if err != nil {
			return err
		}

		_, err = runBuild(cmd, cfg, override, buildRelease)
		return err
	},
}

func init() {
	addBuildFlags(buildCmd)
	buildCmd.Flags().StringVar(&buildGenerator, "generator", "", "CMake generator (overrides cpam.toml)")

	rootCmd.AddCommand(buildCmd)
}

// addBuildFlags registers the flags shared by every command that locates
// the build tree.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&buildRelease, "release", false, "use the Release configuration")
	cmd.Flags().StringVar(&buildDirFlag, "build-dir", "", "build directory (overrides build.build_dir)")
}

// resolvedBuild is the outcome of generator and build directory resolution.
type resolvedBuild struct {
	Generator generator.Resolution
	BuildDir  string
	Release   bool
}

// resolveBuild picks the generator and build directory. --build-dir wins
// only when given on the command line.
func resolveBuild(cmd *cobra.Command, cfg *types.CpamConfig, override string, release bool) resolvedBuild {
	res := generator.Resolve(cfg, override, profile)
	if res.UnknownTool() {
		warnf(cmd, "build tool %q not recognized, using %s", res.RawTool, res.Generator)
	}

	buildDir := cfg.BuildDir()
	if f := cmd.Flags().Lookup("build-dir"); f != nil && f.Changed {
		buildDir = buildDirFlag
	}

	return resolvedBuild{Generator: res, BuildDir: buildDir, Release: release}
}

// runBuild configures and builds the project. A configure failure stops
// before the build step.
func runBuild(cmd *cobra.Command, cfg *types.CpamConfig, override string, release bool) (resolvedBuild, error) {
	rb := resolveBuild(cmd, cfg, override, release)
	out := cmd.OutOrStdout()

	c := cmake.New(newRunner(nil, out, cmd.ErrOrStderr()), cfg.SourceDir(), rb.BuildDir)
	c.Generator(rb.Generator.Generator)
	c.BuildType(cmake.BuildTypeFor(release))
	c.Options(cfg.Options())

	ctx := cmd.Context()

	fmt.Fprintf(out, "Configuring %s build with %s in %s\n", cmake.BuildTypeFor(release), rb.Generator.Generator, rb.BuildDir)
	logger.Debug("cmake configure", "args", redactor.RedactAll(c.ConfigureArgs()), "generator_source", rb.Generator.Source.String())
	if err := c.Configure(ctx); err != nil {
		return rb, fmt.Errorf("configure failed: %w", err)
	}

	fmt.Fprintf(out, "Building %s\n", rb.BuildDir)
	logger.Debug("cmake build", "args", c.BuildArgs())
	if err := c.Build(ctx); err != nil {
		return rb, fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintln(out, "Build succeeded.")
	return rb, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/13rac1/cpam/internal/cmake"
	"github.com/13rac1/cpam/internal/config"
	"github.com/13rac1/cpam/internal/locate"
	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/project"
	"github.com/13rac1/cpam/internal/prompt"
	"github.com/13rac1/cpam/internal/types"
	"github.com/13rac1/cpam/internal/uploader"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	assumeYes  bool
)

// Set by setup before any command runs.
var (
	settings       *types.Config
	settingsLoaded bool
	logger         = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// projectDir holds cpam.toml. Build paths in it are relative to the working
// directory.
const projectDir = "."

// Replaced in tests.
var (
	exitFunc  = os.Exit
	profile   = platform.Current()
	probe     = locate.Probe(locate.FileExists)
	newRunner = func(in io.Reader, out, errOut io.Writer) cmake.Runner {
		return cmake.ExecRunner{Stdin: in, Stdout: out, Stderr: errOut}
	}
	newS3Client = func(ctx context.Context, cfg *types.Config) (s3API, error) {
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
)

// s3API is the S3 surface used by publish.
type s3API interface {
	uploader.Client
	s3.ListObjectsV2APIClient
}

var errAborted = errors.New("aborted")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "cpam",
	Short:   "C/C++ project manager - scaffold and build CMake projects",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Long: `cpam scaffolds C, C++ and CUDA projects with a CMakeLists.txt and a
cpam.toml, records dependencies, and drives CMake to configure, build, run
and publish them.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to user settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation")
}

// setup loads user settings and configures logging. Missing settings are
// not an error: every command but publish works with the defaults.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg, settingsLoaded = config.Default(), false
	case err != nil:
		return fmt.Errorf("loading settings from %s: %w", configPath, err)
	default:
		settingsLoaded = true
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	settings = cfg
	logger = config.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	logger.Debug("settings", "path", configPath, "loaded", settingsLoaded, "os", profile.OS)
	return nil
}

func newPrompter(cmd *cobra.Command) *prompt.Prompter {
	return prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
}

// confirm asks q unless --yes was given.
func confirm(p *prompt.Prompter, q string, defaultYes bool) bool {
	if assumeYes {
		return true
	}
	return p.Confirm(q, defaultYes)
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}

// loadProject reads cpam.toml from the project directory. Errors wrap
// project.ErrNotFound or *project.ParseError.
func loadProject() (*types.CpamConfig, error) {
	cfg, err := project.Load(projectDir)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", project.FileName, err)
	}
	return cfg, nil
}

// loadProjectOrDefault is loadProject for build and run. A missing or
// malformed cpam.toml is reported, and after confirmation the defaults are
// used with a generator chosen interactively. The returned generator
// override is the one to build with; defaulted reports that the defaults
// replaced the file.
func loadProjectOrDefault(cmd *cobra.Command, p *prompt.Prompter, override string) (cfg *types.CpamConfig, gen string, defaulted bool, err error) {
	cfg, err = loadProject()
	if err == nil {
		return cfg, override, false, nil
	}

	var parseErr *project.ParseError
	if !errors.Is(err, project.ErrNotFound) && !errors.As(err, &parseErr) {
		return nil, "", false, err
	}

	warnf(cmd, "%v", err)
	if !confirm(p, "Continue with default settings?", true) {
		return nil, "", false, errAborted
	}
	if override == "" && !assumeYes {
		override = p.Generator(profile)
	}
	return project.Default(), override, true, nil
}

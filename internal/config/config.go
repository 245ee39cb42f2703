package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/13rac1/cpam/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where cpam looks for user settings.
	DefaultPath = "~/.cpam/config.yaml"

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultS3Prefix  = "cpam/"
)

// Load reads and validates user settings from the specified path.
// Tilde (~) in paths is expanded to the user's home directory.
func Load(path string) (*types.Config, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
	}

	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns settings with every default applied.
func Default() *types.Config {
	var cfg types.Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for optional config fields.
func applyDefaults(cfg *types.Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaultLogFormat
	}

	if cfg.S3.Prefix == "" {
		cfg.S3.Prefix = defaultS3Prefix
	}

	// Ensure prefix has trailing slash for consistent key building
	if !strings.HasSuffix(cfg.S3.Prefix, "/") {
		cfg.S3.Prefix = cfg.S3.Prefix + "/"
	}
}

// validate checks the fields every command relies on. The S3 section is
// checked separately by ValidateS3.
func validate(cfg *types.Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", cfg.Log.Format)
	}

	if l := cfg.Defaults.Language; l != "" && types.ParseLanguage(l) == types.LanguageUnknown {
		return fmt.Errorf("defaults.language must be c, cpp or cuda (got %q)", l)
	}

	if b := cfg.Defaults.BuildTool; b != "" && types.ParseBuildTool(b) == types.BuildToolUnknown {
		return fmt.Errorf("defaults.build_tool must be make, ninja or vs (got %q)", b)
	}

	return nil
}

// ValidateS3 ensures the publish target is configured.
func ValidateS3(cfg *types.Config) error {
	if cfg.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if cfg.S3.Region == "" {
		return fmt.Errorf("s3.region is required")
	}

	if cfg.Auth.AccessKeyID != "" && cfg.Auth.SecretAccessKey == "" {
		return fmt.Errorf("auth.secret_access_key is required when auth.access_key_id is set")
	}

	return nil
}

const starterConfig = `# cpam user settings

# Pre-answer the "cpam new" prompts. Flags still take precedence.
defaults:
  language: ""    # c, cpp or cuda
  build_tool: ""  # make, ninja or vs
  compiler: ""    # e.g. clang++

log:
  level: info     # debug, info, warn, error
  format: text    # text or json

# Target for "cpam publish".
s3:
  bucket: ""
  region: ""
  prefix: cpam/
  # endpoint: https://minio.example.com:9000
  # force_path_style: true

# Leave empty to use the default AWS credential chain.
auth:
  profile: ""
`

// CreateStarterConfig writes a commented settings file to path. It refuses
// to overwrite an existing file.
func CreateStarterConfig(path string) error {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(expandedPath); err == nil {
		return fmt.Errorf("config file already exists: %s", expandedPath)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Settings may hold credentials.
	if err := os.WriteFile(expandedPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("writing config file %s: %w", expandedPath, err)
	}

	return nil
}

// expandTilde replaces ~ at the start of a path with the user's home directory.
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	if path == "~" {
		return homeDir, nil
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

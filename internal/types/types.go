// Package types defines the core data structures used throughout cpam.
// This includes the cpam.toml project document, the user settings file,
// and the closed sets of languages, build tools and project kinds.
package types

// CpamConfig is the cpam.toml document. Every section is optional; a zero
// value is a valid empty document.
type CpamConfig struct {
	Project      *ProjectConfig    `toml:"project,omitempty"`
	Build        *BuildConfig      `toml:"build,omitempty"`
	Dependencies map[string]string `toml:"dependencies,omitempty"`
}

// ProjectConfig identifies the scaffolded project. Name doubles as the CMake
// target and executable name.
type ProjectConfig struct {
	Name        string `toml:"name"`
	Language    string `toml:"language"`
	BuildTool   string `toml:"build_tool"`
	ProjectType string `toml:"project_type"`
}

// BuildConfig holds build-time parameters. Empty fields mean "use the default".
type BuildConfig struct {
	Generator string   `toml:"generator,omitempty"`
	SourceDir string   `toml:"source_dir,omitempty"`
	BuildDir  string   `toml:"build_dir,omitempty"`
	Options   []string `toml:"options,omitempty"`
}

const (
	DefaultSourceDir = "."
	DefaultBuildDir  = "build"
	// AnyVersion is stored when a dependency is added without a version.
	AnyVersion = "*"
)

// SourceDir returns the configured source directory or ".".
func (c *CpamConfig) SourceDir() string {
	if c != nil && c.Build != nil && c.Build.SourceDir != "" {
		return c.Build.SourceDir
	}
	return DefaultSourceDir
}

// BuildDir returns the configured build directory or "build".
func (c *CpamConfig) BuildDir() string {
	if c != nil && c.Build != nil && c.Build.BuildDir != "" {
		return c.Build.BuildDir
	}
	return DefaultBuildDir
}

// Options returns the extra generator flags in their stored order.
func (c *CpamConfig) Options() []string {
	if c == nil || c.Build == nil {
		return nil
	}
	return c.Build.Options
}

// ProjectName returns the project name, or "" when no [project] section exists.
func (c *CpamConfig) ProjectName() string {
	if c == nil || c.Project == nil {
		return ""
	}
	return c.Project.Name
}

// Config represents the user settings file (~/.cpam/config.yaml).
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
	S3       S3Config       `yaml:"s3"`
	Auth     AuthConfig     `yaml:"auth"`
}

// DefaultsConfig pre-answers the scaffolding prompts.
type DefaultsConfig struct {
	Language  string `yaml:"language"`
	BuildTool string `yaml:"build_tool"`
	Compiler  string `yaml:"compiler"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// S3Config holds the S3-compatible storage target for published executables.
type S3Config struct {
	Bucket         string `yaml:"bucket"`
	Prefix         string `yaml:"prefix"`
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

// AuthConfig holds authentication credentials.
type AuthConfig struct {
	Profile         string `yaml:"profile"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
}

// RemoteProject is a project found under the S3 publish prefix.
type RemoteProject struct {
	Name      string
	Prefix    string
	Artifacts int
	// Modes lists the build configurations published, such as Debug.
	Modes []string
}

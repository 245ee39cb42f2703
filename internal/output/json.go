package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/13rac1/cpam/internal/project"
	"github.com/13rac1/cpam/internal/redactor"
	"github.com/13rac1/cpam/internal/types"
)

// now is replaced in tests.
var now = time.Now

// Dependency is one [dependencies] entry with its classified spec.
type Dependency struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
	Kind string `json:"kind"`
}

// Info is the resolved view of a project used by the info command.
type Info struct {
	Name            string   `json:"name"`
	Language        string   `json:"language,omitempty"`
	ProjectType     string   `json:"projectType,omitempty"`
	Generator       string   `json:"generator"`
	GeneratorSource string   `json:"generatorSource"`
	Layout          string   `json:"layout"`
	SourceDir       string   `json:"sourceDir"`
	BuildDir        string   `json:"buildDir"`
	Options         []string `json:"options"`
	// Executables lists the probed paths in order, primary first.
	Executables  []string `json:"executables"`
	Dependencies int      `json:"dependencies"`
}

// DependenciesOutput is the JSON document printed by deps --json.
type DependenciesOutput struct {
	GeneratedAt  string       `json:"generatedAt"`
	Dependencies []Dependency `json:"dependencies"`
}

// InfoOutput is the JSON document printed by info --json.
type InfoOutput struct {
	GeneratedAt string `json:"generatedAt"`
	Project     Info   `json:"project"`
}

// RemoteOutput is the JSON document printed by publish --list --json.
type RemoteOutput struct {
	GeneratedAt string          `json:"generatedAt"`
	Config      ConfigInfo      `json:"config"`
	Projects    []RemoteProject `json:"projects"`
}

// ConfigInfo holds the publish target for JSON output.
type ConfigInfo struct {
	Bucket   string `json:"bucket"`
	Prefix   string `json:"prefix"`
	Endpoint string `json:"endpoint,omitempty"`
}

// RemoteProject represents a published project in JSON output.
type RemoteProject struct {
	Name      string   `json:"name"`
	Prefix    string   `json:"prefix"`
	Artifacts int      `json:"artifacts"`
	Modes     []string `json:"modes"`
}

// Dependencies returns deps sorted by name with each spec classified.
// Credentials in specs are masked.
func Dependencies(deps map[string]string) []Dependency {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Dependency, 0, len(names))
	for _, name := range names {
		spec := deps[name]
		rows = append(rows, Dependency{
			Name: name,
			Spec: redactor.Redact(spec),
			Kind: project.ClassifySpec(spec).String(),
		})
	}
	return rows
}

// PrintDependenciesJSON prints deps as JSON.
func PrintDependenciesJSON(w io.Writer, deps map[string]string) error {
	return PrintJSON(w, DependenciesOutput{
		GeneratedAt:  timestamp(),
		Dependencies: Dependencies(deps),
	})
}

// PrintInfoJSON prints the resolved project view as JSON.
func PrintInfoJSON(w io.Writer, info Info) error {
	if info.Options == nil {
		info.Options = []string{}
	}
	if info.Executables == nil {
		info.Executables = []string{}
	}
	return PrintJSON(w, InfoOutput{GeneratedAt: timestamp(), Project: info})
}

// PrintRemoteJSON prints published projects and the publish target as JSON.
func PrintRemoteJSON(w io.Writer, projects []types.RemoteProject, cfg *types.Config) error {
	remote := make([]RemoteProject, 0, len(projects))
	for _, p := range projects {
		modes := p.Modes
		if modes == nil {
			modes = []string{}
		}
		remote = append(remote, RemoteProject{
			Name:      p.Name,
			Prefix:    p.Prefix,
			Artifacts: p.Artifacts,
			Modes:     modes,
		})
	}

	return PrintJSON(w, RemoteOutput{
		GeneratedAt: timestamp(),
		Config: ConfigInfo{
			Bucket:   cfg.S3.Bucket,
			Prefix:   cfg.S3.Prefix,
			Endpoint: cfg.S3.Endpoint,
		},
		Projects: remote,
	})
}

// PrintJSON writes v as indented JSON followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

func timestamp() string {
	return now().UTC().Format(time.RFC3339)
}

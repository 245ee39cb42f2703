// Package generator decides which CMake generator a build uses.
//
// Resolution is a pure function of the project document, an optional
// per-invocation override and the host profile. It never fails: build tools
// it does not recognize degrade to the host's Make-family generator and are
// reported through Resolution.Tool so callers can surface them.
package generator

import (
	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/types"
)

// Source records which rule produced a generator name.
type Source int

const (
	// SourceDefault means no project section was present.
	SourceDefault Source = iota
	// SourceOverride means the caller passed an explicit generator.
	SourceOverride
	// SourceConfig means build.generator was set in cpam.toml.
	SourceConfig
	// SourceBuildTool means the name was mapped from project.build_tool.
	SourceBuildTool
)

func (s Source) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceConfig:
		return "build.generator"
	case SourceBuildTool:
		return "project.build_tool"
	default:
		return "default"
	}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Generator string
	Source    Source
	// Tool is the parsed build tool when Source is SourceBuildTool.
	// BuildToolUnknown together with SourceBuildTool means the stored value
	// was not recognized and the default generator was used.
	Tool types.BuildTool
	// RawTool is the build_tool string as stored.
	RawTool string
}

// UnknownTool reports whether an unrecognized build tool fell back to the
// default generator.
func (r Resolution) UnknownTool() bool {
	return r.Source == SourceBuildTool && r.Tool == types.BuildToolUnknown
}

// Resolve picks the generator. First match wins: override, build.generator,
// project.build_tool, host default.
func Resolve(cfg *types.CpamConfig, override string, p platform.Profile) Resolution {
	if override != "" {
		return Resolution{Generator: override, Source: SourceOverride}
	}

	if cfg != nil && cfg.Build != nil && cfg.Build.Generator != "" {
		return Resolution{Generator: cfg.Build.Generator, Source: SourceConfig}
	}

	if cfg != nil && cfg.Project != nil {
		tool := types.ParseBuildTool(cfg.Project.BuildTool)
		return Resolution{
			Generator: ForBuildTool(tool, p),
			Source:    SourceBuildTool,
			Tool:      tool,
			RawTool:   cfg.Project.BuildTool,
		}
	}

	return Resolution{Generator: p.DefaultGenerator, Source: SourceDefault}
}

// ForBuildTool maps a build tool to a generator name for the host.
func ForBuildTool(tool types.BuildTool, p platform.Profile) string {
	switch tool {
	case types.BuildToolNinja:
		return platform.GeneratorNinja
	case types.BuildToolIDE:
		if p.HasIDE() {
			return p.IDEGenerator
		}
		return p.DefaultGenerator
	case types.BuildToolMake:
		return p.DefaultGenerator
	default:
		return p.DefaultGenerator
	}
}

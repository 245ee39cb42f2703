package generator

import (
	"testing"

	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/types"
)

func TestResolve(t *testing.T) {
	linux := platform.ForOS("linux")
	windows := platform.ForOS("windows")

	tests := []struct {
		name        string
		cfg         *types.CpamConfig
		override    string
		profile     platform.Profile
		want        string
		wantSource  Source
		wantUnknown bool
	}{
		{
			name:       "override wins over everything",
			cfg:        &types.CpamConfig{Build: &types.BuildConfig{Generator: "Ninja"}, Project: &types.ProjectConfig{BuildTool: "make"}},
			override:   "Xcode",
			profile:    linux,
			want:       "Xcode",
			wantSource: SourceOverride,
		},
		{
			name:       "build.generator used verbatim regardless of build tool",
			cfg:        &types.CpamConfig{Build: &types.BuildConfig{Generator: "MSYS Makefiles"}, Project: &types.ProjectConfig{BuildTool: "ninja"}},
			profile:    linux,
			want:       "MSYS Makefiles",
			wantSource: SourceConfig,
		},
		{
			name:       "ninja without build section",
			cfg:        &types.CpamConfig{Project: &types.ProjectConfig{BuildTool: "ninja"}},
			profile:    linux,
			want:       "Ninja",
			wantSource: SourceBuildTool,
		},
		{
			name:       "empty generator string falls through",
			cfg:        &types.CpamConfig{Build: &types.BuildConfig{}, Project: &types.ProjectConfig{BuildTool: "ninja"}},
			profile:    linux,
			want:       "Ninja",
			wantSource: SourceBuildTool,
		},
		{
			name:       "make maps to default",
			cfg:        &types.CpamConfig{Project: &types.ProjectConfig{BuildTool: "make"}},
			profile:    linux,
			want:       "Unix Makefiles",
			wantSource: SourceBuildTool,
		},
		{
			name:       "vs on windows",
			cfg:        &types.CpamConfig{Project: &types.ProjectConfig{BuildTool: "vs"}},
			profile:    windows,
			want:       "Visual Studio 17 2022",
			wantSource: SourceBuildTool,
		},
		{
			name:       "vs off windows falls back to make family",
			cfg:        &types.CpamConfig{Project: &types.ProjectConfig{BuildTool: "vs"}},
			profile:    linux,
			want:       "Unix Makefiles",
			wantSource: SourceBuildTool,
		},
		{
			name:        "unrecognized build tool degrades to default",
			cfg:         &types.CpamConfig{Project: &types.ProjectConfig{BuildTool: "bazel"}},
			profile:     linux,
			want:        "Unix Makefiles",
			wantSource:  SourceBuildTool,
			wantUnknown: true,
		},
		{
			name:       "no project and no build",
			cfg:        &types.CpamConfig{},
			profile:    linux,
			want:       "Unix Makefiles",
			wantSource: SourceDefault,
		},
		{
			name:       "nil config",
			cfg:        nil,
			profile:    windows,
			want:       "Unix Makefiles",
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.cfg, tt.override, tt.profile)
			if got.Generator != tt.want {
				t.Errorf("Generator = %q, want %q", got.Generator, tt.want)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %v, want %v", got.Source, tt.wantSource)
			}
			if got.UnknownTool() != tt.wantUnknown {
				t.Errorf("UnknownTool() = %v, want %v", got.UnknownTool(), tt.wantUnknown)
			}
		})
	}
}

func TestResolveConfiguredGeneratorIgnoresBuildTool(t *testing.T) {
	for _, tool := range []string{"make", "ninja", "vs", "", "whatever"} {
		for _, goos := range []string{"linux", "darwin", "windows"} {
			cfg := &types.CpamConfig{
				Project: &types.ProjectConfig{Name: "demo", BuildTool: tool},
				Build:   &types.BuildConfig{Generator: "Custom Generator"},
			}
			got := Resolve(cfg, "", platform.ForOS(goos))
			if got.Generator != "Custom Generator" {
				t.Errorf("tool=%q os=%s: Generator = %q, want %q", tool, goos, got.Generator, "Custom Generator")
			}
		}
	}
}

func TestSourceString(t *testing.T) {
	tests := map[Source]string{
		SourceDefault:   "default",
		SourceOverride:  "override",
		SourceConfig:    "build.generator",
		SourceBuildTool: "project.build_tool",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", s, got, want)
		}
	}
}

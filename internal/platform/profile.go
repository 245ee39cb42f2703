// Package platform describes the host-dependent facts cpam relies on:
// executable suffix, CMake generator names and the directory layouts a build
// may leave the executable in. Resolvers take a Profile value instead of
// consulting runtime.GOOS so they can be exercised for every host in tests.
package platform

import "runtime"

// Profile is the host profile injected into the generator and executable
// resolvers.
type Profile struct {
	// OS is the GOOS value the profile describes.
	OS string
	// ExeSuffix is appended to executable names (".exe" on Windows).
	ExeSuffix string
	// DefaultGenerator is the Make-family generator for the host.
	DefaultGenerator string
	// IDEGenerator is the generator used for the "vs" build tool. Empty when
	// the IDE toolchain is not native to the host.
	IDEGenerator string
	// MultiConfigGenerators lists generator name fragments whose output lands
	// in a per-configuration subdirectory.
	MultiConfigGenerators []string
	// FallbackDirs are the build-dir-relative directories probed, in order,
	// when the predicted executable path is missing. "{name}" expands to the
	// project name.
	FallbackDirs []string
	// NativeCompilers are host compilers tried before the portable ones for C
	// and C++.
	NativeCompilers []string
}

const (
	GeneratorUnixMakefiles = "Unix Makefiles"
	GeneratorNinja         = "Ninja"
	GeneratorVisualStudio  = "Visual Studio 17 2022"
	GeneratorXcode         = "Xcode"
)

// Current returns the profile for the running host.
func Current() Profile {
	return ForOS(runtime.GOOS)
}

// ForOS returns the profile for the given GOOS value. Every OS other than
// windows is treated as POSIX-like.
func ForOS(goos string) Profile {
	switch goos {
	case "windows":
		return Profile{
			OS:                    goos,
			ExeSuffix:             ".exe",
			DefaultGenerator:      GeneratorUnixMakefiles,
			IDEGenerator:          GeneratorVisualStudio,
			MultiConfigGenerators: []string{"Visual Studio", "Ninja Multi-Config"},
			FallbackDirs:          []string{"", "Debug", "Release", "{name}/Debug", "{name}/Release"},
			NativeCompilers:       []string{"cl.exe"},
		}
	case "darwin":
		return Profile{
			OS:                    goos,
			DefaultGenerator:      GeneratorUnixMakefiles,
			MultiConfigGenerators: []string{GeneratorXcode, "Ninja Multi-Config"},
			FallbackDirs:          []string{"", "Debug", "Release"},
		}
	default:
		return Profile{
			OS:                    goos,
			DefaultGenerator:      GeneratorUnixMakefiles,
			MultiConfigGenerators: []string{"Ninja Multi-Config"},
			FallbackDirs:          []string{"", "Debug", "Release"},
		}
	}
}

// HasIDE reports whether the "vs" build tool maps to a native IDE generator.
func (p Profile) HasIDE() bool {
	return p.IDEGenerator != ""
}

// Generators returns the generator names offered interactively, default first.
func (p Profile) Generators() []string {
	gens := []string{p.DefaultGenerator, GeneratorNinja}
	if p.HasIDE() {
		gens = append(gens, p.IDEGenerator)
	}
	for _, g := range p.MultiConfigGenerators {
		if g == GeneratorXcode {
			gens = append(gens, g)
		}
	}
	return gens
}

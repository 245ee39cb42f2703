package types

import "strings"

// Language is the closed set of source languages a project can use.
type Language int

const (
	LanguageUnknown Language = iota
	LanguageC
	LanguageCPP
	LanguageCUDA
)

// ParseLanguage maps a stored language tag to a Language. Unrecognized tags
// map to LanguageUnknown.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c":
		return LanguageC
	case "cpp", "c++", "cxx":
		return LanguageCPP
	case "cuda", "cu":
		return LanguageCUDA
	default:
		return LanguageUnknown
	}
}

func (l Language) String() string {
	switch l {
	case LanguageC:
		return "c"
	case LanguageCPP:
		return "cpp"
	case LanguageCUDA:
		return "cuda"
	default:
		return "unknown"
	}
}

// CMakeName returns the CMake LANGUAGES token. Unknown languages build as C++.
func (l Language) CMakeName() string {
	switch l {
	case LanguageC:
		return "C"
	case LanguageCUDA:
		return "CUDA"
	default:
		return "CXX"
	}
}

// SourceExt returns the extension used for generated sources.
func (l Language) SourceExt() string {
	switch l {
	case LanguageC:
		return ".c"
	case LanguageCUDA:
		return ".cu"
	default:
		return ".cpp"
	}
}

// BuildTool is the closed set of native build tools cpam can target.
type BuildTool int

const (
	BuildToolUnknown BuildTool = iota
	BuildToolMake
	BuildToolNinja
	BuildToolIDE
)

// ParseBuildTool maps a stored build_tool value to a BuildTool. Matching is
// case-insensitive; unrecognized values map to BuildToolUnknown.
func ParseBuildTool(s string) BuildTool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "make":
		return BuildToolMake
	case "ninja":
		return BuildToolNinja
	case "vs":
		return BuildToolIDE
	default:
		return BuildToolUnknown
	}
}

func (b BuildTool) String() string {
	switch b {
	case BuildToolMake:
		return "make"
	case BuildToolNinja:
		return "ninja"
	case BuildToolIDE:
		return "vs"
	default:
		return "unknown"
	}
}

// ProjectType distinguishes executables from libraries.
type ProjectType int

const (
	ProjectTypeUnknown ProjectType = iota
	ProjectTypeBinary
	ProjectTypeLibrary
)

// ParseProjectType accepts "bin"/"binary" and "lib"/"library".
func ParseProjectType(s string) ProjectType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bin", "binary":
		return ProjectTypeBinary
	case "lib", "library":
		return ProjectTypeLibrary
	default:
		return ProjectTypeUnknown
	}
}

func (p ProjectType) String() string {
	switch p {
	case ProjectTypeBinary:
		return "bin"
	case ProjectTypeLibrary:
		return "lib"
	default:
		return "unknown"
	}
}

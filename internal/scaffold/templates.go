package scaffold

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/13rac1/cpam/internal/types"
)

// File is a generated file with a slash-separated path relative to the root.
type File struct {
	Path    string
	Content string
}

const mainC = `#include <stdio.h>

int main(void) {
    printf("Hello, World!\n");
    return 0;
}
`

const mainCPP = `#include <iostream>

int main() {
    std::cout << "Hello, World!" << std::endl;
    return 0;
}
`

const mainCUDA = `#include <stdio.h>

__global__ void hello() {
    printf("Hello, World!\n");
}

int main() {
    hello<<<1, 1>>>();
    cudaDeviceSynchronize();
    return 0;
}
`

var cmakeTemplate = template.Must(template.New("CMakeLists.txt").Parse(`cmake_minimum_required(VERSION 3.10)
{{- if .Compiler}}

set(CMAKE_{{.Lang}}_COMPILER {{.Compiler}})
{{- end}}

project({{.Name}} LANGUAGES {{.Lang}})

set(CMAKE_{{.Lang}}_STANDARD {{.Standard}})
set(CMAKE_{{.Lang}}_STANDARD_REQUIRED ON)
{{if .Library}}
add_library({{.Name}} {{.Source}})
target_include_directories({{.Name}} PUBLIC ${CMAKE_CURRENT_SOURCE_DIR}/include)
{{- else}}
add_executable({{.Name}} {{.Source}})
target_include_directories({{.Name}} PRIVATE ${CMAKE_CURRENT_SOURCE_DIR}/include)
{{- end}}
`))

type cmakeData struct {
	Name     string
	Lang     string
	Standard int
	Compiler string
	Source   string
	Library  bool
}

// standard returns the language standard written to CMakeLists.txt.
func standard(lang types.Language) int {
	switch lang {
	case types.LanguageC:
		return 11
	default:
		return 17
	}
}

// MainSource returns the source file name for the language and project type.
func MainSource(opts Options) string {
	if opts.ProjectType == types.ProjectTypeLibrary {
		return opts.Name + opts.Language.SourceExt()
	}
	return "main" + opts.Language.SourceExt()
}

// CMakeLists renders CMakeLists.txt for opts.
func CMakeLists(opts Options) string {
	data := cmakeData{
		Name:     opts.Name,
		Lang:     opts.Language.CMakeName(),
		Standard: standard(opts.Language),
		Source:   "src/" + MainSource(opts),
		Library:  opts.ProjectType == types.ProjectTypeLibrary,
	}
	if opts.HasCompiler() {
		data.Compiler = opts.Compiler
	}

	var sb strings.Builder
	if err := cmakeTemplate.Execute(&sb, data); err != nil {
		panic(fmt.Sprintf("render CMakeLists.txt: %v", err))
	}
	return sb.String()
}

// Sources returns the source files for opts.
func Sources(opts Options) []File {
	if opts.ProjectType != types.ProjectTypeLibrary {
		var body string
		switch opts.Language {
		case types.LanguageC:
			body = mainC
		case types.LanguageCUDA:
			body = mainCUDA
		default:
			body = mainCPP
		}
		return []File{{Path: "src/" + MainSource(opts), Content: body}}
	}

	header := opts.Name + ".h"
	fn := identifier(opts.Name) + "_hello"
	guard := strings.ToUpper(identifier(opts.Name)) + "_H"

	var hdr strings.Builder
	fmt.Fprintf(&hdr, "#ifndef %s\n#define %s\n\n", guard, guard)
	if opts.Language == types.LanguageC {
		fmt.Fprintf(&hdr, "void %s(void);\n", fn)
	} else {
		fmt.Fprintf(&hdr, "void %s();\n", fn)
	}
	fmt.Fprintf(&hdr, "\n#endif\n")

	var src strings.Builder
	fmt.Fprintf(&src, "#include \"%s\"\n\n", header)
	switch opts.Language {
	case types.LanguageC, types.LanguageCUDA:
		fmt.Fprintf(&src, "#include <stdio.h>\n\n")
		if opts.Language == types.LanguageC {
			fmt.Fprintf(&src, "void %s(void) {\n", fn)
		} else {
			fmt.Fprintf(&src, "void %s() {\n", fn)
		}
		fmt.Fprintf(&src, "    printf(\"Hello from %s!\\n\");\n}\n", opts.Name)
	default:
		fmt.Fprintf(&src, "#include <iostream>\n\nvoid %s() {\n", fn)
		fmt.Fprintf(&src, "    std::cout << \"Hello from %s!\" << std::endl;\n}\n", opts.Name)
	}

	return []File{
		{Path: "include/" + header, Content: hdr.String()},
		{Path: "src/" + MainSource(opts), Content: src.String()},
	}
}

// identifier turns a project name into a C identifier.
func identifier(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || r == '_'):
			sb.WriteRune(r)
		case r < unicode.MaxASCII && unicode.IsDigit(r):
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

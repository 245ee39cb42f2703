// Package prompt asks the interactive questions used by cpam commands.
//
// Every question has a defined answer for every input: empty input, end of
// input and unrecognized text each map to a documented default, and the
// unrecognized case prints a notice so it is never silent.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/13rac1/cpam/internal/platform"
	"github.com/13rac1/cpam/internal/types"
	"golang.org/x/text/cases"
)

// DefaultProjectName is used when the name prompt is left empty.
const DefaultProjectName = "my-project"

// DefaultCompiler means "let CMake pick the compiler".
const DefaultCompiler = "default"

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	fold cases.Caser
}

// New returns a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:   bufio.NewReader(in),
		out:  out,
		fold: cases.Fold(),
	}
}

// readLine returns the next trimmed line. End of input reads as "".
func (p *Prompter) readLine() string {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func (p *Prompter) ask(format string, args ...any) string {
	fmt.Fprintf(p.out, format, args...)
	return p.readLine()
}

func (p *Prompter) equal(a, b string) bool {
	return p.fold.String(a) == p.fold.String(b)
}

// Confirm asks a yes/no question. With defaultYes only "n" or "no" declines;
// otherwise only an answer starting with "y" accepts.
func (p *Prompter) Confirm(question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	answer := p.fold.String(p.ask("%s %s: ", question, hint))
	if defaultYes {
		return answer != "n" && answer != "no"
	}
	return strings.HasPrefix(answer, "y")
}

// ProjectName asks for the project (and directory) name.
func (p *Prompter) ProjectName() string {
	fmt.Fprintln(p.out, "\n=== New project ===")
	fmt.Fprintln(p.out, "Enter the project name. It is also the directory name.")
	fmt.Fprintln(p.out, "Words separated by hyphens are recommended, e.g. hello-world, my-project")
	name := p.ask("> ")

	if name == "" {
		fmt.Fprintf(p.out, "Project name is empty, using %q.\n", DefaultProjectName)
		return DefaultProjectName
	}

	if strings.Contains(name, "_") {
		fmt.Fprintln(p.out, "Note: hyphens (-) are recommended over underscores (_).")
	}

	if strings.Contains(name, " ") {
		fmt.Fprintln(p.out, "Warning: names containing spaces can break the build.")
		if p.Confirm("Replace spaces with hyphens?", true) {
			return strings.ReplaceAll(name, " ", "-")
		}
	}

	return name
}

// Language asks for the source language. Unrecognized input selects C++.
func (p *Prompter) Language() types.Language {
	fmt.Fprintln(p.out, "\nSelect a language:")
	fmt.Fprintln(p.out, "1. C++ (cpp)")
	fmt.Fprintln(p.out, "2. C (c)")
	fmt.Fprintln(p.out, "3. CUDA (cuda)")
	input := p.ask("Choice [1-3] > ")

	switch input {
	case "", "1":
		return types.LanguageCPP
	case "2":
		return types.LanguageC
	case "3":
		return types.LanguageCUDA
	}

	if lang := types.ParseLanguage(input); lang != types.LanguageUnknown {
		return lang
	}
	fmt.Fprintf(p.out, "Note: %q not recognized, using C++.\n", input)
	return types.LanguageCPP
}

// BuildTool asks for the build tool. The IDE option is offered only when
// the host has an IDE generator. Unrecognized input selects make.
func (p *Prompter) BuildTool(profile platform.Profile) types.BuildTool {
	fmt.Fprintln(p.out, "\nSelect a build tool:")
	fmt.Fprintln(p.out, "1. Make (make)")
	fmt.Fprintln(p.out, "2. Ninja (ninja)")
	if profile.HasIDE() {
		fmt.Fprintf(p.out, "3. Visual Studio (vs) - %s\n", profile.IDEGenerator)
	}
	input := p.ask("Choice > ")

	switch input {
	case "", "1":
		return types.BuildToolMake
	case "2":
		return types.BuildToolNinja
	case "3":
		if profile.HasIDE() {
			return types.BuildToolIDE
		}
	}

	tool := types.ParseBuildTool(input)
	if tool == types.BuildToolIDE && !profile.HasIDE() {
		tool = types.BuildToolUnknown
	}
	if tool != types.BuildToolUnknown {
		return tool
	}
	fmt.Fprintf(p.out, "Note: %q not recognized, using make.\n", input)
	return types.BuildToolMake
}

// Compiler picks one of the detected compilers. With none detected it
// returns DefaultCompiler, with one it is selected without asking.
// Otherwise the answer may be a list number or a compiler name; anything
// else selects the first candidate.
func (p *Prompter) Compiler(candidates []string) string {
	switch len(candidates) {
	case 0:
		fmt.Fprintln(p.out, "\nNo compiler detected, CMake will choose one.")
		return DefaultCompiler
	case 1:
		fmt.Fprintf(p.out, "\nDetected compiler: %s\n", candidates[0])
		return candidates[0]
	}

	fmt.Fprintln(p.out, "\nSelect a compiler:")
	for i, c := range candidates {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, c)
	}
	input := p.ask("Choice [1-%d] > ", len(candidates))

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(candidates) {
		return candidates[n-1]
	}
	for _, c := range candidates {
		if p.equal(input, c) {
			return c
		}
	}
	if input != "" {
		fmt.Fprintf(p.out, "Note: %q not recognized, using %s.\n", input, candidates[0])
	}
	return candidates[0]
}

// Generator asks for a CMake generator. A list number selects that
// generator, other text is used verbatim, and empty input selects the host
// default.
func (p *Prompter) Generator(profile platform.Profile) string {
	gens := profile.Generators()
	fmt.Fprintln(p.out, "Select a CMake generator:")
	for i, g := range gens {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, g)
	}
	input := p.ask("Choice [1-%d]: ", len(gens))

	if input == "" {
		return profile.DefaultGenerator
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(gens) {
			return gens[n-1]
		}
		fmt.Fprintf(p.out, "Note: %d is out of range, using %s.\n", n, profile.DefaultGenerator)
		return profile.DefaultGenerator
	}
	return input
}

// ExecutableName asks for the name of the program to run.
func (p *Prompter) ExecutableName() string {
	fmt.Fprintln(p.out, "Enter the executable name:")
	return p.ask("> ")
}

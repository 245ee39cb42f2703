package main

import (
	"fmt"
	"strings"

	"github.com/13rac1/cpam/internal/discover"
	"github.com/13rac1/cpam/internal/prompt"
	"github.com/13rac1/cpam/internal/scaffold"
	"github.com/13rac1/cpam/internal/types"
	"github.com/spf13/cobra"
)

var (
	newProjectType string
	newLanguage    string
	newBuildTool   string
	newCompiler    string
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new C, C++ or CUDA project",
	Long: `Creates <name>/ with include/, src/ and lib/ directories, a starter source
file, a CMakeLists.txt and a cpam.toml. Values not given as flags or in the
user settings are asked for interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)

		opts, err := newOptions(cmd, p, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\nProject summary:")
		fmt.Fprintf(out, "  Name:       %s\n", opts.Name)
		fmt.Fprintf(out, "  Type:       %s\n", opts.ProjectType)
		fmt.Fprintf(out, "  Language:   %s\n", opts.Language)
		fmt.Fprintf(out, "  Build tool: %s\n", opts.BuildTool)
		if opts.HasCompiler() {
			fmt.Fprintf(out, "  Compiler:   %s\n", opts.Compiler)
		} else {
			fmt.Fprintf(out, "  Compiler:   %s\n", prompt.DefaultCompiler)
		}

		if !confirm(p, "Create project?", true) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
		if scaffold.Exists(projectDir, opts.Name) &&
			!confirm(p, fmt.Sprintf("Directory %q already exists. Overwrite generated files?", opts.Name), false) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}

		res, err := scaffold.Create(projectDir, opts)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			warnf(cmd, "%v", w)
		}

		fmt.Fprintf(out, "\nCreated %s:\n", res.Root)
		for _, f := range res.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintf(out, "  cd %s\n", opts.Name)
		fmt.Fprintln(out, "  cpam build")
		if opts.ProjectType == types.ProjectTypeBinary {
			fmt.Fprintln(out, "  cpam run")
		}
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newProjectType, "project-type", "bin", "project type (bin, lib)")
	newCmd.Flags().StringVar(&newLanguage, "language", "", "source language (c, cpp, cuda)")
	newCmd.Flags().StringVar(&newBuildTool, "build-tool", "", "build tool (make, ninja, vs)")
	newCmd.Flags().StringVar(&newCompiler, "compiler", "", "compiler command, or \"default\" to let CMake choose")

	rootCmd.AddCommand(newCmd)
}

// newOptions resolves each value from flags, then user settings, then an
// interactive prompt.
func newOptions(cmd *cobra.Command, p *prompt.Prompter, args []string) (scaffold.Options, error) {
	opts := scaffold.Options{Profile: profile}

	if len(args) == 1 {
		opts.Name = strings.TrimSpace(args[0])
	} else {
		opts.Name = p.ProjectName()
	}
	if opts.Name == "" {
		return opts, fmt.Errorf("project name is required")
	}

	opts.ProjectType = types.ParseProjectType(newProjectType)
	if opts.ProjectType == types.ProjectTypeUnknown {
		return opts, fmt.Errorf("unknown project type %q (want bin or lib)", newProjectType)
	}

	switch lang := firstSet(newLanguage, settings.Defaults.Language); {
	case lang != "":
		opts.Language = types.ParseLanguage(lang)
		if opts.Language == types.LanguageUnknown {
			return opts, fmt.Errorf("unknown language %q (want c, cpp or cuda)", lang)
		}
	default:
		opts.Language = p.Language()
	}

	switch tool := firstSet(newBuildTool, settings.Defaults.BuildTool); {
	case tool != "":
		opts.BuildTool = types.ParseBuildTool(tool)
		if opts.BuildTool == types.BuildToolUnknown {
			return opts, fmt.Errorf("unknown build tool %q (want make, ninja or vs)", tool)
		}
	default:
		opts.BuildTool = p.BuildTool(profile)
	}

	if compiler := firstSet(newCompiler, settings.Defaults.Compiler); compiler != "" {
		opts.Compiler = compiler
	} else {
		runner := newRunner(nil, nil, nil)
		found := discover.Compilers(cmd.Context(), opts.Language, profile, runner)
		logger.Debug("compilers detected", "language", opts.Language.String(), "found", found)
		opts.Compiler = p.Compiler(found)
	}

	return opts, nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

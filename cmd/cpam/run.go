package main

import (
	"fmt"

	"github.com/13rac1/cpam/internal/cmake"
	"github.com/13rac1/cpam/internal/locate"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the project and run its executable",
	Long: `Builds the project like "cpam build", then finds the executable in the
build directory and runs it with the terminal attached. Multi-configuration
generators place it under Debug/ or Release/; other common layouts are
probed when the predicted path is missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)
		cfg, override, defaulted, err := loadProjectOrDefault(cmd, p, "")
		if err != nil {
			return err
		}
		if cfg.Project == nil && !defaulted {
			warnf(cmd, "cpam.toml has no [project] section")
			if !confirm(p, "Build anyway?", true) {
				return errAborted
			}
		}

		rb, err := runBuild(cmd, cfg, override, buildRelease)
		if err != nil {
			return err
		}

		name := cfg.ProjectName()
		if name == "" {
			name = p.ExecutableName()
		}
		if name == "" {
			return fmt.Errorf("executable name is required")
		}

		req := locate.Request{
			BuildDir:  rb.BuildDir,
			Name:      name,
			Generator: rb.Generator.Generator,
			Release:   rb.Release,
		}
		exe, err := locate.Resolve(req, profile, probe)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Running %s\n", exe)
		runner := newRunner(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err := runner.Run(cmd.Context(), cmake.Command{Name: exe}); err != nil {
			return fmt.Errorf("running %s: %w", name, err)
		}
		return nil
	},
}

func init() {
	addBuildFlags(runCmd)

	rootCmd.AddCommand(runCmd)
}

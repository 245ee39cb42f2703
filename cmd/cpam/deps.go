package main

import (
	"fmt"

	"github.com/13rac1/cpam/internal/output"
	"github.com/13rac1/cpam/internal/project"
	"github.com/13rac1/cpam/internal/redactor"
	"github.com/spf13/cobra"
)

var (
	addVersion string
	addSource  string
	depsJSON   bool
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a dependency in cpam.toml",
	Long: `Records a dependency under [dependencies]. With --source the value is
"<source>#<version>" (or just the source), otherwise the version, or "*" when
neither is given. An existing entry is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}

		value, err := project.AddDependency(cfg, args[0], addVersion, addSource)
		if err != nil {
			return err
		}
		if kind := project.ClassifySpec(value); kind == project.SpecUnknown {
			logger.Warn("dependency spec not recognized as a version or source", "name", args[0], "spec", redactor.Redact(value))
		}

		if err := project.Save(projectDir, cfg); err != nil {
			return fmt.Errorf("saving %s: %w", project.FileName, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %s = %q\n", args[0], redactor.Redact(value))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a dependency from cpam.toml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}

		if err := project.RemoveDependency(cfg, args[0]); err != nil {
			return fmt.Errorf("removing %s: %w", args[0], err)
		}

		if err := project.Save(projectDir, cfg); err != nil {
			return fmt.Errorf("saving %s: %w", project.FileName, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "List the dependencies in cpam.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}

		if depsJSON {
			if err := output.PrintDependenciesJSON(cmd.OutOrStdout(), cfg.Dependencies); err != nil {
				return fmt.Errorf("printing JSON output: %w", err)
			}
			return nil
		}
		output.PrintDependencies(cmd.OutOrStdout(), cfg.Dependencies)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addVersion, "version", "", "version or version constraint")
	addCmd.Flags().StringVar(&addSource, "source", "", "source location (git URL or path)")
	depsCmd.Flags().BoolVar(&depsJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(depsCmd)
}

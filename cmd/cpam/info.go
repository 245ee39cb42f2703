package main

import (
	"fmt"

	"github.com/13rac1/cpam/internal/locate"
	"github.com/13rac1/cpam/internal/output"
	"github.com/13rac1/cpam/internal/redactor"
	"github.com/13rac1/cpam/internal/types"
	"github.com/spf13/cobra"
)

var (
	infoJSON      bool
	infoGenerator string
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved build settings of the project",
	Long: `Shows the project, the generator cpam would use and where it came from,
the source and build directories, extra CMake options and the paths probed
for the executable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProject()
		if err != nil {
			return err
		}

		info := projectInfo(resolveBuild(cmd, cfg, infoGenerator, buildRelease), cfg)

		if infoJSON {
			if err := output.PrintInfoJSON(cmd.OutOrStdout(), info); err != nil {
				return fmt.Errorf("printing JSON output: %w", err)
			}
			return nil
		}
		output.PrintInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

func init() {
	addBuildFlags(infoCmd)
	infoCmd.Flags().StringVar(&infoGenerator, "generator", "", "CMake generator (overrides cpam.toml)")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(infoCmd)
}

func projectInfo(rb resolvedBuild, cfg *types.CpamConfig) output.Info {
	info := output.Info{
		Name:            cfg.ProjectName(),
		Generator:       rb.Generator.Generator,
		GeneratorSource: rb.Generator.Source.String(),
		Layout:          locate.Classify(rb.Generator.Generator, profile).String(),
		SourceDir:       cfg.SourceDir(),
		BuildDir:        rb.BuildDir,
		Options:         redactor.RedactAll(cfg.Options()),
		Dependencies:    len(cfg.Dependencies),
	}
	if cfg.Project != nil {
		info.Language = cfg.Project.Language
		info.ProjectType = cfg.Project.ProjectType
	}

	if info.Name != "" {
		plan := locate.Predict(locate.Request{
			BuildDir:  rb.BuildDir,
			Name:      info.Name,
			Generator: rb.Generator.Generator,
			Release:   rb.Release,
		}, profile)
		info.Executables = plan.Candidates()
	}
	return info
}

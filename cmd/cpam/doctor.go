package main

import (
	"github.com/13rac1/cpam/internal/doctor"
	"github.com/spf13/cobra"
)

var doctorGenerator string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project and the build toolchain",
	Long: `Checks that cpam.toml is present and valid, that cmake and the generator's
build tool are on PATH, that a compiler for the project language runs, and
whether the executable has been built.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := doctor.Inputs{
			Dir:       projectDir,
			Profile:   profile,
			Generator: doctorGenerator,
			Runner:    newRunner(nil, nil, nil),
			Probe:     probe,
			Release:   buildRelease,
		}
		if f := cmd.Flags().Lookup("build-dir"); f.Changed {
			in.BuildDir = buildDirFlag
		}

		if !doctor.RunChecks(cmd.Context(), cmd.OutOrStdout(), in) {
			exitFunc(1)
		}
		return nil
	},
}

func init() {
	addBuildFlags(doctorCmd)
	doctorCmd.Flags().StringVar(&doctorGenerator, "generator", "", "CMake generator (overrides cpam.toml)")

	rootCmd.AddCommand(doctorCmd)
}

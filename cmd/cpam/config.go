package main

import (
	"fmt"

	"github.com/13rac1/cpam/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter settings file",
	Long: `Writes a commented starter settings file to the --config path. An existing
file is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CreateStarterConfig(configPath); err != nil {
			return err
		}
		printWelcomeMessage(cmd, configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func printWelcomeMessage(cmd *cobra.Command, configPath string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Welcome to cpam!")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "A starter settings file has been created at:\n")
	fmt.Fprintf(out, "  %s\n", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To publish builds, edit this file and configure:")
	fmt.Fprintln(out, "  1. s3.bucket - Your S3 bucket name")
	fmt.Fprintln(out, "  2. s3.region - Your AWS region")
	fmt.Fprintln(out, "  3. auth.profile - Your AWS profile (or use static credentials)")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "For S3-compatible providers (MinIO, Backblaze B2, etc.):")
	fmt.Fprintln(out, "  - Set s3.endpoint to your provider's endpoint URL")
	fmt.Fprintln(out, "  - Set s3.force_path_style: true if required")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "The defaults section pre-answers the cpam new prompts.")
}

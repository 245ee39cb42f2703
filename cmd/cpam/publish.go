package main

import (
	"errors"
	"fmt"

	"github.com/13rac1/cpam/internal/cmake"
	"github.com/13rac1/cpam/internal/config"
	"github.com/13rac1/cpam/internal/discover"
	"github.com/13rac1/cpam/internal/locate"
	"github.com/13rac1/cpam/internal/output"
	"github.com/13rac1/cpam/internal/uploader"
	"github.com/spf13/cobra"
)

var (
	publishDryRun    bool
	publishList      bool
	publishJSON      bool
	publishGenerator string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the built executable to S3-compatible storage",
	Long: `Uploads the built executable to s3://<bucket>/<prefix><project>/<Debug|Release>/<file>.
A JSON index at <prefix>.index.json records the size and modification time of
every published file, so an unchanged build is skipped. With --list, shows
the projects already published under the prefix.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !settingsLoaded && configPath == config.DefaultPath {
			if err := config.CreateStarterConfig(configPath); err != nil {
				return fmt.Errorf("creating starter config: %w", err)
			}
			printWelcomeMessage(cmd, configPath)
			exitFunc(0)
			return nil
		}
		if err := config.ValidateS3(settings); err != nil {
			return fmt.Errorf("publish target in %s: %w", configPath, err)
		}

		ctx := cmd.Context()
		client, err := newS3Client(ctx, settings)
		if err != nil {
			return fmt.Errorf("creating S3 client: %w", err)
		}
		logger.Debug("s3 client", "bucket", settings.S3.Bucket, "credentials", config.CredentialSource(settings))

		if publishList {
			projects, err := discover.DiscoverRemote(ctx, client, settings.S3.Bucket, settings.S3.Prefix)
			if err != nil {
				return fmt.Errorf("listing published projects: %w", err)
			}
			if publishJSON {
				return output.PrintRemoteJSON(cmd.OutOrStdout(), projects, settings)
			}
			output.PrintRemoteProjects(cmd.OutOrStdout(), projects)
			return nil
		}

		cfg, err := loadProject()
		if err != nil {
			return err
		}
		name := cfg.ProjectName()
		if name == "" {
			return errors.New("cpam.toml has no [project] name to publish under")
		}

		rb := resolveBuild(cmd, cfg, publishGenerator, buildRelease)
		mode := cmake.BuildTypeFor(rb.Release)
		exe, err := locate.Resolve(locate.Request{
			BuildDir:  rb.BuildDir,
			Name:      name,
			Generator: rb.Generator.Generator,
			Release:   rb.Release,
		}, profile, probe)
		if err != nil {
			return fmt.Errorf("%w; run cpam build first", err)
		}

		a, err := uploader.NewArtifact(settings.S3.Prefix, name, mode, rb.Generator.Generator, exe)
		if err != nil {
			return err
		}

		pub := uploader.New(settings, client, cmd.OutOrStdout(), logger)
		res, err := pub.Publish(ctx, a, publishDryRun)
		if err != nil {
			return err
		}
		if res.Uploaded {
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", res.Key)
		}
		return nil
	},
}

func init() {
	addBuildFlags(publishCmd)
	publishCmd.Flags().StringVar(&publishGenerator, "generator", "", "CMake generator (overrides cpam.toml)")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "show what would be uploaded without uploading")
	publishCmd.Flags().BoolVar(&publishList, "list", false, "list published projects instead of uploading")
	publishCmd.Flags().BoolVar(&publishJSON, "json", false, "with --list, output in JSON format")

	rootCmd.AddCommand(publishCmd)
}

package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "build [input-folder]",
		Short: "Generate projects and prepare a native build",
		Long: `Generate native build projects for the selected profile.

kiln does not invoke compilers itself; building happens through the
generated projects (msbuild, xcodebuild, make, gradle).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext(args)
			if err != nil {
				return err
			}
			if err := resolveProfile(ctx.Profiles, &profile); err != nil {
				return err
			}
			if err := generate(args, nil); err != nil {
				return err
			}

			log.Info().Str("profile", profile).Msg("Projects generated")
			fmt.Printf("Build the %s configuration with the native tooling in %s\n",
				profile, ctx.BuildDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "build profile (default Debug)")

	return cmd
}

// resolveProfile defaults the profile and rejects names outside the catalog.
func resolveProfile(catalog []string, profile *string) error {
	if *profile == "" {
		*profile = defaultProfile(catalog)
		return nil
	}
	for _, p := range catalog {
		if p == *profile {
			return nil
		}
	}
	return fmt.Errorf("unknown profile %q (have: %v)", *profile, catalog)
}

func defaultProfile(catalog []string) string {
	for _, p := range catalog {
		if p == "Debug" {
			return p
		}
	}
	return catalog[0]
}

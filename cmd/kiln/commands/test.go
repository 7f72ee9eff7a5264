package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "test [input-folder]",
		Short: "Generate projects for the test profile",
		Long: `Generate native build projects so the project's tests can be built and
run with the native tooling. kiln does not execute test binaries itself.`,
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

			fmt.Printf("Projects generated; run the %s tests with the native tooling in %s\n",
				profile, ctx.BuildDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "build profile (default Debug)")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilnproj/kiln/pkg/config"
)

func newRunCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "run [input-folder]",
		Short: "Generate projects and report the runnable targets",
		Long: `Generate native build projects and list the targets that produce a
runnable artifact. Running happens through the generated projects;
kiln does not launch binaries itself.`,
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

			var runnable []string
			for i := 0; i < ctx.Targets(); i++ {
				switch ctx.EffectiveType(i) {
				case config.TargetConsole, config.TargetApplication:
					name, _ := ctx.Target(i)
					runnable = append(runnable, name)
				}
			}
			if len(runnable) == 0 {
				return fmt.Errorf("project %s has no runnable target", ctx.Project.Info.Name)
			}

			fmt.Printf("Runnable targets (%s): %v\nBuild and run them from %s\n",
				profile, runnable, ctx.BuildDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "build profile (default Debug)")

	return cmd
}

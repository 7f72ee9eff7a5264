package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/platform"
	"github.com/kilnproj/kiln/pkg/resolve"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [input-folder]",
		Short: "Validate the project configuration",
		Long: `Validate the project configuration without generating anything.

This command checks:
  - Kiln.toml syntax and schema conformance
  - the minimum tool version gate
  - extends references and cycles
  - platform/architecture filter combinations against the platform registry`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext(args)
			if err != nil {
				return err
			}

			if err := checkFilters(ctx); err != nil {
				return err
			}

			log.Info().
				Str("project", ctx.Project.Info.Name).
				Int("targets", ctx.Targets()).
				Strs("profiles", ctx.Profiles).
				Msg("Project configuration is valid")
			fmt.Println("OK")
			return nil
		},
	}

	return cmd
}

// checkFilters validates every declared platform/architecture pair against
// the registry: a filter naming a platform together with architectures none
// of which that platform supports can never build anything.
func checkFilters(ctx *resolve.Context) error {
	if err := checkFilter("project", &ctx.Project.Info.TargetFilter); err != nil {
		return err
	}
	for i := 0; i < ctx.Targets(); i++ {
		name, t := ctx.Target(i)
		if err := checkFilter("target "+name, &t.TargetFilter); err != nil {
			return err
		}
	}
	return nil
}

func checkFilter(scope string, f *config.TargetFilter) error {
	if len(f.Architectures) == 0 {
		return nil
	}
	for _, pt := range f.Platforms {
		p, ok := platform.ByType(pt)
		if !ok {
			return config.NewProjectError(
				fmt.Sprintf("%s: unknown platform %q", scope, pt), nil)
		}
		supported := false
		for _, a := range f.Architectures {
			if p.SupportsArchitecture(a) {
				supported = true
				break
			}
		}
		if !supported {
			return config.NewProjectError(
				fmt.Sprintf("%s: platform %s supports none of the declared architectures", scope, pt.DisplayName()), nil)
		}
	}
	return nil
}

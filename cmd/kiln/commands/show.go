package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kilnproj/kiln/pkg/config"
)

func newShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [input-folder]",
		Short: "Show the resolved project",
		Long: `Show the resolved project: targets with their effective types and file
counts, and the shared profile catalog every generated format exposes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			info := ctx.Project.Info
			fmt.Fprintf(out, "Project: %s %s\n", info.Name, info.Version)
			if info.Description != "" {
				fmt.Fprintf(out, "%s\n", info.Description)
			}
			fmt.Fprintf(out, "Platforms: %s\n", platformList(info.Platforms))
			fmt.Fprintf(out, "Profiles:  %s\n\n", strings.Join(ctx.Profiles, ", "))

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Target", "Type", "Sources", "Extends", "Platforms"})
			for i := 0; i < ctx.Targets(); i++ {
				name, target := ctx.Target(i)
				t.AppendRow(table.Row{
					name,
					ctx.EffectiveType(i),
					len(ctx.ComposedSources(i)),
					strings.Join(target.Extends, ", "),
					platformList(target.Platforms),
				})
			}
			t.Render()

			return nil
		},
	}

	return cmd
}

// platformList renders a platform filter; an empty filter matches everything.
func platformList(platforms []config.PlatformType) string {
	if len(platforms) == 0 {
		return "all"
	}
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.DisplayName()
	}
	return strings.Join(names, ", ")
}

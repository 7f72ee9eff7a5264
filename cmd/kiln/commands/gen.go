package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/gen"
	"github.com/kilnproj/kiln/pkg/platform"
	"github.com/kilnproj/kiln/pkg/resolve"
)

func newGenCommand() *cobra.Command {
	var (
		formats []string
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "gen [input-folder]",
		Short: "Generate native build projects",
		Long: `Generate native build projects for every platform the project targets.

Each output format runs when at least one of the project's platforms is
covered by it. An empty platform filter means all platforms.`,
		Example: `  # Generate into ./build from the current directory
  kiln gen

  # Generate only the Visual Studio solution
  kiln gen --format vs ./myproject

  # Regenerate whenever the project changes
  kiln gen --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := generate(args, formats); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndRegenerate(cmd, args, formats)
		},
	}

	cmd.Flags().StringSliceVar(&formats, "format", nil,
		fmt.Sprintf("restrict output formats (%s)", strings.Join(gen.Names(), ", ")))
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and regenerate on changes")

	return cmd
}

func generate(args, formats []string) error {
	ctx, err := loadContext(args)
	if err != nil {
		return err
	}

	selected, err := selectGenerators(ctx, formats)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		log.Warn().Msg("No output format applies to the project's platforms")
		return nil
	}

	for _, name := range selected {
		log.Info().Str("format", name).Str("dir", ctx.BuildDir).Msg("Generating")
		if err := gen.All()[name].Run(ctx); err != nil {
			return fmt.Errorf("%s generator: %w", name, err)
		}
	}
	return nil
}

// selectGenerators picks the formats to run: the requested ones, or every
// registered format that covers at least one project platform.
func selectGenerators(ctx *resolve.Context, formats []string) ([]string, error) {
	all := gen.All()

	if len(formats) > 0 {
		for _, name := range formats {
			if _, ok := all[name]; !ok {
				return nil, fmt.Errorf("unknown output format %q (have: %s)",
					name, strings.Join(gen.Names(), ", "))
			}
		}
		return formats, nil
	}

	platforms := ctx.Project.Info.Platforms
	if len(platforms) == 0 {
		for _, p := range platform.All() {
			platforms = append(platforms, p.Type())
		}
	}

	var selected []string
	for _, name := range gen.Names() {
		for _, p := range platforms {
			if all[name].SupportsPlatform(p) {
				selected = append(selected, name)
				break
			}
		}
	}
	return selected, nil
}

// watchAndRegenerate blocks until the command context is cancelled,
// rerunning generation whenever the input tree changes.
func watchAndRegenerate(cmd *cobra.Command, args, formats []string) error {
	inputDir := "."
	if len(args) > 0 {
		inputDir = args[0]
	}
	inputDir, err := filepath.Abs(inputDir)
	if err != nil {
		return err
	}

	outDir := buildDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(inputDir, outDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(inputDir); err != nil {
		return err
	}

	log.Info().Str("dir", inputDir).Msg("Watching for changes")
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Output written by the previous pass must not retrigger.
			if strings.HasPrefix(event.Name, outDir) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			if err := generate(args, formats); err != nil {
				if config.IsSchema(err) || config.IsProject(err) || config.IsReference(err) || config.IsVersion(err) {
					// Keep watching through transient config breakage.
					log.Error().Err(err).Msg("Regeneration failed")
					continue
				}
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watcher error")
		}
	}
}

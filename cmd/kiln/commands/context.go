package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/files"
	"github.com/kilnproj/kiln/pkg/resolve"
)

// loadContext runs the whole front half of a kiln invocation: decode the
// config, resolve file lists, and assemble the read-only context every
// subcommand consumes. The input folder is the optional positional argument,
// defaulting to the current directory.
func loadContext(args []string) (*resolve.Context, error) {
	inputDir := "."
	if len(args) > 0 {
		inputDir = args[0]
	}
	inputDir, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, err
	}

	cfgPath := configName
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(inputDir, cfgPath)
	}

	proj, err := config.Load(cfgPath, toolVersion)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("config", cfgPath).
		Str("project", proj.Info.Name).
		Int("targets", len(proj.TargetNames)).
		Msg("Loaded project configuration")

	outDir := buildDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(inputDir, outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	sources, resources, assets, err := files.ResolveAll(inputDir, proj)
	if err != nil {
		return nil, err
	}
	metafiles, err := files.Metafiles(inputDir)
	if err != nil {
		return nil, err
	}
	// The output directory is not project material.
	if rel, err := filepath.Rel(inputDir, outDir); err == nil {
		kept := metafiles[:0]
		for _, f := range metafiles {
			if f.Path != rel {
				kept = append(kept, f)
			}
		}
		metafiles = kept
	}

	env := config.LoadEnv()
	log.Debug().Stringer("env", env).Msg("Captured build environment")

	return resolve.NewContext(proj, env, inputDir, outDir, sources, resources, assets, metafiles)
}

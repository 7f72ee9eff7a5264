package gen

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/resolve"
)

// CMake emits a CMakeLists.txt. The Android toolchain consumes it through
// the Gradle project; it is also usable standalone.
type CMake struct{}

// SupportsPlatform implements Generator.
func (CMake) SupportsPlatform(p config.PlatformType) bool {
	assertConcrete(p)
	return p == config.PlatformAndroid
}

// Run implements Generator.
func (CMake) Run(ctx *resolve.Context) error {
	f, err := os.Create(filepath.Join(ctx.BuildDir, "CMakeLists.txt"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeCMakeLists(w, ctx)
	return w.Flush()
}

func writeCMakeLists(w *bufio.Writer, ctx *resolve.Context) {
	const platform = config.PlatformAndroid
	const arch = config.ArchARM64

	info := ctx.Project.Info
	fmt.Fprintf(w, "# Generated by kiln. Do not edit.\n")
	fmt.Fprintf(w, "cmake_minimum_required(VERSION 3.10.2)\n")
	fmt.Fprintf(w, "project(%s VERSION %s LANGUAGES C CXX)\n\n", info.Name, info.Version)

	src := filepath.ToSlash(ctx.InputRel)

	// Profile settings become per-config global flags; CMAKE_BUILD_TYPE
	// selects among the same shared profile axis every format exposes.
	fmt.Fprintf(w, "set(CMAKE_CONFIGURATION_TYPES \"%s\")\n\n", strings.Join(ctx.Profiles, ";"))

	for i := 0; i < ctx.Targets(); i++ {
		if !ctx.Buildable(i, platform) || !ctx.EffectiveType(i).Compiled() {
			continue
		}
		name, target := ctx.Target(i)

		var srcs []string
		for _, file := range ctx.ComposedSources(i) {
			if !file.Dir && target.MatchFile(file.Path, platform) && compiledExt(file.Ext()) {
				srcs = append(srcs, path.Join(src, file.Path))
			}
		}

		switch ctx.EffectiveType(i) {
		case config.TargetStaticLibrary:
			fmt.Fprintf(w, "add_library(%s STATIC\n  %s)\n", name, strings.Join(srcs, "\n  "))
		case config.TargetSharedLibrary:
			fmt.Fprintf(w, "add_library(%s SHARED\n  %s)\n", name, strings.Join(srcs, "\n  "))
		default:
			fmt.Fprintf(w, "add_executable(%s\n  %s)\n", name, strings.Join(srcs, "\n  "))
		}

		if dirs := ctx.ComposedIncludeDirs(i); len(dirs) > 0 {
			fmt.Fprintf(w, "target_include_directories(%s PRIVATE %s)\n",
				name, strings.Join(prefixAll(dirs, src+"/"), " "))
		}
		if defines := ctx.ComposedDefines(i); len(defines) > 0 {
			fmt.Fprintf(w, "target_compile_definitions(%s PRIVATE %s)\n",
				name, strings.Join(defines, " "))
		}
		if libs := ctx.ComposedLibs(i); len(libs) > 0 {
			fmt.Fprintf(w, "target_link_libraries(%s PRIVATE %s)\n",
				name, strings.Join(libs, " "))
		}

		for _, profile := range ctx.Profiles {
			s := ctx.EffectiveSettings(i, profile, platform, arch)
			flags := cFlags(s, true)
			if len(flags) == 0 {
				continue
			}
			fmt.Fprintf(w, "target_compile_options(%s PRIVATE $<$<CONFIG:%s>:%s>)\n",
				name, profile, strings.Join(flags, ";"))
		}

		if s := settingsFor(ctx, i); s.CXXStandard != nil {
			fmt.Fprintf(w, "set_target_properties(%s PROPERTIES CXX_STANDARD %d CXX_STANDARD_REQUIRED YES CXX_EXTENSIONS NO)\n",
				name, int(*s.CXXStandard))
		}
		fmt.Fprintf(w, "\n")
	}
}

// settingsFor is the profile-independent layer: target over project.
func settingsFor(ctx *resolve.Context, i int) config.Settings {
	_, t := ctx.Target(i)
	return config.Combine(t.Settings, ctx.Project.Info.Settings)
}

func prefixAll(in []string, prefix string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = prefix + v
	}
	return out
}

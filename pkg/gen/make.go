package gen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/resolve"
)

// Make emits a single Makefile driving every Linux-buildable target, with
// one flag set per profile selected through the CONFIG variable.
type Make struct{}

// SupportsPlatform implements Generator.
func (Make) SupportsPlatform(p config.PlatformType) bool {
	assertConcrete(p)
	return p == config.PlatformLinux || p == config.PlatformHTML5
}

// Run implements Generator.
func (Make) Run(ctx *resolve.Context) error {
	f, err := os.Create(filepath.Join(ctx.BuildDir, "Makefile"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeMakefile(w, ctx)
	return w.Flush()
}

func writeMakefile(w *bufio.Writer, ctx *resolve.Context) {
	platform := emitPlatform(ctx, Make{}, config.PlatformLinux)
	arch := defaultArch(platform)

	fmt.Fprintf(w, "# Generated by kiln for project %s. Do not edit.\n\n", ctx.Project.Info.Name)
	fmt.Fprintf(w, "CONFIG ?= %s\n", defaultConfig(ctx.Profiles))
	fmt.Fprintf(w, "SRCDIR := %s\n", filepath.ToSlash(ctx.InputRel))
	fmt.Fprintf(w, "OBJDIR := obj/$(CONFIG)\n\n")

	var built []int
	for i := 0; i < ctx.Targets(); i++ {
		if ctx.Buildable(i, platform) && ctx.EffectiveType(i).Compiled() {
			built = append(built, i)
		}
	}

	// Per-profile flag blocks. Every target resolves every catalog name
	// through the fallback chain, so each block covers all targets.
	for _, profile := range ctx.Profiles {
		fmt.Fprintf(w, "ifeq ($(CONFIG),%s)\n", profile)
		for _, i := range built {
			name, _ := ctx.Target(i)
			s := ctx.ComposedSettings(i, profile, platform, arch)
			fmt.Fprintf(w, "%s_CXXFLAGS := %s\n", name, strings.Join(cFlags(s, true), " "))
			fmt.Fprintf(w, "%s_LDFLAGS := %s\n", name, strings.Join(ldFlags(s), " "))
		}
		fmt.Fprintf(w, "endif\n")
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, ".PHONY: all clean\n")
	fmt.Fprintf(w, "all:")
	for _, i := range built {
		fmt.Fprintf(w, " %s", artifactName(ctx, i))
	}
	fmt.Fprintf(w, "\n\n")

	for _, i := range built {
		writeMakeTarget(w, ctx, i)
	}

	fmt.Fprintf(w, "clean:\n\trm -rf obj")
	for _, i := range built {
		fmt.Fprintf(w, " %s", artifactName(ctx, i))
	}
	fmt.Fprintf(w, "\n")
}

func writeMakeTarget(w *bufio.Writer, ctx *resolve.Context, i int) {
	name, _ := ctx.Target(i)
	artifact := artifactName(ctx, i)

	var objs []string
	for _, src := range ctx.ComposedSources(i) {
		if !src.Dir && compiledExt(src.Ext()) {
			objs = append(objs, fmt.Sprintf("$(OBJDIR)/%s/%s.o", name, src.Path))
		}
	}

	fmt.Fprintf(w, "%s_OBJS := %s\n\n", name, strings.Join(objs, " "))

	fmt.Fprintf(w, "%s: $(%s_OBJS)\n", artifact, name)
	switch ctx.EffectiveType(i) {
	case config.TargetStaticLibrary:
		fmt.Fprintf(w, "\t$(AR) rcs $@ $^\n\n")
	case config.TargetSharedLibrary:
		fmt.Fprintf(w, "\t$(CXX) -shared $(LDFLAGS) $(%s_LDFLAGS) -o $@ $^\n\n", name)
	default:
		fmt.Fprintf(w, "\t$(CXX) $(LDFLAGS) $(%s_LDFLAGS) -o $@ $^\n\n", name)
	}

	fmt.Fprintf(w, "$(OBJDIR)/%s/%%.o: $(SRCDIR)/%%\n", name)
	fmt.Fprintf(w, "\t@mkdir -p $(dir $@)\n")
	fmt.Fprintf(w, "\t$(CXX) $(CXXFLAGS) $(%s_CXXFLAGS) -c -o $@ $<\n\n", name)
}

// artifactName maps a target to its emitted file name.
func artifactName(ctx *resolve.Context, i int) string {
	name, _ := ctx.Target(i)
	switch ctx.EffectiveType(i) {
	case config.TargetStaticLibrary:
		return "lib" + name + ".a"
	case config.TargetSharedLibrary:
		return "lib" + name + ".so"
	default:
		return name
	}
}

// defaultConfig prefers Debug when present, otherwise the first catalog name.
func defaultConfig(profiles []string) string {
	for _, p := range profiles {
		if p == "Debug" {
			return p
		}
	}
	return profiles[0]
}

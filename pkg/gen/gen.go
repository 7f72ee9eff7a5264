// Package gen holds the output writers. Each generator consumes the
// read-only resolved context and emits one platform-native project format;
// none of them mutate the context, so they can run concurrently.
package gen

import (
	"sort"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/resolve"
)

// Generator is one output-format-specific writer.
type Generator interface {
	// SupportsPlatform is a pure predicate: does this format apply to the
	// concrete platform? Calling it with PlatformAny is a contract
	// violation.
	SupportsPlatform(p config.PlatformType) bool

	// Run emits the format into the context's build directory.
	Run(ctx *resolve.Context) error
}

// All returns the generator registry keyed by name.
func All() map[string]Generator {
	return map[string]Generator{
		"cmake":  CMake{},
		"gradle": Gradle{},
		"make":   Make{},
		"vs":     VisualStudio{},
		"xcode":  Xcode{},
	}
}

// Names returns the registry keys in stable order.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func assertConcrete(p config.PlatformType) {
	if p == config.PlatformAny {
		panic("gen: SupportsPlatform called with the wildcard platform")
	}
}

// emitPlatform picks the concrete platform a writer resolves settings and
// buildability against: the first project-declared platform the writer
// supports, or the writer's conventional default when the filter is empty or
// names none of them.
func emitPlatform(ctx *resolve.Context, g Generator, def config.PlatformType) config.PlatformType {
	for _, p := range ctx.Project.Info.Platforms {
		if g.SupportsPlatform(p) {
			return p
		}
	}
	return def
}

// defaultArch is the conventional architecture for resolving a platform's
// settings chain.
func defaultArch(p config.PlatformType) config.Architecture {
	switch p {
	case config.PlatformIOS, config.PlatformTVOS, config.PlatformWatchOS, config.PlatformAndroid:
		return config.ArchARM64
	default:
		return config.ArchX64
	}
}

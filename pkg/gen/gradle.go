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

// Gradle emits the Android project shell: settings.gradle plus a
// build.gradle whose externalNativeBuild delegates to the CMake output.
type Gradle struct{}

// SupportsPlatform implements Generator.
func (Gradle) SupportsPlatform(p config.PlatformType) bool {
	assertConcrete(p)
	return p == config.PlatformAndroid
}

// Run implements Generator.
func (Gradle) Run(ctx *resolve.Context) error {
	if !anyBuildable(ctx, config.PlatformAndroid) {
		return nil
	}

	settings, err := os.Create(filepath.Join(ctx.BuildDir, "settings.gradle"))
	if err != nil {
		return err
	}
	defer settings.Close()
	fmt.Fprintf(settings, "// Generated by kiln. Do not edit.\nrootProject.name = '%s'\n",
		ctx.Project.Info.Name)

	f, err := os.Create(filepath.Join(ctx.BuildDir, "build.gradle"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeBuildGradle(w, ctx)
	return w.Flush()
}

func writeBuildGradle(w *bufio.Writer, ctx *resolve.Context) {
	apiLevel := 21
	if v := ctx.Project.Info.AndroidTargetAPILevel; v != nil {
		apiLevel = *v
	}

	abis := androidABIs(ctx.Project.Info.Architectures)

	fmt.Fprintf(w, "// Generated by kiln. Do not edit.\n")
	fmt.Fprintf(w, "apply plugin: 'com.android.application'\n\n")
	fmt.Fprintf(w, "android {\n")
	fmt.Fprintf(w, "    compileSdkVersion %d\n", apiLevel)
	fmt.Fprintf(w, "    defaultConfig {\n")
	fmt.Fprintf(w, "        applicationId 'com.%s'\n", strings.ToLower(ctx.Project.Info.Name))
	fmt.Fprintf(w, "        minSdkVersion %d\n", apiLevel)
	fmt.Fprintf(w, "        targetSdkVersion %d\n", apiLevel)
	fmt.Fprintf(w, "        versionName '%s'\n", ctx.Project.Info.Version)
	fmt.Fprintf(w, "        ndk { abiFilters %s }\n", quoteJoin(abis))
	fmt.Fprintf(w, "    }\n")
	fmt.Fprintf(w, "    externalNativeBuild {\n")
	fmt.Fprintf(w, "        cmake { path 'CMakeLists.txt' }\n")
	fmt.Fprintf(w, "    }\n")

	fmt.Fprintf(w, "    buildTypes {\n")
	for _, profile := range ctx.Profiles {
		fmt.Fprintf(w, "        %s {}\n", strings.ToLower(profile))
	}
	fmt.Fprintf(w, "    }\n")
	fmt.Fprintf(w, "}\n")
}

// androidABIs maps the declared architecture filter to NDK ABI names; an
// empty filter means every ABI Android supports.
func androidABIs(archs []config.Architecture) []string {
	if len(archs) == 0 {
		archs = []config.Architecture{config.ArchARM, config.ArchARM64, config.ArchX86}
	}
	var abis []string
	for _, a := range archs {
		switch a {
		case config.ArchARM:
			abis = append(abis, "armeabi-v7a")
		case config.ArchARM64:
			abis = append(abis, "arm64-v8a")
		case config.ArchX86:
			abis = append(abis, "x86")
		}
	}
	return abis
}

func quoteJoin(in []string) string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = "'" + v + "'"
	}
	return strings.Join(out, ", ")
}

func anyBuildable(ctx *resolve.Context, p config.PlatformType) bool {
	for i := 0; i < ctx.Targets(); i++ {
		if ctx.Buildable(i, p) {
			return true
		}
	}
	return false
}

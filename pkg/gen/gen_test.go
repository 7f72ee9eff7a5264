package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/files"
	"github.com/kilnproj/kiln/pkg/resolve"
)

func writeTree(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("// "+p+"\n"), 0o644))
	}
}

func testContext(t *testing.T, doc string, tree ...string) *resolve.Context {
	t.Helper()
	inputDir := t.TempDir()
	writeTree(t, inputDir, tree...)

	proj, err := config.Parse([]byte(doc), "Kiln.toml", "1.0.0")
	require.NoError(t, err)

	sources, resources, assets, err := files.ResolveAll(inputDir, proj)
	require.NoError(t, err)
	metafiles, err := files.Metafiles(inputDir)
	require.NoError(t, err)

	buildDir := filepath.Join(inputDir, "build")
	require.NoError(t, os.MkdirAll(buildDir, 0o755))

	ctx, err := resolve.NewContext(proj, config.Env{}, inputDir, buildDir,
		sources, resources, assets, metafiles)
	require.NoError(t, err)
	return ctx
}

func readOutput(t *testing.T, ctx *resolve.Context, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ctx.BuildDir, name))
	require.NoError(t, err)
	return string(data)
}

const simpleDoc = `
[project]
name = "demo"
version = "1.0.0"

[targets.core]
type = "StaticLibrary"
sources = ["core/**/*.cpp"]
defines = ["CORE"]

[targets.app]
sources = ["app/**/*.cpp", "app/**/*.h"]
extends = ["core"]
defines = ["APP"]
libs = ["z"]
`

func simpleTree() []string {
	return []string{"core/lib.cpp", "app/main.cpp", "app/main.h", "Kiln.toml"}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"cmake", "gradle", "make", "vs", "xcode"}, Names())

	covered := map[config.PlatformType]bool{}
	for _, g := range All() {
		for _, p := range []config.PlatformType{
			config.PlatformWindows, config.PlatformLinux, config.PlatformMacOS,
			config.PlatformIOS, config.PlatformTVOS, config.PlatformAndroid,
			config.PlatformHTML5,
		} {
			if g.SupportsPlatform(p) {
				covered[p] = true
			}
		}
	}
	assert.Len(t, covered, 7, "every non-watch platform has a generator")
}

func TestSupportsPlatformWildcardPanics(t *testing.T) {
	for name, g := range All() {
		require.Panics(t, func() { g.SupportsPlatform(config.PlatformAny) }, name)
	}
}

func TestCFlagsTranslation(t *testing.T) {
	s := config.Settings{
		WarningLevel:   intp(3),
		WarningAsError: boolp(true),
		Optimize:       optp(config.OptimizeSize),
		StrictAliasing: boolp(false),
		EnableRTTI:     boolp(false),
		CXXStandard:    cxxp(config.CXX14),
		IncludeDirs:    []string{"core/include"},
		Defines:        []string{"CORE", "NDEBUG"},
		Undefs:         []string{"TRACE"},
	}

	assert.Equal(t, []string{
		"-Wall", "-Wextra", "-Werror", "-Os",
		"-fno-strict-aliasing", "-fno-rtti", "-std=c++14",
		"-Icore/include", "-DCORE", "-DNDEBUG", "-UTRACE",
	}, cFlags(s, true))

	c := config.Settings{CStandard: cstdp(config.C99)}
	assert.Equal(t, []string{"-std=c99"}, cFlags(c, false))
	assert.Empty(t, cFlags(config.Settings{}, true))
}

func TestLdFlagsTranslation(t *testing.T) {
	s := config.Settings{LibDirs: []string{"libs"}, Libs: []string{"z", "m"}}
	assert.Equal(t, []string{"-Llibs", "-lz", "-lm"}, ldFlags(s))
}

func TestMakefileOutput(t *testing.T) {
	ctx := testContext(t, simpleDoc, simpleTree()...)
	require.NoError(t, Make{}.Run(ctx))

	out := readOutput(t, ctx, "Makefile")
	assert.Contains(t, out, "CONFIG ?= Debug")
	assert.Contains(t, out, "ifeq ($(CONFIG),Debug)")
	assert.Contains(t, out, "ifeq ($(CONFIG),Release)")
	assert.Contains(t, out, "libcore.a")
	assert.Contains(t, out, "app_LDFLAGS")
	assert.Contains(t, out, "-lz")
	assert.Contains(t, out, "-DCORE -DAPP", "composed defines in extends-then-self order")
	assert.Contains(t, out, "$(AR) rcs")
	assert.NotContains(t, out, "main.h", "headers are not translation units")
}

func TestVisualStudioOutput(t *testing.T) {
	ctx := testContext(t, simpleDoc, simpleTree()...)
	require.NoError(t, VisualStudio{}.Run(ctx))

	sln := readOutput(t, ctx, "demo.sln")
	assert.Contains(t, sln, "\"core\", \"core.vcxproj\"")
	assert.Contains(t, sln, "\"app\", \"app.vcxproj\"")
	assert.Contains(t, sln, "\"demo\", \"demo.vcxitems\"")
	assert.Contains(t, sln, "Debug|x64 = Debug|x64")
	assert.Contains(t, sln, ".Build.0 = Release|x64")

	app := readOutput(t, ctx, "app.vcxproj")
	assert.Contains(t, app, "<Configuration>Debug</Configuration>")
	assert.Contains(t, app, "<ConfigurationType>Application</ConfigurationType>")
	assert.Contains(t, app, "CORE;APP;%(PreprocessorDefinitions)")
	assert.Contains(t, app, "z.lib;%(AdditionalDependencies)")
	assert.Contains(t, app, `<ClCompile Include="..\core\lib.cpp" />`)
	assert.Contains(t, app, `<ClInclude Include="..\app\main.h" />`)

	core := readOutput(t, ctx, "core.vcxproj")
	assert.Contains(t, core, "<ConfigurationType>StaticLibrary</ConfigurationType>")
	assert.Contains(t, core, "<Optimization>Disabled</Optimization>")

	items := readOutput(t, ctx, "demo.vcxitems")
	assert.Contains(t, items, `<None Include="..\Kiln.toml" />`)
}

func TestVisualStudioGUIDsStable(t *testing.T) {
	first := stableGUID("demo", "app")
	second := stableGUID("demo", "app")
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, stableGUID("demo", "core"))
	assert.NotEqual(t, first, stableGUID("other", "app"))
	assert.Regexp(t, `^[0-9A-F-]{36}$`, first)

	ctx := testContext(t, simpleDoc, simpleTree()...)
	require.NoError(t, VisualStudio{}.Run(ctx))
	a := readOutput(t, ctx, "demo.sln")
	require.NoError(t, VisualStudio{}.Run(ctx))
	assert.Equal(t, a, readOutput(t, ctx, "demo.sln"), "regeneration is byte identical")
}

func TestVisualStudioExcludedFilesDemoted(t *testing.T) {
	doc := `
[project]
name = "demo"
version = "1.0.0"

[targets.app]
sources = ["src/**/*.cpp"]

[targets.app.exclude]
"src/posix" = ["Windows"]
`
	ctx := testContext(t, doc, "src/main.cpp", "src/posix/io.cpp")
	require.NoError(t, VisualStudio{}.Run(ctx))

	app := readOutput(t, ctx, "app.vcxproj")
	assert.Contains(t, app, `<ClCompile Include="..\src\main.cpp" />`)
	assert.Contains(t, app, `<None Include="..\src\posix\io.cpp" />`)
}

func TestCMakeOutput(t *testing.T) {
	ctx := testContext(t, simpleDoc, simpleTree()...)
	require.NoError(t, CMake{}.Run(ctx))

	out := readOutput(t, ctx, "CMakeLists.txt")
	assert.Contains(t, out, "project(demo VERSION 1.0.0 LANGUAGES C CXX)")
	assert.Contains(t, out, `set(CMAKE_CONFIGURATION_TYPES "Debug;Release")`)
	assert.Contains(t, out, "add_library(core STATIC")
	assert.Contains(t, out, "add_executable(app")
	assert.Contains(t, out, "target_compile_definitions(app PRIVATE CORE APP)")
	assert.Contains(t, out, "$<$<CONFIG:Release>:")
}

func TestGradleOutput(t *testing.T) {
	ctx := testContext(t, simpleDoc, simpleTree()...)
	require.NoError(t, Gradle{}.Run(ctx))

	settings := readOutput(t, ctx, "settings.gradle")
	assert.Contains(t, settings, "rootProject.name = 'demo'")

	build := readOutput(t, ctx, "build.gradle")
	assert.Contains(t, build, "minSdkVersion 21")
	assert.Contains(t, build, "abiFilters 'armeabi-v7a', 'arm64-v8a', 'x86'")
	assert.Contains(t, build, "cmake { path 'CMakeLists.txt' }")
	assert.Contains(t, build, "debug {}")
	assert.Contains(t, build, "release {}")
}

func TestGradleSkipsNonAndroidProjects(t *testing.T) {
	doc := `
[project]
name = "demo"
version = "1.0.0"
platforms = ["Linux"]

[targets.app]
sources = ["app/**/*.cpp"]
`
	ctx := testContext(t, doc, "app/main.cpp")
	require.NoError(t, Gradle{}.Run(ctx))

	_, err := os.Stat(filepath.Join(ctx.BuildDir, "build.gradle"))
	assert.True(t, os.IsNotExist(err))
}

func TestXcodeOutput(t *testing.T) {
	ctx := testContext(t, simpleDoc, simpleTree()...)
	require.NoError(t, Xcode{}.Run(ctx))

	out := readOutput(t, ctx, filepath.Join("demo.xcodeproj", "project.pbxproj"))
	assert.Contains(t, out, "// !$*UTF8*$!")
	assert.Contains(t, out, "rootObject = ")
	assert.Contains(t, out, "PBXNativeTarget")
	assert.Contains(t, out, `name = "core"`)
	assert.Contains(t, out, "com.apple.product-type.library.static")
	assert.Contains(t, out, `name = "Debug"`)
	assert.Contains(t, out, `name = "Release"`)

	// Deterministic identifiers: a second run emits identical bytes.
	require.NoError(t, Xcode{}.Run(ctx))
	assert.Equal(t, out, readOutput(t, ctx, filepath.Join("demo.xcodeproj", "project.pbxproj")))
}

func TestMakeFollowsProjectPlatform(t *testing.T) {
	doc := `
[project]
name = "demo"
version = "1.0.0"
platforms = ["HTML5"]

[targets.app]
sources = ["app/**/*.cpp"]
`
	ctx := testContext(t, doc, "app/main.cpp")
	require.NoError(t, Make{}.Run(ctx))

	out := readOutput(t, ctx, "Makefile")
	assert.Contains(t, out, "all: app",
		"an HTML5-only project still builds its targets")
	assert.Contains(t, out, "app_CXXFLAGS")
}

func TestXcodeFollowsProjectPlatform(t *testing.T) {
	doc := `
[project]
name = "demo"
version = "1.0.0"
platforms = ["IOS"]

[targets.app]
sources = ["app/**/*.cpp"]

[[targets.app.profiles.Debug]]
platform = "IOS"
optimize = "Speed"
`
	ctx := testContext(t, doc, "app/main.cpp")
	require.NoError(t, Xcode{}.Run(ctx))

	out := readOutput(t, ctx, filepath.Join("demo.xcodeproj", "project.pbxproj"))
	assert.Contains(t, out, "PBXNativeTarget", "an iOS-only project is not empty")
	assert.Contains(t, out, `name = "app"`)
	assert.Contains(t, out, "GCC_OPTIMIZATION_LEVEL = 2",
		"settings resolve for the project's platform, not a hardcoded one")
}

func TestArtifactNames(t *testing.T) {
	ctx := testContext(t, simpleDoc, simpleTree()...)
	core := ctx.Project.TargetIndex("core")
	app := ctx.Project.TargetIndex("app")

	assert.Equal(t, "libcore.a", artifactName(ctx, core))
	assert.Equal(t, "app", artifactName(ctx, app))
}

func intp(v int) *int                               { return &v }
func boolp(v bool) *bool                            { return &v }
func optp(v config.Optimize) *config.Optimize       { return &v }
func cxxp(v config.CXXStandard) *config.CXXStandard { return &v }
func cstdp(v config.CStandard) *config.CStandard    { return &v }

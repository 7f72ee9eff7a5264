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

// Xcode emits a <project>.xcodeproj bundle with a project.pbxproj covering
// every Apple-buildable target. Object identifiers come from a counter
// created per invocation rather than process-wide state, so repeated runs
// over the same input emit identical bytes.
type Xcode struct{}

// SupportsPlatform implements Generator.
func (Xcode) SupportsPlatform(p config.PlatformType) bool {
	assertConcrete(p)
	switch p {
	case config.PlatformMacOS, config.PlatformIOS, config.PlatformTVOS:
		return true
	default:
		return false
	}
}

// xcodeIDs hands out sequential 24-hex-digit object identifiers.
type xcodeIDs struct {
	next uint64
}

func (g *xcodeIDs) id() string {
	g.next++
	return fmt.Sprintf("D0D0D0D0%016X", g.next)
}

// Run implements Generator.
func (Xcode) Run(ctx *resolve.Context) error {
	platform := emitPlatform(ctx, Xcode{}, config.PlatformMacOS)

	dir := filepath.Join(ctx.BuildDir, ctx.Project.Info.Name+".xcodeproj")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "project.pbxproj"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writePbxproj(w, ctx, &xcodeIDs{}, platform)
	return w.Flush()
}

func writePbxproj(w *bufio.Writer, ctx *resolve.Context, ids *xcodeIDs, platform config.PlatformType) {
	arch := defaultArch(platform)

	rootID := ids.id()
	mainGroupID := ids.id()
	targetsGroupID := ids.id()

	type xcTarget struct {
		index      int
		name       string
		targetID   string
		configList string
		configIDs  []string
		fileRefs   []string
		buildIDs   []string
	}

	var targets []xcTarget
	for i := 0; i < ctx.Targets(); i++ {
		if !ctx.Buildable(i, platform) || !ctx.EffectiveType(i).Compiled() {
			continue
		}
		name, target := ctx.Target(i)
		t := xcTarget{index: i, name: name, targetID: ids.id(), configList: ids.id()}
		for range ctx.Profiles {
			t.configIDs = append(t.configIDs, ids.id())
		}
		for _, file := range ctx.ComposedSources(i) {
			if file.Dir || !target.MatchFile(file.Path, platform) {
				continue
			}
			t.fileRefs = append(t.fileRefs, ids.id())
			if compiledExt(file.Ext()) {
				t.buildIDs = append(t.buildIDs, ids.id())
			} else {
				t.buildIDs = append(t.buildIDs, "")
			}
		}
		targets = append(targets, t)
	}

	projectConfigList := ids.id()
	var projectConfigIDs []string
	for range ctx.Profiles {
		projectConfigIDs = append(projectConfigIDs, ids.id())
	}

	fmt.Fprintf(w, "// !$*UTF8*$!\n{\n")
	fmt.Fprintf(w, "\tarchiveVersion = 1;\n\tobjectVersion = 50;\n\tobjects = {\n")

	// File references and build files.
	for _, t := range targets {
		k := 0
		_, target := ctx.Target(t.index)
		for _, file := range ctx.ComposedSources(t.index) {
			if file.Dir || !target.MatchFile(file.Path, platform) {
				continue
			}
			fmt.Fprintf(w, "\t\t%s = {isa = PBXFileReference; path = \"%s\"; sourceTree = SOURCE_ROOT; };\n",
				t.fileRefs[k], filepath.ToSlash(ctx.InputRel)+"/"+file.Path)
			if t.buildIDs[k] != "" {
				fmt.Fprintf(w, "\t\t%s = {isa = PBXBuildFile; fileRef = %s; };\n", t.buildIDs[k], t.fileRefs[k])
			}
			k++
		}
	}

	// Groups.
	if ctx.Project.Info.Xcode.GroupsByTarget() {
		var children []string
		for _, t := range targets {
			groupID := ids.id()
			children = append(children, groupID)
			fmt.Fprintf(w, "\t\t%s = {isa = PBXGroup; name = \"%s\"; children = (%s); sourceTree = \"<group>\"; };\n",
				groupID, t.name, strings.Join(t.fileRefs, ", "))
		}
		fmt.Fprintf(w, "\t\t%s = {isa = PBXGroup; name = Targets; children = (%s); sourceTree = \"<group>\"; };\n",
			targetsGroupID, strings.Join(children, ", "))
		fmt.Fprintf(w, "\t\t%s = {isa = PBXGroup; children = (%s); sourceTree = \"<group>\"; };\n",
			mainGroupID, targetsGroupID)
	} else {
		var refs []string
		for _, t := range targets {
			refs = append(refs, t.fileRefs...)
		}
		fmt.Fprintf(w, "\t\t%s = {isa = PBXGroup; children = (%s); sourceTree = \"<group>\"; };\n",
			mainGroupID, strings.Join(refs, ", "))
	}

	// Native targets with per-profile configurations.
	for _, t := range targets {
		sourcesPhase := ids.id()
		var compiled []string
		for _, id := range t.buildIDs {
			if id != "" {
				compiled = append(compiled, id)
			}
		}
		fmt.Fprintf(w, "\t\t%s = {isa = PBXSourcesBuildPhase; files = (%s); };\n",
			sourcesPhase, strings.Join(compiled, ", "))

		for k, profile := range ctx.Profiles {
			s := ctx.EffectiveSettings(t.index, profile, platform, arch)
			fmt.Fprintf(w, "\t\t%s = {isa = XCBuildConfiguration; name = \"%s\"; buildSettings = {%s}; };\n",
				t.configIDs[k], profile, xcodeBuildSettings(s, ctx.ComposedDefines(t.index)))
		}
		fmt.Fprintf(w, "\t\t%s = {isa = XCConfigurationList; buildConfigurations = (%s); defaultConfigurationName = \"%s\"; };\n",
			t.configList, strings.Join(t.configIDs, ", "), defaultConfig(ctx.Profiles))

		fmt.Fprintf(w, "\t\t%s = {isa = PBXNativeTarget; name = \"%s\"; productType = \"%s\"; buildConfigurationList = %s; buildPhases = (%s); };\n",
			t.targetID, t.name, xcodeProductType(ctx.EffectiveType(t.index)), t.configList, sourcesPhase)
	}

	// Project-level configurations mirror the shared profile axis.
	for k, profile := range ctx.Profiles {
		s := ctx.Project.Info.Settings
		fmt.Fprintf(w, "\t\t%s = {isa = XCBuildConfiguration; name = \"%s\"; buildSettings = {%s}; };\n",
			projectConfigIDs[k], profile, xcodeBuildSettings(s, s.Defines))
	}
	fmt.Fprintf(w, "\t\t%s = {isa = XCConfigurationList; buildConfigurations = (%s); defaultConfigurationName = \"%s\"; };\n",
		projectConfigList, strings.Join(projectConfigIDs, ", "), defaultConfig(ctx.Profiles))

	var targetIDs []string
	for _, t := range targets {
		targetIDs = append(targetIDs, t.targetID)
	}
	fmt.Fprintf(w, "\t\t%s = {isa = PBXProject; buildConfigurationList = %s; mainGroup = %s; targets = (%s); };\n",
		rootID, projectConfigList, mainGroupID, strings.Join(targetIDs, ", "))

	fmt.Fprintf(w, "\t};\n\trootObject = %s;\n}\n", rootID)
}

func xcodeBuildSettings(s config.Settings, defines []string) string {
	var parts []string
	if s.Optimize != nil {
		parts = append(parts, "GCC_OPTIMIZATION_LEVEL = "+xcodeOptLevel(*s.Optimize)+";")
	}
	if s.WarningAsError != nil {
		parts = append(parts, fmt.Sprintf("GCC_TREAT_WARNINGS_AS_ERRORS = %s;", xcodeBool(*s.WarningAsError)))
	}
	if s.EnableExceptions != nil {
		parts = append(parts, fmt.Sprintf("GCC_ENABLE_CPP_EXCEPTIONS = %s;", xcodeBool(*s.EnableExceptions)))
	}
	if s.EnableRTTI != nil {
		parts = append(parts, fmt.Sprintf("GCC_ENABLE_CPP_RTTI = %s;", xcodeBool(*s.EnableRTTI)))
	}
	if s.CXXStandard != nil {
		parts = append(parts, fmt.Sprintf("CLANG_CXX_LANGUAGE_STANDARD = \"c++%02d\";", int(*s.CXXStandard)))
	}
	if len(defines) > 0 {
		parts = append(parts, fmt.Sprintf("GCC_PREPROCESSOR_DEFINITIONS = \"%s\";", strings.Join(defines, " ")))
	}
	return strings.Join(parts, " ")
}

func xcodeOptLevel(o config.Optimize) string {
	switch o {
	case config.OptimizeNone:
		return "0"
	case config.OptimizeSize:
		return "s"
	case config.OptimizeSpeed:
		return "2"
	default:
		return "3"
	}
}

func xcodeBool(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

func xcodeProductType(t config.TargetType) string {
	switch t {
	case config.TargetStaticLibrary:
		return "com.apple.product-type.library.static"
	case config.TargetSharedLibrary:
		return "com.apple.product-type.library.dynamic"
	default:
		return "com.apple.product-type.application"
	}
}

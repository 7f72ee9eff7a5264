package gen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/files"
	"github.com/kilnproj/kiln/pkg/resolve"
)

// VisualStudio emits a solution plus one vcxproj per target. Project GUIDs
// are derived from the project and target names instead of drawn from a
// global source, so regenerating an unchanged project yields byte-identical
// output and user selections tied to GUIDs survive regeneration.
type VisualStudio struct{}

// SupportsPlatform implements Generator.
func (VisualStudio) SupportsPlatform(p config.PlatformType) bool {
	assertConcrete(p)
	return p == config.PlatformWindows || p == config.PlatformAndroid
}

const vsProjectKindGUID = "8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942"

// vsProj pairs a target index with its stable GUID. Index -1 marks the
// shared-items project that carries the project-root metafiles.
type vsProj struct {
	name  string
	guid  string
	index int
}

// Run implements Generator.
func (VisualStudio) Run(ctx *resolve.Context) error {
	projs := []vsProj{{
		name:  ctx.Project.Info.Name,
		guid:  stableGUID(ctx.Project.Info.Name, ""),
		index: -1,
	}}
	for i := 0; i < ctx.Targets(); i++ {
		name, _ := ctx.Target(i)
		projs = append(projs, vsProj{
			name:  name,
			guid:  stableGUID(ctx.Project.Info.Name, name),
			index: i,
		})
	}

	archs := vsArchitectures(ctx)

	for _, proj := range projs[1:] {
		if err := writeVcxproj(ctx, proj, archs); err != nil {
			return err
		}
	}
	if err := writeVcxitems(ctx, projs[0]); err != nil {
		return err
	}
	return writeSln(ctx, projs, archs)
}

// stableGUID derives a deterministic uppercase GUID from project and target
// names.
func stableGUID(project, target string) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte("kiln://"+project+"/"+target))
	return strings.ToUpper(u.String())
}

// vsArchitectures narrows the project's architecture filter to what the
// toolchain offers; an empty filter defaults to x64.
func vsArchitectures(ctx *resolve.Context) []config.Architecture {
	declared := ctx.Project.Info.Architectures
	if len(declared) == 0 {
		return []config.Architecture{config.ArchX64}
	}
	return declared
}

// vsPlatformName is the platform axis label ("Win32" for x86 by convention).
func vsPlatformName(a config.Architecture) string {
	switch a {
	case config.ArchX86:
		return "Win32"
	case config.ArchX64:
		return "x64"
	case config.ArchARM:
		return "ARM"
	default:
		return "ARM64"
	}
}

func writeSln(ctx *resolve.Context, projs []vsProj, archs []config.Architecture) error {
	f, err := os.Create(filepath.Join(ctx.BuildDir, ctx.Project.Info.Name+".sln"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "Microsoft Visual Studio Solution File, Format Version 12.00\r\n")
	fmt.Fprintf(w, "# Visual Studio Version 16\r\n")

	for _, p := range projs {
		ext := "vcxproj"
		if p.index < 0 {
			ext = "vcxitems"
		}
		fmt.Fprintf(w, "Project(\"{%s}\") = \"%s\", \"%s.%s\", \"{%s}\"\r\nEndProject\r\n",
			vsProjectKindGUID, p.name, p.name, ext, p.guid)
	}

	fmt.Fprintf(w, "Global\r\n")
	fmt.Fprintf(w, "\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\r\n")
	for _, profile := range ctx.Profiles {
		for _, a := range archs {
			axis := profile + "|" + vsPlatformName(a)
			fmt.Fprintf(w, "\t\t%s = %s\r\n", axis, axis)
		}
	}
	fmt.Fprintf(w, "\tEndGlobalSection\r\n")

	fmt.Fprintf(w, "\tGlobalSection(ProjectConfigurationPlatforms) = postSolution\r\n")
	for _, p := range projs[1:] {
		for _, profile := range ctx.Profiles {
			for _, a := range archs {
				axis := profile + "|" + vsPlatformName(a)
				fmt.Fprintf(w, "\t\t{%s}.%s.ActiveCfg = %s\r\n", p.guid, axis, axis)
				if ctx.Buildable(p.index, config.PlatformWindows) &&
					ctx.Project.Info.MatchesArchitecture(a) {
					fmt.Fprintf(w, "\t\t{%s}.%s.Build.0 = %s\r\n", p.guid, axis, axis)
				}
			}
		}
	}
	fmt.Fprintf(w, "\tEndGlobalSection\r\n")
	fmt.Fprintf(w, "EndGlobal\r\n")
	return w.Flush()
}

func writeVcxproj(ctx *resolve.Context, proj vsProj, archs []config.Architecture) error {
	f, err := os.Create(filepath.Join(ctx.BuildDir, proj.name+".vcxproj"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	_, target := ctx.Target(proj.index)
	toolset := vsToolset(ctx.Project.Info.VisualStudio.Version)
	src := filepath.ToSlash(ctx.InputRel)

	fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\r\n")
	fmt.Fprintf(w, "<Project DefaultTargets=\"Build\" xmlns=\"http://schemas.microsoft.com/developer/msbuild/2003\">\r\n")

	fmt.Fprintf(w, "  <ItemGroup Label=\"ProjectConfigurations\">\r\n")
	for _, profile := range ctx.Profiles {
		for _, a := range archs {
			plat := vsPlatformName(a)
			fmt.Fprintf(w, "    <ProjectConfiguration Include=\"%s|%s\">\r\n", profile, plat)
			fmt.Fprintf(w, "      <Configuration>%s</Configuration>\r\n", profile)
			fmt.Fprintf(w, "      <Platform>%s</Platform>\r\n", plat)
			fmt.Fprintf(w, "    </ProjectConfiguration>\r\n")
		}
	}
	fmt.Fprintf(w, "  </ItemGroup>\r\n")

	fmt.Fprintf(w, "  <PropertyGroup Label=\"Globals\">\r\n")
	fmt.Fprintf(w, "    <ProjectGuid>{%s}</ProjectGuid>\r\n", proj.guid)
	fmt.Fprintf(w, "    <RootNamespace>%s</RootNamespace>\r\n", proj.name)
	fmt.Fprintf(w, "  </PropertyGroup>\r\n")
	fmt.Fprintf(w, "  <Import Project=\"$(VCTargetsPath)\\Microsoft.Cpp.Default.props\" />\r\n")

	for _, profile := range ctx.Profiles {
		for _, a := range archs {
			s := ctx.EffectiveSettings(proj.index, profile, config.PlatformWindows, a)
			cond := fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s|%s'", profile, vsPlatformName(a))

			fmt.Fprintf(w, "  <PropertyGroup Condition=\"%s\" Label=\"Configuration\">\r\n", cond)
			fmt.Fprintf(w, "    <ConfigurationType>%s</ConfigurationType>\r\n", vsConfigurationType(ctx.EffectiveType(proj.index)))
			fmt.Fprintf(w, "    <PlatformToolset>%s</PlatformToolset>\r\n", toolset)
			if s.LinkIncremental != nil {
				fmt.Fprintf(w, "    <LinkIncremental>%t</LinkIncremental>\r\n", *s.LinkIncremental)
			}
			fmt.Fprintf(w, "  </PropertyGroup>\r\n")
		}
	}
	fmt.Fprintf(w, "  <Import Project=\"$(VCTargetsPath)\\Microsoft.Cpp.props\" />\r\n")

	for _, profile := range ctx.Profiles {
		for _, a := range archs {
			s := ctx.ComposedSettings(proj.index, profile, config.PlatformWindows, a)
			cond := fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s|%s'", profile, vsPlatformName(a))
			writeVcxprojDefinitions(w, s, cond, src)
		}
	}

	fmt.Fprintf(w, "  <ItemGroup>\r\n")
	for _, file := range ctx.ComposedSources(proj.index) {
		if file.Dir {
			continue
		}
		element := vsItemElement(target, file)
		fmt.Fprintf(w, "    <%s Include=\"%s\\%s\" />\r\n",
			element, strings.ReplaceAll(src, "/", "\\"), strings.ReplaceAll(file.Path, "/", "\\"))
	}
	fmt.Fprintf(w, "  </ItemGroup>\r\n")

	fmt.Fprintf(w, "  <Import Project=\"$(VCTargetsPath)\\Microsoft.Cpp.targets\" />\r\n")
	fmt.Fprintf(w, "</Project>\r\n")
	return w.Flush()
}

func writeVcxprojDefinitions(w *bufio.Writer, s config.Settings, cond, src string) {
	fmt.Fprintf(w, "  <ItemDefinitionGroup Condition=\"%s\">\r\n", cond)
	fmt.Fprintf(w, "    <ClCompile>\r\n")
	if s.WarningLevel != nil {
		fmt.Fprintf(w, "      <WarningLevel>Level%d</WarningLevel>\r\n", *s.WarningLevel)
	}
	if s.WarningAsError != nil {
		fmt.Fprintf(w, "      <TreatWarningAsError>%t</TreatWarningAsError>\r\n", *s.WarningAsError)
	}
	if s.Optimize != nil {
		fmt.Fprintf(w, "      <Optimization>%s</Optimization>\r\n", vsOptimization(*s.Optimize))
	}
	if s.OmitFramePointer != nil {
		fmt.Fprintf(w, "      <OmitFramePointers>%t</OmitFramePointers>\r\n", *s.OmitFramePointer)
	}
	if s.EnableExceptions != nil && !*s.EnableExceptions {
		fmt.Fprintf(w, "      <ExceptionHandling>false</ExceptionHandling>\r\n")
	}
	if s.EnableRTTI != nil {
		fmt.Fprintf(w, "      <RuntimeTypeInfo>%t</RuntimeTypeInfo>\r\n", *s.EnableRTTI)
	}
	if s.CXXStandard != nil {
		fmt.Fprintf(w, "      <LanguageStandard>stdcpp%d</LanguageStandard>\r\n", int(*s.CXXStandard))
	}

	fmt.Fprintf(w, "      <PreprocessorDefinitions>%s%%(PreprocessorDefinitions)</PreprocessorDefinitions>\r\n",
		joinSuffixed(s.Defines, ";"))
	if dirs := s.IncludeDirs; len(dirs) > 0 {
		win := make([]string, len(dirs))
		for i, d := range dirs {
			win[i] = strings.ReplaceAll(src+"/"+d, "/", "\\")
		}
		fmt.Fprintf(w, "      <AdditionalIncludeDirectories>%s%%(AdditionalIncludeDirectories)</AdditionalIncludeDirectories>\r\n",
			joinSuffixed(win, ";"))
	}
	fmt.Fprintf(w, "    </ClCompile>\r\n")

	fmt.Fprintf(w, "    <Link>\r\n")
	if libs := s.Libs; len(libs) > 0 {
		withExt := make([]string, len(libs))
		for i, l := range libs {
			withExt[i] = l + ".lib"
		}
		fmt.Fprintf(w, "      <AdditionalDependencies>%s%%(AdditionalDependencies)</AdditionalDependencies>\r\n",
			joinSuffixed(withExt, ";"))
	}
	if len(s.LibDirs) > 0 {
		fmt.Fprintf(w, "      <AdditionalLibraryDirectories>%s%%(AdditionalLibraryDirectories)</AdditionalLibraryDirectories>\r\n",
			joinSuffixed(s.LibDirs, ";"))
	}
	fmt.Fprintf(w, "    </Link>\r\n")
	fmt.Fprintf(w, "  </ItemDefinitionGroup>\r\n")
}

// writeVcxitems emits the shared-items project holding the project-root
// metafiles so they show up in the IDE.
func writeVcxitems(ctx *resolve.Context, proj vsProj) error {
	f, err := os.Create(filepath.Join(ctx.BuildDir, proj.name+".vcxitems"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	src := strings.ReplaceAll(filepath.ToSlash(ctx.InputRel), "/", "\\")

	fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\r\n")
	fmt.Fprintf(w, "<Project xmlns=\"http://schemas.microsoft.com/developer/msbuild/2003\">\r\n")
	fmt.Fprintf(w, "  <PropertyGroup Label=\"Globals\">\r\n")
	fmt.Fprintf(w, "    <ItemsProjectGuid>{%s}</ItemsProjectGuid>\r\n", proj.guid)
	fmt.Fprintf(w, "  </PropertyGroup>\r\n")
	fmt.Fprintf(w, "  <ItemGroup>\r\n")
	for _, file := range ctx.Metafiles {
		if file.Dir {
			continue
		}
		fmt.Fprintf(w, "    <None Include=\"%s\\%s\" />\r\n", src, strings.ReplaceAll(file.Path, "/", "\\"))
	}
	fmt.Fprintf(w, "  </ItemGroup>\r\n")
	fmt.Fprintf(w, "</Project>\r\n")
	return w.Flush()
}

func vsItemElement(target *config.Target, file files.FileInfo) string {
	if !target.MatchFile(file.Path, config.PlatformWindows) {
		return "None"
	}
	ext := file.Ext()
	switch {
	case compiledExt(ext):
		return "ClCompile"
	case headerExt(ext):
		return "ClInclude"
	case ext == "xml":
		return "Xml"
	default:
		return "None"
	}
}

func vsConfigurationType(t config.TargetType) string {
	switch t {
	case config.TargetStaticLibrary:
		return "StaticLibrary"
	case config.TargetSharedLibrary:
		return "DynamicLibrary"
	default:
		return "Application"
	}
}

func vsOptimization(o config.Optimize) string {
	switch o {
	case config.OptimizeNone:
		return "Disabled"
	case config.OptimizeSize:
		return "MinSpace"
	case config.OptimizeSpeed:
		return "MaxSpeed"
	default:
		return "Full"
	}
}

func vsToolset(version string) string {
	switch version {
	case "2015":
		return "v140"
	case "2017":
		return "v141"
	default:
		return "v142"
	}
}

func joinSuffixed(in []string, sep string) string {
	var b strings.Builder
	for _, v := range in {
		b.WriteString(v)
		b.WriteString(sep)
	}
	return b.String()
}

package resolve

import (
	"path/filepath"

	"github.com/kilnproj/kiln/pkg/config"
	"github.com/kilnproj/kiln/pkg/files"
)

// Context is the fully assembled, read-only view handed to every output
// writer: the immutable project tree, the shared profile catalog, the
// extension graph, and the per-target file lists aligned with target
// declaration order. Nothing in it is mutated after assembly.
type Context struct {
	Project *config.Project
	Env     config.Env

	// InputDir and BuildDir are absolute; BuildRel and InputRel are the
	// relative paths between them, computed once for writers that emit
	// cross-references.
	InputDir string
	BuildDir string
	BuildRel string
	InputRel string

	// Sources, Resources and Assets hold one ordered file list per
	// target, indexed by declaration order.
	Sources   files.AllFiles
	Resources files.AllFiles
	Assets    files.AllFiles

	// Metafiles are the project-root files not owned by any target.
	Metafiles []files.FileInfo

	// Profiles is the shared profile-name catalog, sorted.
	Profiles []string

	// Defaults are the built-in lowest-precedence profiles.
	Defaults config.Profiles

	// Graph is the cross-target extension graph.
	Graph *ExtensionGraph
}

// NewContext assembles the resolved context. It fails fast on any unresolved
// or cyclic extends declaration; no partially resolved context is ever
// returned.
func NewContext(proj *config.Project, env config.Env, inputDir, buildDir string,
	sources, resources, assets files.AllFiles, metafiles []files.FileInfo) (*Context, error) {

	graph, err := BuildExtensionGraph(proj)
	if err != nil {
		return nil, err
	}

	buildRel, err := filepath.Rel(inputDir, buildDir)
	if err != nil {
		return nil, err
	}
	inputRel, err := filepath.Rel(buildDir, inputDir)
	if err != nil {
		return nil, err
	}

	defaults := config.DefaultProfiles()
	return &Context{
		Project:   proj,
		Env:       env,
		InputDir:  inputDir,
		BuildDir:  buildDir,
		BuildRel:  buildRel,
		InputRel:  inputRel,
		Sources:   sources,
		Resources: resources,
		Assets:    assets,
		Metafiles: metafiles,
		Profiles:  ProfileNames(defaults, proj),
		Defaults:  defaults,
		Graph:     graph,
	}, nil
}

// Target returns the target at declaration index i.
func (c *Context) Target(i int) (string, *config.Target) {
	return c.Project.Target(i)
}

// Targets returns the number of declared targets.
func (c *Context) Targets() int {
	return len(c.Project.TargetNames)
}

// Buildable reports whether target i participates in a build for the given
// concrete platform: the project-level filter and the target-level filter
// must both match.
func (c *Context) Buildable(i int, p config.PlatformType) bool {
	_, t := c.Target(i)
	return c.Project.Info.MatchesPlatform(p) && t.MatchesPlatform(p)
}

// composition walks Extends[i] in declared order, then i itself, preserving
// the one-level ordering contract.
func (c *Context) composition(i int) []int {
	order := make([]int, 0, len(c.Graph.Extends[i])+1)
	order = append(order, c.Graph.Extends[i]...)
	return append(order, i)
}

// ComposedSources returns target i's source files with the files of every
// extended target folded in front, in extends-then-self order.
func (c *Context) ComposedSources(i int) files.TargetFiles {
	out := files.TargetFiles{}
	for _, j := range c.composition(i) {
		out = append(out, c.Sources[j]...)
	}
	return out
}

// ComposedDefines concatenates the defines of the extended targets and then
// target i's own, duplicates preserved.
func (c *Context) ComposedDefines(i int) []string {
	return c.composeStrings(i, func(t *config.Target) []string { return t.Defines })
}

// ComposedIncludeDirs concatenates include dirs in extends-then-self order.
func (c *Context) ComposedIncludeDirs(i int) []string {
	return c.composeStrings(i, func(t *config.Target) []string { return t.IncludeDirs })
}

// ComposedLibs concatenates libs in extends-then-self order. Link order is
// significant, so the sequence is exactly the declared one.
func (c *Context) ComposedLibs(i int) []string {
	return c.composeStrings(i, func(t *config.Target) []string { return t.Libs })
}

func (c *Context) composeStrings(i int, pick func(*config.Target) []string) []string {
	out := []string{}
	for _, j := range c.composition(i) {
		_, t := c.Target(j)
		out = append(out, pick(t)...)
	}
	return out
}

// EffectiveSettings folds the full settings chain for target i under the
// named profile on a concrete (platform, architecture): target profile
// variants, then project profile variants, then target settings, then
// project settings, then the built-in default profile. A target that
// declared nothing for the name still resolves through the fallback chain,
// so every target exposes every catalog name.
func (c *Context) EffectiveSettings(i int, profile string, p config.PlatformType, a config.Architecture) config.Settings {
	_, t := c.Target(i)

	s := config.Settings{}
	s = foldVariants(s, t.Profiles[profile], p, a)
	s = foldVariants(s, c.Project.Profiles[profile], p, a)
	s = config.Combine(s, t.Settings)
	s = config.Combine(s, c.Project.Info.Settings)
	s = foldVariants(s, c.Defaults[profile], p, a)
	return s
}

// ComposedSettings is EffectiveSettings with the sequence options of every
// extended target folded in front, in extends-then-self order. Scalars are
// never taken from extended targets; only files and sequence options cross
// target boundaries.
func (c *Context) ComposedSettings(i int, profile string, p config.PlatformType, a config.Architecture) config.Settings {
	s := c.EffectiveSettings(i, profile, p, a)
	ext := c.Graph.Extends[i]
	for k := len(ext) - 1; k >= 0; k-- {
		_, t := c.Target(ext[k])
		s = config.Combine(sequencesOf(t.Settings), s)
	}
	return s
}

func sequencesOf(s config.Settings) config.Settings {
	return config.Settings{
		IncludeDirs: s.IncludeDirs,
		Defines:     s.Defines,
		Undefs:      s.Undefs,
		LibDirs:     s.LibDirs,
		Libs:        s.Libs,
	}
}

func foldVariants(s config.Settings, variants []config.Profile, p config.PlatformType, a config.Architecture) config.Settings {
	for i := range variants {
		if variants[i].Applies(p, a) {
			s = config.Combine(s, variants[i].Settings)
		}
	}
	return s
}

// EffectiveType resolves target i's type: the declared one, or for Auto, a
// type inferred from the composed source files. Compiled sources make it a
// console application, anything else is a file-only target.
func (c *Context) EffectiveType(i int) config.TargetType {
	_, t := c.Target(i)
	if t.Type != config.TargetAuto {
		return t.Type
	}
	for _, f := range c.ComposedSources(i) {
		switch f.Ext() {
		case "c", "cc", "cpp", "cxx", "m", "mm":
			return config.TargetConsole
		}
	}
	return config.TargetNone
}

package config

import (
	"fmt"
	"strings"
)

// Profiles maps a profile name to its variants. A profile may carry several
// variants, each narrowed to a platform and/or architecture; variants with
// wildcard axes apply everywhere.
type Profiles map[string][]Profile

// Project is the root of the declarative tree decoded from a Kiln.toml
// document. It is decoded once and immutable afterwards.
type Project struct {
	// Info holds the [project] table.
	Info ProjectInfo `toml:"project"`

	// Profiles are the project-level profile declarations.
	Profiles Profiles `toml:"profiles" validate:"dive,dive"`

	// Targets maps target name to target declaration.
	Targets map[string]*Target `toml:"targets" validate:"dive"`

	// TargetNames holds the target names in document declaration order.
	// Every positional structure downstream (file lists, the extension
	// graph) is indexed in this order.
	TargetNames []string `toml:"-"`
}

// Target returns the target with the given declaration index.
func (p *Project) Target(i int) (string, *Target) {
	name := p.TargetNames[i]
	return name, p.Targets[name]
}

// TargetIndex returns the declaration index of the named target, or -1.
func (p *Project) TargetIndex(name string) int {
	for i, n := range p.TargetNames {
		if n == name {
			return i
		}
	}
	return -1
}

// ProjectInfo is the [project] table: identity, the project-level filter and
// settings, and generator-specific extras.
type ProjectInfo struct {
	Name        string `toml:"name" validate:"required"`
	Version     string `toml:"version" validate:"required"`
	Description string `toml:"description"`

	// MinKilnVersion gates the project on a minimum tool version.
	MinKilnVersion string `toml:"min_kiln_version"`

	TargetFilter
	Settings

	VisualStudio VisualStudioSettings `toml:"visual_studio"`
	Xcode        XcodeSettings        `toml:"xcode"`
}

// VisualStudioSettings holds Visual Studio specific project options.
type VisualStudioSettings struct {
	// Version selects the tools version ("2015", "2017", "2019").
	Version string `toml:"version" validate:"omitempty,oneof=2015 2017 2019"`
}

// XcodeSettings holds Xcode specific project options.
type XcodeSettings struct {
	// GroupByTarget groups files under per-target groups instead of one
	// flat tree. Defaults to true.
	GroupByTarget *bool `toml:"group_by_target"`
}

// GroupsByTarget resolves the default.
func (x XcodeSettings) GroupsByTarget() bool {
	return x.GroupByTarget == nil || *x.GroupByTarget
}

// Target is a named buildable (or file-only) unit.
type Target struct {
	// Type defaults to TargetAuto: infer from resolved source files.
	Type TargetType `toml:"type"`

	// Sources and Resources are glob patterns, resolved relative to the
	// input directory in declared order.
	Sources   []string `toml:"sources"`
	Resources []string `toml:"resources"`

	// Assets names a single directory root whose whole tree is collected.
	Assets string `toml:"assets"`

	// Depends lists target names this target depends on. Informational;
	// the resolution core does not consume it.
	Depends []string `toml:"depends"`

	// Extends lists targets whose files and settings are folded into this
	// target's build artifact, in declared order.
	Extends []string `toml:"extends"`

	TargetFilter
	Settings

	// Profiles are target-level profile declarations.
	Profiles Profiles `toml:"profiles" validate:"dive,dive"`

	// Exclude maps a directory prefix to the platforms for which files
	// under it do not participate in the build.
	Exclude map[string][]PlatformType `toml:"exclude"`
}

// MatchFile reports whether the file at the given slash-separated relative
// path participates in this target's build on the given platform.
// The platform must be concrete.
func (t *Target) MatchFile(path string, p PlatformType) bool {
	if p == PlatformAny {
		panic("config: MatchFile called with the wildcard platform")
	}
	for dir, excluded := range t.Exclude {
		if !underDir(path, dir) {
			continue
		}
		for _, e := range excluded {
			if e == p {
				return false
			}
		}
	}
	return true
}

func underDir(path, dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	return path == dir || strings.HasPrefix(path, dir+"/")
}

// Profile is one variant of a named build configuration, optionally narrowed
// to an architecture and/or platform.
type Profile struct {
	// Architecture narrows the variant; ArchAny applies everywhere.
	Architecture Architecture `toml:"arch"`

	// Platform narrows the variant; PlatformAny applies everywhere.
	Platform PlatformType `toml:"platform"`

	Settings
}

// Applies reports whether this variant participates in the given concrete
// (platform, architecture) combination.
func (p *Profile) Applies(pt PlatformType, a Architecture) bool {
	if pt == PlatformAny || a == ArchAny {
		panic("config: Profile.Applies called with a wildcard value")
	}
	return (p.Platform == PlatformAny || p.Platform == pt) &&
		(p.Architecture == ArchAny || p.Architecture == a)
}

// TargetFilter gates whether a project or target participates in a build
// variant. Each allow-list is evaluated independently; an empty list matches
// every concrete value. Wildcards never appear as list members.
type TargetFilter struct {
	Platforms     []PlatformType `toml:"platforms"`
	Architectures []Architecture `toml:"architectures"`
}

// MatchesPlatform reports whether the concrete platform passes the filter.
// Calling it with PlatformAny is a contract violation.
func (f *TargetFilter) MatchesPlatform(p PlatformType) bool {
	if p == PlatformAny {
		panic("config: MatchesPlatform called with the wildcard platform")
	}
	if len(f.Platforms) == 0 {
		return true
	}
	for _, k := range f.Platforms {
		if k == p {
			return true
		}
	}
	return false
}

// MatchesArchitecture reports whether the concrete architecture passes the
// filter. Calling it with ArchAny is a contract violation.
func (f *TargetFilter) MatchesArchitecture(a Architecture) bool {
	if a == ArchAny {
		panic("config: MatchesArchitecture called with the wildcard architecture")
	}
	if len(f.Architectures) == 0 {
		return true
	}
	for _, k := range f.Architectures {
		if k == a {
			return true
		}
	}
	return false
}

// Env carries the compiler-related environment of the invoking shell.
type Env struct {
	CFlags   string
	CXXFlags string
	LDFlags  string
}

func (e Env) String() string {
	return fmt.Sprintf("CFLAGS=%q CXXFLAGS=%q LDFLAGS=%q", e.CFlags, e.CXXFlags, e.LDFlags)
}

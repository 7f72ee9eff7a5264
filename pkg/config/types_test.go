package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetFilterEmptyMatchesAll(t *testing.T) {
	f := TargetFilter{}
	for _, p := range knownPlatforms {
		assert.True(t, f.MatchesPlatform(p))
	}
	for _, a := range knownArchitectures {
		assert.True(t, f.MatchesArchitecture(a))
	}
}

func TestTargetFilterMembership(t *testing.T) {
	f := TargetFilter{
		Platforms:     []PlatformType{PlatformWindows, PlatformLinux},
		Architectures: []Architecture{ArchX64},
	}

	assert.True(t, f.MatchesPlatform(PlatformWindows))
	assert.False(t, f.MatchesPlatform(PlatformAndroid))
	assert.True(t, f.MatchesArchitecture(ArchX64))
	assert.False(t, f.MatchesArchitecture(ArchARM64))
}

func TestTargetFilterAxesIndependent(t *testing.T) {
	f := TargetFilter{Platforms: []PlatformType{PlatformIOS}}
	assert.True(t, f.MatchesArchitecture(ArchX86),
		"empty architecture list matches even when the platform list is narrow")
}

func TestTargetFilterWildcardArgumentPanics(t *testing.T) {
	f := TargetFilter{}
	require.Panics(t, func() { f.MatchesPlatform(PlatformAny) })
	require.Panics(t, func() { f.MatchesArchitecture(ArchAny) })
}

func TestProfileApplies(t *testing.T) {
	anyAny := Profile{}
	assert.True(t, anyAny.Applies(PlatformWindows, ArchX86))
	assert.True(t, anyAny.Applies(PlatformHTML5, ArchARM64))

	narrowed := Profile{Platform: PlatformAndroid, Architecture: ArchARM64}
	assert.True(t, narrowed.Applies(PlatformAndroid, ArchARM64))
	assert.False(t, narrowed.Applies(PlatformAndroid, ArchARM))
	assert.False(t, narrowed.Applies(PlatformIOS, ArchARM64))

	require.Panics(t, func() { anyAny.Applies(PlatformAny, ArchX64) })
	require.Panics(t, func() { anyAny.Applies(PlatformLinux, ArchAny) })
}

func TestMatchFile(t *testing.T) {
	target := &Target{
		Exclude: map[string][]PlatformType{
			"src/win32":  {PlatformLinux, PlatformMacOS},
			"src/posix/": {PlatformWindows},
		},
	}

	assert.True(t, target.MatchFile("src/main.cpp", PlatformLinux))
	assert.False(t, target.MatchFile("src/win32/io.cpp", PlatformLinux))
	assert.True(t, target.MatchFile("src/win32/io.cpp", PlatformWindows))
	assert.False(t, target.MatchFile("src/posix/io.cpp", PlatformWindows),
		"trailing slash on the exclude prefix is tolerated")
	assert.True(t, target.MatchFile("src/win32extra/io.cpp", PlatformLinux),
		"prefix match is per path element, not per byte")

	require.Panics(t, func() { target.MatchFile("src/main.cpp", PlatformAny) })
}

func TestTargetOrderLookups(t *testing.T) {
	proj := &Project{
		Targets: map[string]*Target{
			"core": {},
			"app":  {},
		},
		TargetNames: []string{"core", "app"},
	}

	name, target := proj.Target(0)
	assert.Equal(t, "core", name)
	require.NotNil(t, target)

	assert.Equal(t, 1, proj.TargetIndex("app"))
	assert.Equal(t, -1, proj.TargetIndex("missing"))
}

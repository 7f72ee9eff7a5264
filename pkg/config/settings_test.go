package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineScalarPrecedence(t *testing.T) {
	primary := Settings{WarningLevel: intp(4), Optimize: optimizep(OptimizeSize)}
	fallback := Settings{WarningLevel: intp(1), WarningAsError: boolp(true)}

	out := Combine(primary, fallback)

	require.NotNil(t, out.WarningLevel)
	assert.Equal(t, 4, *out.WarningLevel, "primary scalar wins")
	require.NotNil(t, out.WarningAsError)
	assert.True(t, *out.WarningAsError, "absent primary scalar falls back")
	require.NotNil(t, out.Optimize)
	assert.Equal(t, OptimizeSize, *out.Optimize)
	assert.Nil(t, out.StrictAliasing, "absent on both sides stays absent")
}

func TestCombineNotCommutative(t *testing.T) {
	a := Settings{Optimize: optimizep(OptimizeNone)}
	b := Settings{Optimize: optimizep(OptimizeFull)}

	ab := Combine(a, b)
	ba := Combine(b, a)

	assert.Equal(t, OptimizeNone, *ab.Optimize)
	assert.Equal(t, OptimizeFull, *ba.Optimize)
}

func TestCombineSequencesConcatenate(t *testing.T) {
	primary := Settings{Defines: []string{"APP", "TRACE"}, Libs: []string{"z"}}
	fallback := Settings{Defines: []string{"CORE"}, Libs: []string{"m", "z"}}

	out := Combine(primary, fallback)

	assert.Equal(t, []string{"APP", "TRACE", "CORE"}, out.Defines)
	assert.Equal(t, []string{"z", "m", "z"}, out.Libs, "duplicates keep link order")
}

func TestCombineSelfDoublesSequences(t *testing.T) {
	s := Settings{Defines: []string{"X"}}
	out := Combine(s, s)
	assert.Equal(t, []string{"X", "X"}, out.Defines)
}

func TestCombineEmptySequencesStayPresent(t *testing.T) {
	out := Combine(Settings{}, Settings{})
	assert.NotNil(t, out.Defines)
	assert.Empty(t, out.Defines)
	assert.NotNil(t, out.IncludeDirs)
	assert.Empty(t, out.Libs)
}

func TestDefaultProfiles(t *testing.T) {
	defaults := DefaultProfiles()
	require.Len(t, defaults, 2)

	debug := defaults["Debug"]
	require.Len(t, debug, 1)
	assert.Equal(t, PlatformAny, debug[0].Platform, "built-ins apply everywhere")
	assert.Equal(t, ArchAny, debug[0].Architecture)
	assert.Equal(t, OptimizeNone, *debug[0].Optimize)
	assert.False(t, *debug[0].WarningAsError)
	assert.True(t, *debug[0].LinkIncremental)

	release := defaults["Release"]
	require.Len(t, release, 1)
	assert.Equal(t, OptimizeFull, *release[0].Optimize)
	assert.True(t, *release[0].WarningAsError)
	assert.True(t, *release[0].OmitFramePointer)
	assert.False(t, *release[0].LinkIncremental)
}

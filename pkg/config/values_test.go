package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformTypeUnmarshal(t *testing.T) {
	var p PlatformType
	require.NoError(t, p.UnmarshalText([]byte("Windows")))
	assert.Equal(t, PlatformWindows, p)

	assert.Error(t, p.UnmarshalText([]byte("Any")), "wildcard is encoded by absence")
	assert.Error(t, p.UnmarshalText([]byte("")))
	assert.Error(t, p.UnmarshalText([]byte("windows")), "names are case sensitive")
}

func TestArchitectureUnmarshal(t *testing.T) {
	var a Architecture
	require.NoError(t, a.UnmarshalText([]byte("ARM64")))
	assert.Equal(t, ArchARM64, a)
	assert.Error(t, a.UnmarshalText([]byte("Any")))
}

func TestTargetTypeUnmarshal(t *testing.T) {
	var tt TargetType
	require.NoError(t, tt.UnmarshalText([]byte("SharedLibrary")))
	assert.Equal(t, TargetSharedLibrary, tt)
	assert.Error(t, tt.UnmarshalText([]byte("Auto")), "Auto is the implicit default")
}

func TestTargetTypeCompiled(t *testing.T) {
	assert.True(t, TargetConsole.Compiled())
	assert.True(t, TargetStaticLibrary.Compiled())
	assert.False(t, TargetNone.Compiled())
	assert.False(t, TargetCustom.Compiled())
	assert.False(t, TargetAuto.Compiled())
}

func TestLanguageStandardsDecodeFromIntegers(t *testing.T) {
	var c CStandard
	require.NoError(t, c.UnmarshalTOML(int64(99)))
	assert.Equal(t, C99, c)
	assert.Error(t, c.UnmarshalTOML(int64(42)))
	assert.Error(t, c.UnmarshalTOML("99"))

	var cxx CXXStandard
	require.NoError(t, cxx.UnmarshalTOML(int64(17)))
	assert.Equal(t, CXX17, cxx)
	assert.Error(t, cxx.UnmarshalTOML(int64(20)))
}

func TestWildcardStringForms(t *testing.T) {
	assert.Equal(t, "Any", PlatformAny.String())
	assert.Equal(t, "Any", ArchAny.String())
	assert.Equal(t, "Auto", TargetAuto.String())
	assert.Equal(t, "tvOS", PlatformTVOS.DisplayName())
	assert.Equal(t, "Windows", PlatformWindows.DisplayName())
}

package config

import "fmt"

// PlatformType identifies a deployment platform. The zero value is
// PlatformAny, the wildcard: it stands for "not yet chosen" or "matches
// everything" and never appears in a parsed document.
type PlatformType string

const (
	PlatformAny     PlatformType = ""
	PlatformWindows PlatformType = "Windows"
	PlatformLinux   PlatformType = "Linux"
	PlatformMacOS   PlatformType = "MacOS"
	PlatformIOS     PlatformType = "IOS"
	PlatformTVOS    PlatformType = "TVOS"
	PlatformWatchOS PlatformType = "WatchOS"
	PlatformAndroid PlatformType = "Android"
	PlatformHTML5   PlatformType = "HTML5"
)

// knownPlatforms lists every concrete platform in declaration order.
var knownPlatforms = []PlatformType{
	PlatformWindows, PlatformLinux, PlatformMacOS, PlatformIOS,
	PlatformTVOS, PlatformWatchOS, PlatformAndroid, PlatformHTML5,
}

// UnmarshalText decodes a platform name from a document. Wildcards are
// encoded by absence, so "Any" (or an empty string) is a schema error here.
func (p *PlatformType) UnmarshalText(text []byte) error {
	v := PlatformType(text)
	for _, k := range knownPlatforms {
		if v == k {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown platform %q", string(text))
}

func (p PlatformType) String() string {
	if p == PlatformAny {
		return "Any"
	}
	return string(p)
}

// DisplayName returns the conventional spelling used in emitted files.
func (p PlatformType) DisplayName() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformMacOS:
		return "macOS"
	case PlatformIOS:
		return "iOS"
	case PlatformTVOS:
		return "tvOS"
	case PlatformWatchOS:
		return "watchOS"
	default:
		return p.String()
	}
}

// Architecture identifies a CPU architecture. The zero value is ArchAny, the
// wildcard, and never appears in a parsed document.
type Architecture string

const (
	ArchAny   Architecture = ""
	ArchX86   Architecture = "X86"
	ArchX64   Architecture = "X64"
	ArchARM   Architecture = "ARM"
	ArchARM64 Architecture = "ARM64"
)

var knownArchitectures = []Architecture{ArchX86, ArchX64, ArchARM, ArchARM64}

// UnmarshalText decodes an architecture name; "Any" is rejected.
func (a *Architecture) UnmarshalText(text []byte) error {
	v := Architecture(text)
	for _, k := range knownArchitectures {
		if v == k {
			*a = v
			return nil
		}
	}
	return fmt.Errorf("unknown architecture %q", string(text))
}

func (a Architecture) String() string {
	if a == ArchAny {
		return "Any"
	}
	return string(a)
}

// TargetType describes what a target builds into. The zero value is
// TargetAuto: infer the type from the target's resolved source files.
type TargetType string

const (
	TargetAuto TargetType = ""

	// TargetNone does not participate in any build; it only groups files.
	TargetNone TargetType = "None"

	// TargetCustom builds via user-supplied commands.
	TargetCustom TargetType = "Custom"

	// TargetConsole is a command-line application.
	TargetConsole TargetType = "Console"

	// TargetApplication is a windowed application. Only different from
	// Console on Windows and macOS.
	TargetApplication TargetType = "Application"

	// TargetStaticLibrary produces a *.lib or *.a file.
	TargetStaticLibrary TargetType = "StaticLibrary"

	// TargetSharedLibrary produces a *.dll, *.so or *.dylib file.
	TargetSharedLibrary TargetType = "SharedLibrary"
)

var knownTargetTypes = []TargetType{
	TargetNone, TargetCustom, TargetConsole, TargetApplication,
	TargetStaticLibrary, TargetSharedLibrary,
}

// UnmarshalText decodes a target type; "Auto" is the default and is encoded
// by leaving the field out, so spelling it is rejected.
func (t *TargetType) UnmarshalText(text []byte) error {
	v := TargetType(text)
	for _, k := range knownTargetTypes {
		if v == k {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown target type %q", string(text))
}

func (t TargetType) String() string {
	if t == TargetAuto {
		return "Auto"
	}
	return string(t)
}

// Compiled reports whether the type produces a compiled artifact.
func (t TargetType) Compiled() bool {
	switch t {
	case TargetConsole, TargetApplication, TargetStaticLibrary, TargetSharedLibrary:
		return true
	default:
		return false
	}
}

// Optimize selects the optimization mode.
type Optimize string

const (
	OptimizeNone  Optimize = "None"
	OptimizeSize  Optimize = "Size"
	OptimizeSpeed Optimize = "Speed"
	OptimizeFull  Optimize = "Full"
)

// UnmarshalText decodes an optimization mode.
func (o *Optimize) UnmarshalText(text []byte) error {
	switch v := Optimize(text); v {
	case OptimizeNone, OptimizeSize, OptimizeSpeed, OptimizeFull:
		*o = v
		return nil
	default:
		return fmt.Errorf("unknown optimize mode %q", string(text))
	}
}

// CStandard is a C language standard, written as a bare integer in documents.
type CStandard int

const (
	C89 CStandard = 89
	C99 CStandard = 99
	C11 CStandard = 11
)

// UnmarshalTOML decodes a C standard from an integer document value.
func (c *CStandard) UnmarshalTOML(v interface{}) error {
	n, ok := v.(int64)
	if !ok {
		return fmt.Errorf("c standard must be an integer, got %T", v)
	}
	switch s := CStandard(n); s {
	case C89, C99, C11:
		*c = s
		return nil
	default:
		return fmt.Errorf("unknown c standard %d", n)
	}
}

// CXXStandard is a C++ language standard, written as a bare integer.
type CXXStandard int

const (
	CXX03 CXXStandard = 3
	CXX11 CXXStandard = 11
	CXX14 CXXStandard = 14
	CXX17 CXXStandard = 17
)

// UnmarshalTOML decodes a C++ standard from an integer document value.
func (c *CXXStandard) UnmarshalTOML(v interface{}) error {
	n, ok := v.(int64)
	if !ok {
		return fmt.Errorf("c++ standard must be an integer, got %T", v)
	}
	switch s := CXXStandard(n); s {
	case CXX03, CXX11, CXX14, CXX17:
		*c = s
		return nil
	default:
		return fmt.Errorf("unknown c++ standard %d", n)
	}
}

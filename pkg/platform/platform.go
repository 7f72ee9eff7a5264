// Package platform describes the deployment targets kiln can emit projects
// for: each platform reports its identity and the architectures it supports.
// The front-end uses the registry to validate user-declared filters; the
// merge and graph logic never consults it.
package platform

import "github.com/kilnproj/kiln/pkg/config"

// Platform is one deployment target.
type Platform interface {
	// Type returns the platform identity. Never PlatformAny.
	Type() config.PlatformType

	// SupportsArchitecture reports whether the platform can build for the
	// concrete architecture. Calling it with ArchAny is a contract
	// violation.
	SupportsArchitecture(a config.Architecture) bool
}

// All returns the platform registry in a fixed order.
func All() []Platform {
	return []Platform{
		windows{}, linux{}, macOS{}, iOS{}, tvOS{}, watchOS{}, android{}, html5{},
	}
}

// ByType looks up a platform by identity.
func ByType(t config.PlatformType) (Platform, bool) {
	for _, p := range All() {
		if p.Type() == t {
			return p, true
		}
	}
	return nil, false
}

func assertConcrete(a config.Architecture) {
	if a == config.ArchAny {
		panic("platform: SupportsArchitecture called with the wildcard architecture")
	}
}

type windows struct{}

func (windows) Type() config.PlatformType { return config.PlatformWindows }
func (windows) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchX86 || a == config.ArchX64
}

type linux struct{}

func (linux) Type() config.PlatformType { return config.PlatformLinux }
func (linux) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchX86 || a == config.ArchX64
}

type macOS struct{}

func (macOS) Type() config.PlatformType { return config.PlatformMacOS }
func (macOS) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchX64
}

type iOS struct{}

func (iOS) Type() config.PlatformType { return config.PlatformIOS }
func (iOS) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchARM || a == config.ArchARM64
}

type tvOS struct{}

func (tvOS) Type() config.PlatformType { return config.PlatformTVOS }
func (tvOS) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchARM64
}

type watchOS struct{}

func (watchOS) Type() config.PlatformType { return config.PlatformWatchOS }
func (watchOS) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchARM64
}

type android struct{}

func (android) Type() config.PlatformType { return config.PlatformAndroid }
func (android) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	return a == config.ArchARM || a == config.ArchARM64 || a == config.ArchX86
}

type html5 struct{}

func (html5) Type() config.PlatformType { return config.PlatformHTML5 }
func (html5) SupportsArchitecture(a config.Architecture) bool {
	assertConcrete(a)
	// wasm carries its own machine model; no native architecture applies
	return false
}

package config

// Settings is the compiler/linker/preprocessor option set attached to a
// project, target or profile layer. Scalar fields are optional (nil means
// "inherit from the fallback layer"); sequence fields are ordered and
// concatenated across layers.
type Settings struct {
	// Compiler
	IncludeDirs    []string `toml:"include_dirs"`
	WarningLevel   *int     `toml:"warning_level" validate:"omitempty,min=0,max=4"`
	WarningAsError *bool    `toml:"warning_as_error"`

	// Optimizations
	Optimize         *Optimize `toml:"optimize"`
	StrictAliasing   *bool     `toml:"strict_aliasing"`
	OmitFramePointer *bool     `toml:"omit_frame_pointer"`

	// Preprocessor
	Defines []string `toml:"defines"`
	Undefs  []string `toml:"undefs"`

	// Codegen
	EnableExceptions *bool `toml:"enable_exceptions"`

	// Language
	EnableRTTI  *bool        `toml:"enable_rtti"`
	CStandard   *CStandard   `toml:"c_standard"`
	CXXStandard *CXXStandard `toml:"cxx_standard"`

	// Linker
	LinkIncremental *bool    `toml:"link_incremental"`
	LibDirs         []string `toml:"lib_dirs"`
	Libs            []string `toml:"libs"`

	// Platform specific
	AndroidTargetAPILevel *int `toml:"android_target_api_level"`

	// Architecture specific
	ARMThumbMode *bool `toml:"arm_thumb_mode"`
}

// Combine merges a more-specific settings layer with a less-specific
// fallback into one effective layer. Scalars take the primary's value when
// present, the fallback's otherwise. Sequences are the primary's entries
// followed by the fallback's, duplicates preserved: duplicate defines are
// harmless, and overlapping lib entries must keep link order. A chain of
// layers is folded by repeated application with the more specific layer as
// primary. Combine never fails and has no side effects.
func Combine(primary, fallback Settings) Settings {
	return Settings{
		IncludeDirs:    combineSeq(primary.IncludeDirs, fallback.IncludeDirs),
		WarningLevel:   combineScalar(primary.WarningLevel, fallback.WarningLevel),
		WarningAsError: combineScalar(primary.WarningAsError, fallback.WarningAsError),

		Optimize:         combineScalar(primary.Optimize, fallback.Optimize),
		StrictAliasing:   combineScalar(primary.StrictAliasing, fallback.StrictAliasing),
		OmitFramePointer: combineScalar(primary.OmitFramePointer, fallback.OmitFramePointer),

		Defines: combineSeq(primary.Defines, fallback.Defines),
		Undefs:  combineSeq(primary.Undefs, fallback.Undefs),

		EnableExceptions: combineScalar(primary.EnableExceptions, fallback.EnableExceptions),

		EnableRTTI:  combineScalar(primary.EnableRTTI, fallback.EnableRTTI),
		CStandard:   combineScalar(primary.CStandard, fallback.CStandard),
		CXXStandard: combineScalar(primary.CXXStandard, fallback.CXXStandard),

		LinkIncremental: combineScalar(primary.LinkIncremental, fallback.LinkIncremental),
		LibDirs:         combineSeq(primary.LibDirs, fallback.LibDirs),
		Libs:            combineSeq(primary.Libs, fallback.Libs),

		AndroidTargetAPILevel: combineScalar(primary.AndroidTargetAPILevel, fallback.AndroidTargetAPILevel),

		ARMThumbMode: combineScalar(primary.ARMThumbMode, fallback.ARMThumbMode),
	}
}

// combineScalar is first-value-wins: the primary's value when present.
func combineScalar[T any](primary, fallback *T) *T {
	if primary != nil {
		return primary
	}
	return fallback
}

// combineSeq concatenates primary-then-fallback. Two empty inputs yield an
// empty, never absent, sequence.
func combineSeq(primary, fallback []string) []string {
	out := make([]string, 0, len(primary)+len(fallback))
	out = append(out, primary...)
	out = append(out, fallback...)
	return out
}

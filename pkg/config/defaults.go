package config

func intp(v int) *int                { return &v }
func boolp(v bool) *bool             { return &v }
func optimizep(v Optimize) *Optimize { return &v }

// debugSettings is the built-in Debug profile: keep the program inspectable.
func debugSettings() Settings {
	return Settings{
		WarningLevel:     intp(3),
		WarningAsError:   boolp(false),
		Optimize:         optimizep(OptimizeNone),
		StrictAliasing:   boolp(false),
		OmitFramePointer: boolp(false),
		LinkIncremental:  boolp(true),
	}
}

// releaseSettings is the built-in Release profile: full optimization and
// warnings promoted to errors.
func releaseSettings() Settings {
	return Settings{
		WarningLevel:     intp(3),
		WarningAsError:   boolp(true),
		Optimize:         optimizep(OptimizeFull),
		StrictAliasing:   boolp(true),
		OmitFramePointer: boolp(true),
		LinkIncremental:  boolp(false),
	}
}

// DefaultProfiles returns the two always-available profiles, Debug and
// Release. They are the lowest-precedence fallback of every settings chain.
func DefaultProfiles() Profiles {
	return Profiles{
		"Debug":   {Profile{Settings: debugSettings()}},
		"Release": {Profile{Settings: releaseSettings()}},
	}
}

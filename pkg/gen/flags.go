package gen

import (
	"fmt"

	"github.com/kilnproj/kiln/pkg/config"
)

// cFlags translates an effective settings layer into gcc/clang style
// compiler flags, in a fixed order so emitted files are diff-stable.
func cFlags(s config.Settings, cxx bool) []string {
	var flags []string

	if s.WarningLevel != nil {
		switch *s.WarningLevel {
		case 0:
			flags = append(flags, "-w")
		case 1, 2:
			flags = append(flags, "-Wall")
		case 3:
			flags = append(flags, "-Wall", "-Wextra")
		default:
			flags = append(flags, "-Wall", "-Wextra", "-Wpedantic")
		}
	}
	if s.WarningAsError != nil && *s.WarningAsError {
		flags = append(flags, "-Werror")
	}

	if s.Optimize != nil {
		switch *s.Optimize {
		case config.OptimizeNone:
			flags = append(flags, "-O0")
		case config.OptimizeSize:
			flags = append(flags, "-Os")
		case config.OptimizeSpeed:
			flags = append(flags, "-O2")
		case config.OptimizeFull:
			flags = append(flags, "-O3")
		}
	}
	flags = appendToggle(flags, s.StrictAliasing, "-fstrict-aliasing", "-fno-strict-aliasing")
	flags = appendToggle(flags, s.OmitFramePointer, "-fomit-frame-pointer", "-fno-omit-frame-pointer")
	flags = appendToggle(flags, s.EnableExceptions, "-fexceptions", "-fno-exceptions")
	if cxx {
		flags = appendToggle(flags, s.EnableRTTI, "-frtti", "-fno-rtti")
		if s.CXXStandard != nil {
			flags = append(flags, fmt.Sprintf("-std=c++%02d", int(*s.CXXStandard)))
		}
	} else if s.CStandard != nil {
		flags = append(flags, fmt.Sprintf("-std=c%02d", int(*s.CStandard)))
	}

	for _, d := range s.IncludeDirs {
		flags = append(flags, "-I"+d)
	}
	for _, d := range s.Defines {
		flags = append(flags, "-D"+d)
	}
	for _, u := range s.Undefs {
		flags = append(flags, "-U"+u)
	}
	return flags
}

// ldFlags translates the linker-relevant settings.
func ldFlags(s config.Settings) []string {
	var flags []string
	for _, d := range s.LibDirs {
		flags = append(flags, "-L"+d)
	}
	for _, l := range s.Libs {
		flags = append(flags, "-l"+l)
	}
	return flags
}

func appendToggle(flags []string, v *bool, on, off string) []string {
	if v == nil {
		return flags
	}
	if *v {
		return append(flags, on)
	}
	return append(flags, off)
}

// compiledExt reports whether the extension names a translation unit.
func compiledExt(ext string) bool {
	switch ext {
	case "c", "cc", "cpp", "cxx", "m", "mm":
		return true
	default:
		return false
	}
}

// headerExt reports whether the extension names a header.
func headerExt(ext string) bool {
	switch ext {
	case "h", "hh", "hpp", "hxx", "inl":
		return true
	default:
		return false
	}
}

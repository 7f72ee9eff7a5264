package resolve

import (
	"sort"

	"github.com/kilnproj/kiln/pkg/config"
)

// ProfileNames returns the single, deduplicated, sorted list of profile
// names every target must expose identically: the union of the built-in
// defaults, the project-declared names and every target's declared names.
// Multi-project output formats need one shared configuration axis, so the
// result must not depend on target declaration order or on how any mapping
// is iterated.
func ProfileNames(defaults config.Profiles, proj *config.Project) []string {
	seen := make(map[string]bool)
	var names []string

	add := func(ps config.Profiles) {
		for name := range ps {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	add(defaults)
	add(proj.Profiles)
	for _, t := range proj.Targets {
		add(t.Profiles)
	}

	sort.Strings(names)
	return names
}

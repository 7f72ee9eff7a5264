package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilnproj/kiln/pkg/config"
)

func profiles(names ...string) config.Profiles {
	ps := config.Profiles{}
	for _, n := range names {
		ps[n] = []config.Profile{{}}
	}
	return ps
}

func TestProfileNamesUnion(t *testing.T) {
	proj := &config.Project{
		Profiles: profiles("Custom", "Release"),
		Targets: map[string]*config.Target{
			"core": {Profiles: profiles("Profiling")},
			"app":  {Profiles: profiles("Custom")},
		},
		TargetNames: []string{"core", "app"},
	}

	names := ProfileNames(config.DefaultProfiles(), proj)
	assert.Equal(t, []string{"Custom", "Debug", "Profiling", "Release"}, names)
}

func TestProfileNamesDefaultsOnly(t *testing.T) {
	proj := &config.Project{
		Targets:     map[string]*config.Target{"app": {}},
		TargetNames: []string{"app"},
	}
	names := ProfileNames(config.DefaultProfiles(), proj)
	assert.Equal(t, []string{"Debug", "Release"}, names)
}

func TestProfileNamesOrderIndependent(t *testing.T) {
	// Same declarations attached to different owners must give one catalog.
	a := &config.Project{
		Profiles: profiles("Zeta"),
		Targets: map[string]*config.Target{
			"app": {Profiles: profiles("Alpha")},
		},
		TargetNames: []string{"app"},
	}
	b := &config.Project{
		Profiles: profiles("Alpha"),
		Targets: map[string]*config.Target{
			"app": {Profiles: profiles("Zeta")},
		},
		TargetNames: []string{"app"},
	}

	assert.Equal(t,
		ProfileNames(config.DefaultProfiles(), a),
		ProfileNames(config.DefaultProfiles(), b))
}

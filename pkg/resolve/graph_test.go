package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnproj/kiln/pkg/config"
)

func projectWith(targets map[string]*config.Target, order ...string) *config.Project {
	return &config.Project{Targets: targets, TargetNames: order}
}

func TestBuildExtensionGraph(t *testing.T) {
	proj := projectWith(map[string]*config.Target{
		"base":   {},
		"plugin": {Extends: []string{"base"}},
		"app":    {Extends: []string{"base", "plugin"}},
	}, "base", "plugin", "app")

	g, err := BuildExtensionGraph(proj)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{}, {0}, {0, 1}}, g.Extends)
	assert.Equal(t, [][]int{{1, 2}, {2}, {}}, g.Extended)
}

func TestBuildExtensionGraphNoExtends(t *testing.T) {
	proj := projectWith(map[string]*config.Target{
		"a": {},
		"b": {},
	}, "a", "b")

	g, err := BuildExtensionGraph(proj)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{}, {}}, g.Extends)
	assert.Equal(t, [][]int{{}, {}}, g.Extended)
}

func TestBuildExtensionGraphUnresolvedName(t *testing.T) {
	proj := projectWith(map[string]*config.Target{
		"app": {Extends: []string{"engine"}},
	}, "app")

	_, err := BuildExtensionGraph(proj)
	require.Error(t, err)
	assert.True(t, config.IsReference(err))
	assert.Contains(t, err.Error(), "engine")
	assert.Contains(t, err.Error(), "app")
}

func TestBuildExtensionGraphCycle(t *testing.T) {
	proj := projectWith(map[string]*config.Target{
		"a": {Extends: []string{"b"}},
		"b": {Extends: []string{"c"}},
		"c": {Extends: []string{"a"}},
	}, "a", "b", "c")

	_, err := BuildExtensionGraph(proj)
	require.Error(t, err)
	assert.True(t, config.IsReference(err))
	assert.Contains(t, err.Error(), "extends cycle detected")
}

func TestBuildExtensionGraphSelfCycle(t *testing.T) {
	proj := projectWith(map[string]*config.Target{
		"a": {Extends: []string{"a"}},
	}, "a")

	_, err := BuildExtensionGraph(proj)
	require.Error(t, err)
	assert.True(t, config.IsReference(err))
	assert.Contains(t, err.Error(), "a -> a")
}

func TestExtendsOrderPreserved(t *testing.T) {
	proj := projectWith(map[string]*config.Target{
		"z":   {},
		"a":   {},
		"app": {Extends: []string{"z", "a"}},
	}, "z", "a", "app")

	g, err := BuildExtensionGraph(proj)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, g.Extends[2], "declared order, not index order")
}

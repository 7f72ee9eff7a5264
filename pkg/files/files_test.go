package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnproj/kiln/pkg/config"
)

func writeTree(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func paths(fs TargetFiles) []string {
	var out []string
	for _, f := range fs {
		if !f.Dir {
			out = append(out, f.Path)
		}
	}
	return out
}

func TestResolveLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "src/z.cpp", "src/a.cpp", "src/sub/m.cpp")

	got, err := Resolve(dir, []string{"src/**/*.cpp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.cpp", "src/sub/m.cpp", "src/z.cpp"}, paths(got))
}

func TestResolveDoubleStarMatchesEveryDepth(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "core/top.cpp", "core/one/a.cpp", "core/deep/nested/x.cpp")

	got, err := Resolve(dir, []string{"core/**/*.cpp"})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"core/deep/nested/x.cpp", "core/one/a.cpp", "core/top.cpp"},
		paths(got),
		"zero, one and two directory levels all match")
}

func TestResolveMultipleDoubleStars(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"a/b/f.cpp", "a/b/y/f.cpp", "a/x/b/f.cpp", "a/x/b/y/f.cpp")

	got, err := Resolve(dir, []string{"a/**/b/**/*.cpp"})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"a/b/f.cpp", "a/b/y/f.cpp", "a/x/b/f.cpp", "a/x/b/y/f.cpp"},
		paths(got),
		"each double star independently matches zero or more levels")
}

func TestResolvePatternOrderBeatsLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.cpp", "z.h")

	got, err := Resolve(dir, []string{"*.h", "*.cpp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"z.h", "a.cpp"}, paths(got),
		"patterns apply in declared order")
}

func TestResolveBadPattern(t *testing.T) {
	dir := t.TempDir()
	_, err := Resolve(dir, []string{"src/[.cpp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad glob pattern")
}

func TestResolveAll(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"core/a.cpp", "app/main.cpp",
		"app/icon.png",
		"data/models/cube.obj",
	)

	doc := `
[project]
name = "demo"
version = "1.0.0"

[targets.core]
sources = ["core/**/*.cpp"]

[targets.app]
sources = ["app/**/*.cpp"]
resources = ["app/**/*.png"]
assets = "data"
`
	proj, err := config.Parse([]byte(doc), "Kiln.toml", "1.0.0")
	require.NoError(t, err)

	sources, resources, assets, err := ResolveAll(dir, proj)
	require.NoError(t, err)

	require.Len(t, sources, 2)
	assert.Equal(t, []string{"core/a.cpp"}, paths(sources[0]))
	assert.Equal(t, []string{"app/main.cpp"}, paths(sources[1]))

	assert.Empty(t, paths(resources[0]))
	assert.Equal(t, []string{"app/icon.png"}, paths(resources[1]))

	assert.Empty(t, assets[0], "no asset root declared")
	assert.Equal(t, []string{"data/models/cube.obj"}, paths(assets[1]))
}

func TestMetafiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "Kiln.toml", "README.md", ".git/config", ".DS_Store", "src/a.cpp")

	got, err := Metafiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range got {
		names = append(names, f.Path)
	}
	assert.Equal(t, []string{"Kiln.toml", "README.md", "src"}, names,
		"top level only, version control litter skipped")
}

func TestFileInfoHelpers(t *testing.T) {
	f := FileInfo{Path: "src/render/mesh.cpp"}
	assert.Equal(t, "mesh.cpp", f.Name())
	assert.Equal(t, "cpp", f.Ext())

	assert.Empty(t, FileInfo{Path: "Makefile"}.Ext())
}

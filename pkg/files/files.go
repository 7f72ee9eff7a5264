// Package files resolves the glob patterns of every target into ordered file
// records. Resolution runs once, before context assembly; the per-target
// lists are indexed positionally in target declaration order and downstream
// code relies on that alignment.
package files

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kilnproj/kiln/pkg/config"
)

// FileInfo is one resolved file record: a slash-separated path relative to
// the input directory, and whether it names a directory.
type FileInfo struct {
	Path string
	Dir  bool
}

// Name returns the last path element.
func (f FileInfo) Name() string { return path.Base(f.Path) }

// Ext returns the file extension without the leading dot.
func (f FileInfo) Ext() string { return strings.TrimPrefix(path.Ext(f.Path), ".") }

// TargetFiles is the ordered file list of a single target.
type TargetFiles = []FileInfo

// AllFiles holds one file list per target, in target declaration order.
type AllFiles = []TargetFiles

// ResolveAll resolves sources, resources and assets for every target of the
// project, walking the input directory once. Within a target, patterns apply
// in declared order and each pattern's matches come out in lexical walk
// order, so the result is deterministic.
func ResolveAll(inputDir string, proj *config.Project) (sources, resources, assets AllFiles, err error) {
	entries, err := walk(inputDir)
	if err != nil {
		return nil, nil, nil, err
	}

	for _, name := range proj.TargetNames {
		t := proj.Targets[name]

		src, err := match(entries, t.Sources)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to resolve sources for target %s: %w", name, err)
		}
		res, err := match(entries, t.Resources)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to resolve resources for target %s: %w", name, err)
		}

		var ast TargetFiles
		if t.Assets != "" {
			ast, err = match(entries, []string{t.Assets + "/**/*"})
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to resolve assets for target %s: %w", name, err)
			}
		} else {
			ast = TargetFiles{}
		}

		sources = append(sources, src)
		resources = append(resources, res)
		assets = append(assets, ast)
	}
	return sources, resources, assets, nil
}

// Resolve matches the given patterns against the tree rooted at dir.
func Resolve(dir string, patterns []string) (TargetFiles, error) {
	entries, err := walk(dir)
	if err != nil {
		return nil, err
	}
	return match(entries, patterns)
}

// Metafiles lists the top-level entries of the input directory that are not
// owned by any target. Version control litter is skipped.
func Metafiles(dir string) ([]FileInfo, error) {
	var files []FileInfo
	entries, err := walkTop(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		switch e.Path {
		case ".git", ".DS_Store":
		default:
			files = append(files, e)
		}
	}
	return files, nil
}

func walk(dir string) ([]FileInfo, error) {
	var entries []FileInfo
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		entries = append(entries, FileInfo{Path: filepath.ToSlash(rel), Dir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func walkTop(dir string) ([]FileInfo, error) {
	all, err := walk(dir)
	if err != nil {
		return nil, err
	}
	var top []FileInfo
	for _, e := range all {
		if !strings.Contains(e.Path, "/") {
			top = append(top, e)
		}
	}
	return top, nil
}

func match(entries []FileInfo, patterns []string) (TargetFiles, error) {
	files := TargetFiles{}
	for _, pattern := range patterns {
		globs, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if matchAny(globs, e.Path) {
				files = append(files, e)
			}
		}
	}
	return files, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// compilePattern compiles every zero-or-more reading of the pattern's "**/"
// segments. Compiled with a separator, a double star spanning directories
// requires at least one level, so each "**/" also gets a variant with the
// segment removed: "core/**/*.cpp" must match core/a.cpp as well as
// core/sub/b.cpp.
func compilePattern(pattern string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, v := range expandDoubleStar(pattern) {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// expandDoubleStar enumerates the pattern with each "**/" either kept or
// dropped.
func expandDoubleStar(pattern string) []string {
	i := strings.Index(pattern, "**/")
	if i < 0 {
		return []string{pattern}
	}
	head := pattern[:i]
	var out []string
	for _, tail := range expandDoubleStar(pattern[i+len("**/"):]) {
		out = append(out, head+"**/"+tail, head+tail)
	}
	return out
}

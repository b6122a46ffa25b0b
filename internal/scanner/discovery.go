// Package scanner drives a configdoc build pass: it discovers Go source
// files, parses them concurrently, and feeds every annotated definition to
// the registry in whatever order parsing completes.
package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds candidate Go files under a root directory using include and
// ignore glob patterns matched against slash-separated relative paths.
type Discovery struct {
	rootDir string
	include []compiledPattern
	ignore  []compiledPattern
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
}

// NewDiscovery compiles the glob patterns and returns a Discovery rooted at
// rootDir. An empty include list matches every .go file.
func NewDiscovery(rootDir string, include, ignore []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.include = append(d.include, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignore = append(d.ignore, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// GoFiles walks the tree and returns matching Go source files. Test files,
// hidden directories, vendor and testdata trees are always skipped.
func (d *Discovery) GoFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(d.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()

		if entry.IsDir() {
			if path == d.rootDir {
				return nil
			}
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.matches(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (d *Discovery) matches(rel string) bool {
	for _, p := range d.ignore {
		if p.glob.Match(rel) {
			return false
		}
	}
	if len(d.include) == 0 {
		return true
	}
	for _, p := range d.include {
		if p.glob.Match(rel) {
			return true
		}
	}
	return false
}

package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsSourceFile reports whether path has a BSL or OneScript extension.
func IsSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bsl", ".os":
		return true
	}
	return false
}

// Discover walks root and returns the absolute paths of files matching one
// of includes and none of excludes. Patterns are doublestar globs relative
// to root with forward slashes. Результат отсортирован.
func Discover(root string, includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		includes = defaultSources
	}
	for _, p := range append(slices.Clone(includes), excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && matchAny(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(includes, rel) && !matchAny(excludes, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

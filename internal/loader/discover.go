package loader

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover walks root for .snow source files, skipping hidden directories
// (node_modules-style dotfolders, build output stashed under ".snow" caches,
// etc.), and returns project-relative paths in deterministic sorted order —
// grounded on morfx's FileWalker.matchPattern, which pairs a plain
// filepath.WalkDir traversal with doublestar pattern matching rather than a
// single doublestar.Glob call, since the dir-skip and the file-match are
// different decisions.
func Discover(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		matched, err := doublestar.Match("**/*.snow", rel)
		if err != nil || !matched {
			return nil
		}
		found = append(found, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

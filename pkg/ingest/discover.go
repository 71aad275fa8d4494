package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultTokenPatterns are the file names token exports commonly ship under.
var DefaultTokenPatterns = []string{
	"**/tokens.json",
	"**/*.tokens.json",
	"**/design-tokens.json",
	"**/variables.json",
}

// DefaultExcludes are directories never worth walking for token files.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
}

// DiscoverTokenFiles walks rootDir for token export files matching the
// given include patterns, applying exclude globs. Nil patterns use the
// defaults. Returns a sorted slice of absolute paths for deterministic output.
func DiscoverTokenFiles(rootDir string, patterns, excludes []string) ([]string, error) {
	if patterns == nil {
		patterns = DefaultTokenPatterns
	}
	if excludes == nil {
		excludes = DefaultExcludes
	}

	for _, pattern := range append(append([]string{}, patterns...), excludes...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		// Check exclusions (directories and files).
		for _, pattern := range excludes {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		for _, pattern := range patterns {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				files = append(files, path)
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", rootDir, err)
	}

	sort.Strings(files)
	return files, nil
}

package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile reports whether the project .gitignore excludes path.
// Absolute paths are outside the project and never skipped.
func shouldSkipFile(path string) bool {
	if filepath.IsAbs(path) {
		return false
	}
	gi := loadGitIgnore()
	return gi != nil && gi.MatchesPath(path)
}

// expandGlobPatterns expands glob patterns to the regular files they match,
// in pattern order and without duplicates
func expandGlobPatterns(patterns []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() || shouldSkipFile(match) {
				continue
			}
			allFiles = append(allFiles, match)
			seen[match] = true
		}
	}

	return allFiles, nil
}

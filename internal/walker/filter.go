package walker

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skippedDirs are never descended into.
var skippedDirs = []string{
	".git",
	".claimdesk",
	"node_modules",
	"__MACOSX",
	".Trash",
}

func shouldSkipDir(name string) bool {
	for _, d := range skippedDirs {
		if strings.EqualFold(name, d) {
			return true
		}
	}
	return false
}

// MatchesInclude reports whether relPath matches any include pattern. An
// empty list includes everything.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude reports whether relPath matches any exclude pattern.
func MatchesExclude(relPath string, patterns []string) bool {
	return len(patterns) > 0 && matchesAny(relPath, patterns)
}

// matchesAny tries each pattern against the full path and the base name, so
// "*.tmp" excludes temporary files at any depth.
func matchesAny(relPath string, patterns []string) bool {
	base := path.Base(relPath)
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, relPath); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

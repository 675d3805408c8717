package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never copied into a site.
var DefaultExcludes = []string{
	"node_modules",
	"__pycache__",
}

// shouldExcludeDir checks whether a directory name matches any default
// exclusion or is hidden.
func shouldExcludeDir(name string) bool {
	if isHidden(name) {
		return true
	}
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath, or its base name, matches any of the given
// doublestar patterns.
func matchesAny(relPath string, patterns []string) bool {
	// Normalize to forward slashes for consistent matching.
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// matchesGitignore checks if a relative path matches any gitignore pattern.
// Only the common subset is supported: bare names match any path component,
// patterns with a slash match from the root, and a trailing slash limits
// the pattern to directories.
func matchesGitignore(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(relPath)
	parts := strings.Split(normalized, "/")

	for _, pattern := range patterns {
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.Trim(pattern, "/")

		if !strings.Contains(pattern, "/") {
			// A directory pattern never matches the file itself.
			candidates := parts
			if dirOnly {
				candidates = parts[:len(parts)-1]
			}
			for _, part := range candidates {
				if matched, _ := doublestar.Match(pattern, part); matched {
					return true
				}
			}
			continue
		}

		if matched, _ := doublestar.Match(pattern, normalized); matched && !dirOnly {
			return true
		}
		if matched, _ := doublestar.Match(pattern+"/**", normalized); matched {
			return true
		}
	}
	return false
}

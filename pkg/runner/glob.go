package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher matches slash-separated relative paths against a set of globs.
// "*" stays within one path segment and "**" spans segments. A pattern
// without a slash also matches the base name, and "dir/**" also matches
// dir itself.
type matcher struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	source   string
	full     glob.Glob
	base     bool
	dirMatch glob.Glob
}

// newMatcher compiles patterns. An empty pattern list matches nothing.
func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{patterns: make([]compiledPattern, 0, len(patterns))}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		cp := compiledPattern{
			source: pattern,
			full:   compiled,
			base:   !strings.Contains(pattern, "/"),
		}

		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && prefix != "" {
			dir, err := glob.Compile(prefix, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			cp.dirMatch = dir
		}

		m.patterns = append(m.patterns, cp)
	}
	return m, nil
}

// CompileGlob reports whether pattern is a valid ignore or include glob.
func CompileGlob(pattern string) error {
	_, err := newMatcher([]string{pattern})
	return err
}

// empty reports whether the matcher has no patterns.
func (m *matcher) empty() bool {
	return m == nil || len(m.patterns) == 0
}

// match reports whether relPath matches any pattern.
func (m *matcher) match(relPath string) bool {
	if m.empty() {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)

	for _, p := range m.patterns {
		switch {
		case p.full.Match(relPath):
			return true
		case p.base && p.full.Match(base):
			return true
		case p.dirMatch != nil && p.dirMatch.Match(relPath):
			return true
		case strings.HasPrefix(p.source, "**/") && p.full.Match("/"+relPath):
			return true
		}
	}
	return false
}

// matchGlob matches a single path against a single pattern.
func matchGlob(relPath, pattern string) bool {
	m, err := newMatcher([]string{pattern})
	if err != nil {
		return false
	}
	return m.match(relPath)
}

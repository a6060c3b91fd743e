package reporter

import (
	"path/filepath"
	"strings"

	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// sourceLines splits a document the way the validator numbers its lines.
type sourceLines []string

func newSourceLines(content []byte) sourceLines {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(validate.Normalize(string(content)), "\n")
}

// line returns the 1-based line, or "" when it is out of range.
func (s sourceLines) line(n int) string {
	if n < 1 || n > len(s) {
		return ""
	}
	return s[n-1]
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" || path == fsutil.StdinPath || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

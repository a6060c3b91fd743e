// Package runner provides multi-file validation orchestration.
package runner

import (
	"slices"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// Options controls multi-file validation behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// fsutil.StdinPath selects standard input. If empty, defaults to the
	// current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered during directory walks. Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored walks directories such as node_modules and vendor,
	// which are skipped by default.
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Renderer renders failure reports when Config enables them.
	Renderer lint.ReportRenderer
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	if o.Config != nil && len(o.Config.Extensions) > 0 {
		return o.Config.Extensions
	}
	return config.DefaultExtensions()
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// ReadsStdin reports whether standard input is among the paths.
func (o Options) ReadsStdin() bool {
	return slices.Contains(o.Paths, fsutil.StdinPath)
}

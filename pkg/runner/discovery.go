package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/langdetect"
)

// discovery carries the state of one Discover call.
type discovery struct {
	opts       Options
	workDir    string
	extensions []string
	include    *matcher
	exclude    *matcher
}

// Discover finds documents matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// fsutil.StdinPath is passed through unchanged.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := newMatcher(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := newMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	disc := &discovery{
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		if inputPath == fsutil.StdinPath {
			add(fsutil.StdinPath)
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicitly named files are checked whatever their extension;
			// content detection decides how they are read.
			if !disc.excluded(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := disc.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk recursively walks a directory and returns matching documents.
func (d *discovery) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && d.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || d.skipDir(path, entry.Name()) {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlinked root.
				subFiles, err := d.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if d.matchesFile(path) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// skipDir reports whether a directory below the walk root is left out.
func (d *discovery) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	rel := d.rel(path)
	if !d.opts.IncludeVendored && langdetect.IsVendored(rel+"/") {
		return true
	}
	return d.exclude.match(rel)
}

// matchesFile checks a walked file against extensions and patterns.
func (d *discovery) matchesFile(path string) bool {
	if !hasMatchingExtension(path, d.extensions) {
		return false
	}
	if d.excluded(path) {
		return false
	}
	if !d.include.empty() && !d.include.match(d.rel(path)) {
		return false
	}
	return true
}

func (d *discovery) excluded(path string) bool {
	return d.exclude.match(d.rel(path))
}

// rel returns path relative to the working directory, slash separated.
func (d *discovery) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

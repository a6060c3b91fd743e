package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const appDir = "htmlcheck"

var (
	// projectFileNames are tried in each directory of the upward search,
	// in order of preference.
	projectFileNames = []string{
		".htmlcheck.yml",
		".htmlcheck.yaml",
		".htmlcheck.toml",
		"htmlcheck.yml",
		"htmlcheck.yaml",
		"htmlcheck.toml",
	}

	// dirFileNames are tried in the system and user config directories.
	dirFileNames = []string{"config.yaml", "config.yml", "config.toml"}

	// repoMarkers end the upward search at a repository root.
	repoMarkers = []string{".git", ".hg", ".svn"}
)

// ConfigPaths records the file found for each configuration layer. An
// empty field means the layer has no file.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// configLayer is one file source, named for logs and errors.
type configLayer struct {
	name string
	path string
}

// layers lists the file sources from lowest to highest precedence.
func (p *ConfigPaths) layers() []configLayer {
	return []configLayer{
		{name: "system", path: p.System},
		{name: "user", path: p.User},
		{name: "project", path: p.Project},
		{name: "explicit", path: p.Explicit},
	}
}

// DiscoverPaths looks for the system config, the user config under
// $XDG_CONFIG_HOME, and the nearest project config at or above workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirFileNames),
		User:    firstFile(userConfigDir(), dirFileNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDir)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appDir)
}

func userConfigDir() string {
	if root := os.Getenv("XDG_CONFIG_HOME"); root != "" {
		return filepath.Join(root, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// FindProjectConfig walks upward from startDir and returns the first
// project config file, or "" when there is none. The walk stops at a
// repository root, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}

		if path := firstFile(dir, projectFileNames); path != "" {
			return path, nil
		}
		if isRepoRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isRepoRoot(dir string) bool {
	for _, marker := range repoMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// IsTOMLConfig reports whether path is decoded as TOML. Every other
// config file is YAML.
func IsTOMLConfig(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

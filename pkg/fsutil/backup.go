package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupMode says where the previous report goes.
type BackupMode string

const (
	// BackupModeSidecar keeps the previous report beside the new one, with
	// BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone keeps nothing.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix names sidecar backups.
const BackupSuffix = ".bak"

// BackupConfig controls report backups.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns a disabled sidecar configuration.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path goes, or "" for
// BackupModeNone. Unknown modes are treated as sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// RotateBackup moves the report at path to its backup path, replacing an
// older backup. The caller writes the new report next. It reports whether
// a backup was made; a missing report is not an error.
func RotateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backup := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || backup == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("rotate backup: %w", err)
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", path, err)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("rotate backup: %s is not a regular file", path)
	}

	if err := os.Rename(path, backup); err != nil {
		return false, fmt.Errorf("rotate backup: %w", err)
	}
	return true, nil
}

package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultFileMode is the permission mode for new reports.
	DefaultFileMode os.FileMode = 0o644

	// DefaultDirMode is the permission mode for created report directories.
	DefaultDirMode os.FileMode = 0o755
)

// pendingFile is a temp file that replaces its target on commit.
type pendingFile struct {
	tmp    *os.File
	target string
	mode   os.FileMode
}

func createPending(target string, mode os.FileMode) (*pendingFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &pendingFile{tmp: tmp, target: target, mode: mode}, nil
}

// commit flushes the temp file and renames it over the target.
func (p *pendingFile) commit() error {
	if err := p.tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", p.tmp.Name(), err)
	}
	if err := p.tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p.tmp.Name(), err)
	}
	if err := os.Chmod(p.tmp.Name(), p.mode); err != nil {
		return fmt.Errorf("chmod %s: %w", p.tmp.Name(), err)
	}
	if err := os.Rename(p.tmp.Name(), p.target); err != nil {
		return fmt.Errorf("replace %s: %w", p.target, err)
	}
	return nil
}

// abort removes the temp file. The target is never touched.
func (p *pendingFile) abort() {
	_ = p.tmp.Close()
	_ = os.Remove(p.tmp.Name())
}

// WriteAtomic replaces path with content through a temp file and rename,
// so readers see the old report or the new one and never a partial
// write. Parent directories are created. A zero mode means
// DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	pending, err := createPending(path, mode)
	if err != nil {
		return err
	}

	if _, err := pending.tmp.Write(content); err != nil {
		pending.abort()
		return fmt.Errorf("write %s: %w", pending.tmp.Name(), err)
	}
	if err := pending.commit(); err != nil {
		pending.abort()
		return err
	}
	return nil
}

// Package filelock serializes writers of the report and state files across
// processes, and replaces files atomically so readers never see a partial
// report.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/unityconverters/samplereport/internal/domain"
)

const lockSuffix = ".lock"

// FileLock wraps a flock lock file.
type FileLock struct {
	flock *flock.Flock
	path  string
}

func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock blocks until the exclusive lock is held. The lock file's directory is
// created if needed.
func (fl *FileLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(fl.path), 0755); err != nil {
		return fmt.Errorf("creating lock directory for %s: %w", fl.path, err)
	}
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("acquiring lock on %s: %w", fl.path, err)
	}
	return nil
}

func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("releasing lock on %s: %w", fl.path, err)
	}
	return nil
}

// WithLock runs fn while holding the lock at lockPath.
func WithLock(lockPath string, fn func() error) error {
	lock := NewFileLock(lockPath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()
	return fn()
}

// AtomicWrite replaces path with data through a temp file in the same
// directory followed by a rename. On failure the previous file is untouched.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	tmp = nil
	return nil
}

// Writer implements domain.ReportWriter. Lock files live under lockDir when
// it is set, otherwise next to the target as "<name>.lock".
type Writer struct {
	lockDir string
}

var _ domain.ReportWriter = (*Writer)(nil)

func NewWriter(lockDir string) *Writer {
	return &Writer{lockDir: lockDir}
}

// LockPath returns the lock file guarding writes to path.
func (w *Writer) LockPath(path string) string {
	if w.lockDir == "" {
		return path + lockSuffix
	}
	return filepath.Join(w.lockDir, "locks", filepath.Base(path)+lockSuffix)
}

func (w *Writer) Write(path string, data []byte) error {
	return WithLock(w.LockPath(path), func() error {
		return AtomicWrite(path, data)
	})
}

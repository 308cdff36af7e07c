// Package filelock provides file locking and atomic write operations so the
// settings file survives concurrent invocations and interrupted writes.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when a lock cannot be acquired within the
// caller's deadline.
var ErrLockTimeout = errors.New("timed out waiting for file lock")

// retryDelay is the polling interval while waiting for a held lock.
const retryDelay = 25 * time.Millisecond

// FileLock wraps a flock file lock for coordinating access to a file
// across processes.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock handle for the given lock file path. The lock
// file is created on first acquisition.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockWithTimeout acquires an exclusive lock, giving up after the timeout.
// Returns ErrLockTimeout (wrapped) when the deadline passes first.
func (fl *FileLock) LockWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	acquired, err := fl.flock.TryLockContext(ctx, retryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("acquire lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("lock %s held for more than %s: %w", fl.path, timeout, ErrLockTimeout)
	}
	return nil
}

// TryLock attempts to acquire an exclusive lock without blocking.
// Returns true if the lock was acquired, false if another process holds it.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite writes data to a file through a temp-file-and-rename so
// readers never observe a partial write. The parent directory is created
// when missing; on any failure the original file is left untouched.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	// The temp file must live in the target directory: rename is only
	// atomic within one filesystem.
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// CreateTemp uses 0600; generated settings should be world-readable.
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}

// LockAndWrite acquires the lock for path, performs an atomic write, then
// releases and removes the lock file. The lock path is path + ".lock".
// Acquisition gives up after five seconds so a stale lock from a crashed
// process cannot hang the caller forever.
func LockAndWrite(path string, data []byte) error {
	lockPath := path + ".lock"
	lock := NewFileLock(lockPath)

	if err := lock.LockWithTimeout(5 * time.Second); err != nil {
		return err
	}
	defer func() {
		lock.Unlock()
		os.Remove(lockPath)
	}()

	return AtomicWrite(path, data)
}

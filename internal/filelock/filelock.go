// Package filelock provides advisory locks that keep two fseq processes from
// renumbering the same directory at the same time.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by TryLock when another process holds the lock.
var ErrLocked = errors.New("directory is locked by another fseq run")

// FileLock wraps a flock file lock for coordinating access to a directory.
type FileLock struct {
	flock  *flock.Flock
	path   string
	target string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock:  flock.New(path),
		path:   path,
		target: path,
	}
}

// ForDir creates the lock guarding dir. The lock file lives in locksDir, not
// in dir itself, so it is never mistaken for a file to sequence.
func ForDir(locksDir, dir string) (*FileLock, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	sum := sha256.Sum256([]byte(abs))
	path := filepath.Join(locksDir, hex.EncodeToString(sum[:8])+".lock")

	return &FileLock{
		flock:  flock.New(path),
		path:   path,
		target: abs,
	}, nil
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
// Returns an error if the lock cannot be acquired.
func (fl *FileLock) Lock() error {
	err := fl.flock.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.target, err)
	}
	return nil
}

// TryLock attempts to acquire an exclusive lock without blocking.
// Returns an error wrapping ErrLocked if the lock is held by another process.
func (fl *FileLock) TryLock() error {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.target, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", fl.target, ErrLocked)
	}
	return nil
}

// Unlock releases the lock.
// Returns an error if the unlock operation fails.
func (fl *FileLock) Unlock() error {
	err := fl.flock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.target, err)
	}
	return nil
}

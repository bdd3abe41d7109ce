package executor

import (
	"errors"
	"io/fs"
	"os"
)

// FS is the filesystem capability the executor mutates.
type FS interface {
	// Exists reports whether anything, including a dangling symlink, is at path.
	Exists(path string) (bool, error)
	// Rename moves src to dest. It may silently replace dest.
	Rename(src, dest string) error
}

// OSFS renames on the real filesystem.
type OSFS struct{}

// Exists implements FS.
func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Rename implements FS.
func (OSFS) Rename(src, dest string) error {
	return os.Rename(src, dest)
}

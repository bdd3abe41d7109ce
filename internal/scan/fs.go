package scan

import (
	"io/fs"
	"os"
)

// FS is the read-only filesystem capability the classifier needs.
type FS interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads the real filesystem.
type OSFS struct{}

// ReadDir implements FS.
func (OSFS) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

// Stat implements FS. It follows symlinks.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

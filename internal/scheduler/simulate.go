package scheduler

import (
	"errors"
	"fmt"

	"github.com/harrison/fseq/internal/models"
)

var (
	// ErrWouldOverwrite means a plan renames onto an occupied path.
	ErrWouldOverwrite = errors.New("destination is occupied")
	// ErrMissingSource means a plan renames a path that holds no file.
	ErrMissingSource = errors.New("source does not exist")
)

// Simulate applies plan to an in-memory directory initially holding the paths
// in occupied and returns the resulting set of paths. It fails on the first
// action that would overwrite a file or move a file that is not there.
func Simulate(occupied []string, plan []models.RenameAction) (map[string]bool, error) {
	files := make(map[string]bool, len(occupied))
	for _, p := range occupied {
		files[p] = true
	}

	for i, a := range plan {
		if !files[a.Src] {
			return files, fmt.Errorf("action %d (%s): %w", i+1, a, ErrMissingSource)
		}
		if files[a.Dest] {
			return files, fmt.Errorf("action %d (%s): %w", i+1, a, ErrWouldOverwrite)
		}
		delete(files, a.Src)
		files[a.Dest] = true
	}
	return files, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that overrides the fseq home directory.
const HomeEnv = "FSEQ_HOME"

// GetFseqHome returns the fseq home directory
// Priority order:
//  1. FSEQ_HOME environment variable (if set)
//  2. ~/.fseq
//  3. .fseq in the current working directory (fallback)
//
// The directory is created if it doesn't exist
func GetFseqHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create fseq home directory: %w", err)
		}
		return home, nil
	}

	base, err := os.UserHomeDir()
	if err != nil || base == "" {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	home := filepath.Join(base, ".fseq")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create fseq home directory: %w", err)
	}

	return home, nil
}

// GetLocksDir returns the directory holding per-directory lock files
func GetLocksDir(home string) (string, error) {
	locksDir := filepath.Join(home, "locks")

	if err := os.MkdirAll(locksDir, 0755); err != nil {
		return "", fmt.Errorf("create locks directory: %w", err)
	}

	return locksDir, nil
}

// Package fsutil provides utility functions and constants for file system operations.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

// EnsureDir creates a directory and all necessary parent directories with default
// permissions if they don't exist. Returns ErrNotADirectory if the path exists but
// is not a directory.
func EnsureDir(path string) error {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return fmt.Errorf("%s: %w", path, errors.ErrNotADirectory)
	}
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
// This is useful when you want to ensure a directory exists before creating a file.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// FileSize returns the size of the file at path in bytes. The second return value
// is false when the file does not exist.
func FileSize(path string) (int64, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if info.IsDir() {
		return 0, false, fmt.Errorf("%s: %w", path, errors.ErrNotADirectory)
	}
	return info.Size(), true, nil
}

// Package apputil has small filesystem helpers used during startup.
package apputil

import (
	"os"
	"path/filepath"
)

// FileExists reports whether the path exists and is not a directory.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

// EnsureDir creates the directory containing the given file path if it does
// not exist yet.
func EnsureDir(path string) (err error) {
	return os.MkdirAll(filepath.Dir(path), 0o700)
}

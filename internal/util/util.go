package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureParentDir creates the directory an output artifact will be written
// into, so callers can pass paths like out/plots/heatmap.svg directly.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

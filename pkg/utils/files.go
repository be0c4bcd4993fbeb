package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MakeParentDir creates the directory that will hold path, with all parents.
func MakeParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileFormat returns the lowercased extension of path without its dot, e.g. "toml".
func FileFormat(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

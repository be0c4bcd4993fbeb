package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMakeParentDir(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a", "b", "royalty.sqlite3")

	if err := MakeParentDir(path); err != nil {
		t.Fatalf("MakeParentDir failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "a", "b"))
	if err != nil {
		t.Fatalf("Expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected the file itself not to be created")
	}

	if err := MakeParentDir("royalty.sqlite3"); err != nil {
		t.Errorf("Expected no error for a bare file name, got %v", err)
	}
}

func TestFileFormat(t *testing.T) {
	tests := map[string]string{
		"pipeline.toml":      "toml",
		"conf/pipeline.YAML": "yaml",
		"pipeline.yml":       "yml",
		"statement":          "",
		".hidden/file.csv":   "csv",
	}
	for path, want := range tests {
		if got := FileFormat(path); got != want {
			t.Errorf("FileFormat(%q): expected %q, got %q", path, want, got)
		}
	}
}

// Package testutil provides filesystem helpers for tests that drive the
// scaffolder against an afero.Fs.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile creates a file with the given content, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists, failing the test on stat errors.
func Exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	return ok
}

// Workspace creates a pnpm workspace root at dir.
func Workspace(t *testing.T, fs afero.Fs, dir string) string {
	t.Helper()
	WriteFile(t, fs, filepath.Join(dir, "package.json"), "{\"private\": true}\n")
	WriteFile(t, fs, filepath.Join(dir, "pnpm-workspace.yaml"), "packages:\n  - 'packages/*'\n")
	return dir
}

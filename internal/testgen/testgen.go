// Package testgen provides utilities for building download directory trees
// with media files for testing the cleanup worker.
package testgen

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TempDir creates a temporary directory for testing and registers cleanup.
// The directory is automatically removed when the test completes.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		// Restore permissions changed by tests so removal can succeed.
		_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				_ = os.Chmod(path, 0755)
			}
			return nil
		})
		os.RemoveAll(dir)
	})
	return dir
}

// TempDownloadDir creates a temporary directory standing in for a completed
// download handed over by the host.
func TempDownloadDir(t *testing.T) string {
	t.Helper()
	return TempDir(t, "testgen-download-*")
}

// CreateSubDir creates a subdirectory within the given parent directory.
// Returns the full path to the created subdirectory.
func CreateSubDir(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create subdirectory %s: %v", dir, err)
	}
	return dir
}

// WriteFile creates a file with the given content in the specified directory.
// Returns the full path to the created file.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// CreateFiles creates one file per relative path under root, creating parent
// directories as needed. Each file's content is its relative path, which lets
// tests check that renames kept the data.
func CreateFiles(t *testing.T, root string, relPaths ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(relPaths))
	for _, rel := range relPaths {
		dir := CreateSubDir(t, root, filepath.Dir(rel))
		paths = append(paths, WriteFile(t, dir, filepath.Base(rel), []byte(rel)))
	}
	return paths
}

// ListFiles returns the sorted, slash-separated relative paths of every
// regular file under root.
func ListFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("failed to list files in %s: %v", root, err)
	}
	sort.Strings(files)
	return files
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads and returns the contents of a file.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return data
}

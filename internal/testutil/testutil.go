// Package testutil provides common test utilities for the artistpulse project.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv is a per-test scratch directory. Every path handed to its methods
// is resolved inside the directory; escaping it fails the test.
type TestEnv struct {
	t       *testing.T
	rootDir string
}

// NewTestEnv creates a sandbox under t.TempDir.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{t: t, rootDir: t.TempDir()}
}

// RootDir returns the sandbox directory.
func (e *TestEnv) RootDir() string {
	return e.rootDir
}

// Path resolves elem inside the sandbox. Absolute paths already inside the
// sandbox, such as ones returned by an earlier Path call, are accepted as is.
func (e *TestEnv) Path(elem ...string) string {
	e.t.Helper()

	joined := filepath.Join(elem...)
	if !filepath.IsAbs(joined) || !e.contains(joined) {
		joined = filepath.Join(e.rootDir, joined)
	}
	joined = filepath.Clean(joined)

	if !e.contains(joined) {
		e.t.Fatalf("path %q escapes test sandbox %q", joined, e.rootDir)
	}
	return joined
}

func (e *TestEnv) contains(path string) bool {
	root := filepath.Clean(e.rootDir)
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// WriteFile writes content inside the sandbox, creating parent directories.
func (e *TestEnv) WriteFile(path string, content []byte) {
	e.t.Helper()

	abs := e.Path(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		e.t.Fatalf("create parent of %q: %v", abs, err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		e.t.Fatalf("write %q: %v", abs, err)
	}
}

// WriteFileString is WriteFile for strings.
func (e *TestEnv) WriteFileString(path, content string) {
	e.t.Helper()
	e.WriteFile(path, []byte(content))
}

// ReadFile returns the content of a sandbox file, failing the test if it
// cannot be read.
func (e *TestEnv) ReadFile(path string) []byte {
	e.t.Helper()

	abs := e.Path(path)
	content, err := os.ReadFile(abs)
	if err != nil {
		e.t.Fatalf("read %q: %v", abs, err)
	}
	return content
}

// ReadFileString is ReadFile for strings.
func (e *TestEnv) ReadFileString(path string) string {
	e.t.Helper()
	return string(e.ReadFile(path))
}

// MkdirAll creates a directory tree inside the sandbox.
func (e *TestEnv) MkdirAll(path string) {
	e.t.Helper()

	abs := e.Path(path)
	if err := os.MkdirAll(abs, 0o755); err != nil {
		e.t.Fatalf("mkdir %q: %v", abs, err)
	}
}

// FileExists reports whether path exists inside the sandbox.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()
	_, err := os.Stat(e.Path(path))
	return err == nil
}

// RequireFileExists fails the test immediately if path is missing.
func (e *TestEnv) RequireFileExists(path string) {
	e.t.Helper()
	if !e.FileExists(path) {
		e.t.Fatalf("expected file %q to exist", e.Path(path))
	}
}

// RequireFileNotExists fails the test immediately if path exists.
func (e *TestEnv) RequireFileNotExists(path string) {
	e.t.Helper()
	if e.FileExists(path) {
		e.t.Fatalf("expected file %q to not exist", e.Path(path))
	}
}

// AssertFileContains reports an error if the file does not contain expected.
func (e *TestEnv) AssertFileContains(path, expected string) {
	e.t.Helper()
	if content := e.ReadFileString(path); !strings.Contains(content, expected) {
		e.t.Errorf("file %q does not contain %q", path, expected)
	}
}

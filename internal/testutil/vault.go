// Package testutil builds throwaway Logseq vaults for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestVault is a temporary vault directory.
type TestVault struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestVault creates a new test vault builder.
// Call Build() to create the actual vault directory.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the vault. The path is relative to the vault root.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// WithPage adds pages/<name>.md.
func (v *TestVault) WithPage(name, content string) *TestVault {
	return v.WithFile(filepath.Join("pages", name+".md"), content)
}

// WithJournal adds journals/<stem>.md, e.g. WithJournal("2023_09_04", ...).
func (v *TestVault) WithJournal(stem, content string) *TestVault {
	return v.WithFile(filepath.Join("journals", stem+".md"), content)
}

// Build creates the vault directory and all configured files.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for path, content := range v.files {
		WriteFile(v.t, filepath.Join(v.Path, path), content)
	}
	return v
}

// Join returns the absolute path of a vault-relative path.
func (v *TestVault) Join(relPath string) string {
	return filepath.Join(v.Path, relPath)
}

// ReadFile reads a vault-relative file, failing the test if it is missing.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	content, err := os.ReadFile(v.Join(relPath))
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the vault.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	_, err := os.Stat(v.Join(relPath))
	return err == nil
}

// WriteFile writes content to an absolute path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// ReadFile reads an absolute path, failing the test if it is missing.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}

// SampleTasks is a page exercising every task keyword.
func SampleTasks() string {
	return `# Test Tasks

- TODO Complete project proposal
- DOING Review documentation
- NOW Working on migration script
- LATER Write unit tests
- WAITING Client feedback
- DONE Setup development environment
- CANCELED Old feature
- CANCELLED Another old feature
`
}

// SampleProperties is a page with block and page properties.
func SampleProperties() string {
	return `# Test Properties

- TODO Complete task
  id:: abc123
  scheduled:: 2023-09-10
  deadline:: 2023-09-15
  created:: 2023-09-04
  updated:: 2023-09-05

tags:: project, work
created:: 2023-09-04
updated:: 2023-09-05
`
}

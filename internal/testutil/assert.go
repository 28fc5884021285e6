package testutil

import (
	"os"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(v.Join(relPath)); os.IsNotExist(err) {
		v.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(v.Join(relPath)); err == nil {
		v.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (v *TestVault) AssertFileNotContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileEquals fails the test unless the file content is exactly want.
func (v *TestVault) AssertFileEquals(relPath, want string) {
	v.t.Helper()
	if got := v.ReadFile(relPath); got != want {
		v.t.Errorf("file %s:\ngot:\n%s\nwant:\n%s", relPath, got, want)
	}
}

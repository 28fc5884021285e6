// Package atomicfile replaces notes on disk without ever leaving a torn file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPerm os.FileMode = 0o644

// WriteFile writes data to a temporary sibling of path and renames it into
// place. An existing file keeps its permission bits; a new one gets 0644.
func WriteFile(path string, data []byte) error {
	perm := defaultPerm
	if st, err := os.Stat(path); err == nil {
		perm = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Some filesystems refuse chmod; the rename still succeeds.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Windows cannot rename over an existing file.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	committed = true
	return nil
}

// WriteString is WriteFile for string content.
func WriteString(path, content string) error {
	return WriteFile(path, []byte(content))
}

// Package vault walks, copies and renames notes on disk.
package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/lsq2obs/internal/paths"
)

// WalkResult is one markdown note found by WalkNotes.
type WalkResult struct {
	Path         string
	RelativePath string
	Content      []byte
	Error        error
}

// WalkOptions controls which directories WalkNotes descends into.
type WalkOptions struct {
	// Exclude lists vault-relative directories to skip, e.g. "logseq/bak".
	Exclude []string

	// SkipPaths lists absolute directories to skip, such as a source vault
	// nested inside the output directory.
	SkipPaths []string
}

func (o WalkOptions) skipDir(root, path string) bool {
	for _, p := range o.SkipPaths {
		if filepath.Clean(p) == filepath.Clean(path) {
			return true
		}
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, ex := range o.Exclude {
		if strings.Trim(filepath.ToSlash(ex), "/") == rel {
			return true
		}
	}
	return false
}

// WalkNotes calls handler for every markdown note under root in lexical order.
// Read failures are reported through WalkResult.Error so the handler decides
// whether they are fatal; a non-nil handler error stops the walk.
func WalkNotes(root string, opts WalkOptions, handler func(WalkResult) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		relativePath, _ := filepath.Rel(root, path)
		if err != nil {
			if path == root {
				return err
			}
			return handler(WalkResult{Path: path, RelativePath: relativePath, Error: err})
		}

		if d.IsDir() {
			if path != root && opts.skipDir(root, path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !paths.IsMarkdown(d.Name()) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return handler(WalkResult{Path: path, RelativePath: relativePath, Error: err})
		}
		return handler(WalkResult{Path: path, RelativePath: relativePath, Content: content})
	})
}

// ListNotes returns the vault-relative paths of every note under root.
func ListNotes(root string, opts WalkOptions) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && opts.skipDir(root, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if paths.IsMarkdown(d.Name()) {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			out = append(out, rel)
		}
		return nil
	})
	return out, err
}

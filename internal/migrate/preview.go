package migrate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/lsq2obs/internal/anchors"
	"github.com/aidanlsb/lsq2obs/internal/paths"
	"github.com/aidanlsb/lsq2obs/internal/rewrite"
	"github.com/aidanlsb/lsq2obs/internal/vault"
)

// Preview rewrites a single note in memory. The anchor index is still built
// over the whole source vault so block references resolve as in a real run.
// note may be vault-relative or absolute, with or without the .md extension.
func Preview(opts Options, note string, logger *slog.Logger) (rewrite.Result, string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	src, err := sourceRoot(opts.Source)
	if err != nil {
		return rewrite.Result{}, "", err
	}

	rel, err := noteRelPath(src, note)
	if err != nil {
		return rewrite.Result{}, "", err
	}
	content, err := os.ReadFile(filepath.Join(src, rel))
	if err != nil {
		return rewrite.Result{}, "", fmt.Errorf("read note: %w", err)
	}

	index, err := anchors.Build(src, vault.WalkOptions{Exclude: opts.Exclude}, logger)
	if err != nil {
		return rewrite.Result{}, "", fmt.Errorf("build anchor index: %w", err)
	}

	res, err := rewrite.New(index, opts.EngineOptions()).Rewrite(filepath.ToSlash(rel), string(content))
	if err != nil {
		return rewrite.Result{}, "", fmt.Errorf("rewrite %s: %w", rel, err)
	}
	return res, rel, nil
}

func noteRelPath(root, note string) (string, error) {
	if note == "" {
		return "", fmt.Errorf("note path is required")
	}
	if !paths.IsMarkdown(note) {
		note += paths.MarkdownExt
	}
	rel := filepath.Clean(note)
	if filepath.IsAbs(note) {
		var err error
		if rel, err = filepath.Rel(root, note); err != nil {
			return "", fmt.Errorf("note %s is outside the vault", note)
		}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("note %s is outside the vault", note)
	}
	return rel, nil
}

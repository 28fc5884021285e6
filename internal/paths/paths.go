// Package paths converts between vault-relative note paths and the link
// targets Obsidian expects.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/aidanlsb/lsq2obs/internal/wikilink"
)

// MarkdownExt is the extension every note carries (matched case-insensitively).
const MarkdownExt = ".md"

// IsMarkdown reports whether a file name has a markdown extension.
func IsMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), MarkdownExt)
}

// Stem returns a file name without directory or markdown extension.
func Stem(name string) string {
	base := filepath.Base(name)
	if IsMarkdown(base) {
		return base[:len(base)-len(MarkdownExt)]
	}
	return base
}

// normalizeRelPath normalizes a vault-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func normalizeRelPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// LinkTarget converts a vault-relative note path to a wikilink target:
// forward slashes, no markdown extension.
//
// Examples:
// - "pages/B.md"            -> "pages/B"
// - "./journals/2023_09_04.MD" -> "journals/2023_09_04"
func LinkTarget(relPath string) string {
	p := normalizeRelPath(relPath)
	if IsMarkdown(p) {
		p = p[:len(p)-len(MarkdownExt)]
	}
	return p
}

// BlockLink renders a wikilink to a block anchor inside a note.
func BlockLink(relPath, id string) string {
	return wikilink.Format(LinkTarget(relPath), id)
}

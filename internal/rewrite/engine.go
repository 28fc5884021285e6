// Package rewrite converts a single Logseq note to Obsidian markdown.
//
// A rewrite is a fixed sequence of line passes over the note body. Every pass
// tracks code fences on its own and leaves fence markers and fenced lines
// exactly as they were.
package rewrite

import (
	"strings"
	"unicode"

	"github.com/aidanlsb/lsq2obs/internal/anchors"
	"github.com/aidanlsb/lsq2obs/internal/parser"
	"github.com/aidanlsb/lsq2obs/internal/slugs"
)

// Options are the per-run switches that affect a single note.
type Options struct {
	// Frontmatter merges page tags and a note date into the metadata block
	// and emits it.
	Frontmatter bool

	// StatusTags appends #status/<keyword> to converted tasks.
	StatusTags bool

	// StripProperties drops recognized key:: lines after conversion.
	StripProperties bool

	// Slugger normalizes tag text.
	Slugger slugs.Slugger
}

// Result is one rewritten note.
type Result struct {
	Content string
	Changed bool

	// MetaStatus reports how the original metadata block decoded.
	MetaStatus parser.MetaStatus

	// ResolvedRefs and UnresolvedRefs count ((id)) block references.
	ResolvedRefs   int
	UnresolvedRefs int
}

// Engine rewrites notes against a frozen anchor index. It holds no mutable
// state, so one Engine may serve concurrent Rewrite calls.
type Engine struct {
	index *anchors.Index
	opts  Options
}

// New returns an Engine. A nil index resolves no block references.
func New(index *anchors.Index, opts Options) *Engine {
	return &Engine{index: index, opts: opts}
}

// Rewrite converts the note at relPath (vault-relative, used for journal dates)
// whose current content is text.
func (e *Engine) Rewrite(relPath, text string) (Result, error) {
	doc := parser.DecodeDocument(text)
	lines := splitLines(doc.Body)

	scan := ScanBlocks(lines, e.opts.Slugger)
	insertAnchors(lines, scan)
	convertTasks(lines, scan, e.opts.StatusTags)
	rewriteTagsAndDates(lines, e.opts.Slugger)
	resolved, unresolved := resolveBlockRefs(lines, e.index)

	if e.opts.Frontmatter {
		doc.Meta = mergeMeta(doc.Meta, relPath, scan, e.opts.Slugger)
	}
	if e.opts.StripProperties {
		lines = stripProperties(lines)
	}

	body := strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace) + "\n"
	content, err := parser.Assemble(doc, body, e.opts.Frontmatter)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Content:        content,
		Changed:        content != text,
		MetaStatus:     doc.Status,
		ResolvedRefs:   resolved,
		UnresolvedRefs: unresolved,
	}, nil
}

func splitLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

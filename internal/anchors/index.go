// Package anchors builds the vault-wide map from block identifier to the note
// that declares it.
//
// The index is built in one pass over the whole vault before any note is
// rewritten, then frozen. Rewrites running in parallel share the same *Index
// and only read from it.
package anchors

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/aidanlsb/lsq2obs/internal/parser"
	"github.com/aidanlsb/lsq2obs/internal/vault"
)

// declRe matches an identifier declaration anywhere in a body. It is not
// fence-aware on purpose: indexing is a plain full-text scan.
var declRe = regexp.MustCompile(`(?i)^\s*(?:id|identifier)::\s*([A-Za-z0-9\-_]+)\s*$`)

var idJunk = regexp.MustCompile(`[^\p{L}\p{N}_\-]`)

// SanitizeID strips everything except letters, digits, '_' and '-'.
func SanitizeID(id string) string {
	return idJunk.ReplaceAllString(id, "")
}

// Anchor locates the declaration of a block identifier.
type Anchor struct {
	ID   string
	Path string // vault-relative note path
	Line int    // 0-based body line of the declaration
}

// Index is an immutable identifier → anchor lookup.
type Index struct {
	anchors    map[string]Anchor
	duplicates int
}

// Lookup returns the anchor for id.
func (ix *Index) Lookup(id string) (Anchor, bool) {
	if ix == nil {
		return Anchor{}, false
	}
	a, ok := ix.anchors[id]
	return a, ok
}

// Len is the number of distinct identifiers.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.anchors)
}

// Duplicates counts declarations ignored because an earlier note already
// declared the same identifier.
func (ix *Index) Duplicates() int {
	if ix == nil {
		return 0
	}
	return ix.duplicates
}

// Builder accumulates declarations. The first note to declare an identifier
// wins; later declarations are ignored.
type Builder struct {
	ix     *Index
	logger *slog.Logger
}

// NewBuilder returns an empty builder. A nil logger uses slog.Default().
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{ix: &Index{anchors: make(map[string]Anchor)}, logger: logger}
}

// AddNote scans one note's text for identifier declarations.
func (b *Builder) AddNote(relPath, text string) {
	doc := parser.DecodeDocument(text)
	for i, line := range strings.Split(doc.Body, "\n") {
		m := declRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		id := SanitizeID(m[1])
		if id == "" {
			continue
		}
		if prev, ok := b.ix.anchors[id]; ok {
			b.ix.duplicates++
			b.logger.Debug("duplicate block id ignored",
				slog.String("id", id),
				slog.String("path", relPath),
				slog.String("kept", prev.Path))
			continue
		}
		b.ix.anchors[id] = Anchor{ID: id, Path: relPath, Line: i}
	}
}

// Index freezes the builder. The builder must not be used afterwards.
func (b *Builder) Index() *Index {
	ix := b.ix
	b.ix = nil
	return ix
}

// Build indexes every note under root. Notes that cannot be read are skipped;
// only a failure to walk root itself is returned.
func Build(root string, opts vault.WalkOptions, logger *slog.Logger) (*Index, error) {
	b := NewBuilder(logger)
	err := vault.WalkNotes(root, opts, func(r vault.WalkResult) error {
		if r.Error != nil {
			b.logger.Warn("skipping unreadable note",
				slog.String("path", r.RelativePath),
				slog.String("error", r.Error.Error()))
			return nil
		}
		b.AddNote(r.RelativePath, string(r.Content))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.Index(), nil
}

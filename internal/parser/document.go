// Package parser splits notes into metadata and body and recognizes the
// line-level grammar of Logseq outlines: fences, block starts and properties.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetaDelimiter opens and closes the metadata block.
const MetaDelimiter = "---"

// MetaStatus records what DecodeDocument found at the top of a note.
type MetaStatus int

const (
	// MetaAbsent means the note has no metadata block.
	MetaAbsent MetaStatus = iota
	// MetaParsed means a metadata block was found and decoded.
	MetaParsed
	// MetaFellBack means a metadata block was found but its YAML was invalid;
	// Meta is empty and Body holds the entire original text.
	MetaFellBack
)

func (s MetaStatus) String() string {
	switch s {
	case MetaAbsent:
		return "absent"
	case MetaParsed:
		return "parsed"
	case MetaFellBack:
		return "fell-back"
	default:
		return fmt.Sprintf("MetaStatus(%d)", int(s))
	}
}

// Document is a note split into metadata and body.
type Document struct {
	Meta   map[string]any
	Body   string
	Status MetaStatus

	// Err is the YAML error behind a MetaFellBack status.
	Err error
}

// DecodeDocument splits text into its metadata block and body. It never fails:
// malformed YAML degrades to MetaFellBack with the whole text as body.
func DecodeDocument(text string) Document {
	open := MetaDelimiter + "\n"
	if !strings.HasPrefix(text, open) {
		return Document{Meta: map[string]any{}, Body: text, Status: MetaAbsent}
	}

	rest := text[len(open):]
	var raw, body string
	switch {
	case strings.HasPrefix(rest, open):
		body = rest[len(open):]
	case rest == MetaDelimiter:
	default:
		end := strings.Index(rest, "\n"+open)
		if end >= 0 {
			raw, body = rest[:end], rest[end+1+len(open):]
		} else if strings.HasSuffix(rest, "\n"+MetaDelimiter) {
			raw = strings.TrimSuffix(rest, "\n"+MetaDelimiter)
		} else {
			return Document{Meta: map[string]any{}, Body: text, Status: MetaAbsent}
		}
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return Document{Meta: map[string]any{}, Body: text, Status: MetaFellBack, Err: err}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return Document{Meta: meta, Body: body, Status: MetaParsed}
}

// EncodeMeta renders meta as a delimited YAML block with sorted keys.
func EncodeMeta(meta map[string]any) (string, error) {
	var sb strings.Builder
	sb.WriteString(MetaDelimiter + "\n")
	if len(meta) > 0 {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(meta); err != nil {
			return "", fmt.Errorf("encode metadata: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode metadata: %w", err)
		}
		sb.WriteString(strings.TrimSpace(buf.String()))
		sb.WriteString("\n")
	}
	sb.WriteString(MetaDelimiter + "\n")
	return sb.String(), nil
}

// Assemble joins metadata and body back into note text.
//
// Metadata is emitted when emitMeta is set and meta is non-empty. Otherwise a
// note that had a parsed block keeps one, and every other note is body only.
func Assemble(doc Document, body string, emitMeta bool) (string, error) {
	if (emitMeta && len(doc.Meta) > 0) || doc.Status == MetaParsed {
		header, err := EncodeMeta(doc.Meta)
		if err != nil {
			return "", err
		}
		return header + body, nil
	}
	return body, nil
}

// Package wikilink parses and renders [[target]] links.
//
// Grammar:
//
//	[[target]]
//	[[target|display text]]
//
// Target and display text are trimmed of surrounding whitespace. Code fences
// are not understood here; callers decide which lines to look at.
package wikilink

import "strings"

// ParseExact parses a string that is exactly a wikilink literal, returning its
// target and optional display text.
func ParseExact(s string) (target string, display *string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	if strings.ContainsAny(inner, "[]") {
		return "", nil, false
	}
	parts := strings.SplitN(inner, "|", 2)
	target = strings.TrimSpace(parts[0])
	if target == "" {
		return "", nil, false
	}
	if len(parts) == 2 {
		d := strings.TrimSpace(parts[1])
		display = &d
	}
	return target, display, true
}

// Format renders a link to target, optionally pointing at a block anchor.
func Format(target, blockID string) string {
	if blockID != "" {
		target += "#^" + blockID
	}
	return "[[" + target + "]]"
}

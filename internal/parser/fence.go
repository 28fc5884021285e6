package parser

import (
	"strings"
)

// FenceState tracks whether a line scan is inside a fenced code block.
// A fence closes only on the same character with at least the opening length.
type FenceState struct {
	InFence  bool
	FenceCh  byte
	FenceLen int
}

// NormalizeFenceLine strips indentation, blockquote prefixes and a single
// list marker so fences opened inside outline items are recognized.
func NormalizeFenceLine(line string) string {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimLeft(strings.TrimPrefix(s, ">"), " \t")
	}
	if len(s) >= 2 && (s[0] == '-' || s[0] == '*' || s[0] == '+') && (s[1] == ' ' || s[1] == '\t') {
		s = strings.TrimLeft(s[1:], " \t")
	}
	return s
}

// ParseFenceMarker reports whether a normalized line starts with a run of at
// least three backticks or tildes.
func ParseFenceMarker(line string) (ch byte, n int, ok bool) {
	if len(line) < 3 {
		return 0, 0, false
	}
	ch = line[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	for n < len(line) && line[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	return ch, n, true
}

// UpdateFenceState feeds one line to the state machine and reports whether the
// line itself was an opening or closing fence marker.
func (fs *FenceState) UpdateFenceState(line string) bool {
	ch, n, ok := ParseFenceMarker(NormalizeFenceLine(line))
	if !ok {
		return false
	}

	if !fs.InFence {
		fs.InFence = true
		fs.FenceCh = ch
		fs.FenceLen = n
		return true
	}

	if fs.FenceCh == ch && n >= fs.FenceLen {
		*fs = FenceState{}
		return true
	}
	return false
}

// Verbatim advances the state by one line and reports whether that line must
// be passed through untouched: fence markers and everything between them.
func (fs *FenceState) Verbatim(line string) bool {
	marker := fs.UpdateFenceState(line)
	return marker || fs.InFence
}

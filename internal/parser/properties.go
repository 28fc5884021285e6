package parser

import (
	"regexp"
	"strings"
)

var (
	propertyRe  = regexp.MustCompile(`^\s*([A-Za-z0-9_\-]+)::\s*(.+?)\s*$`)
	listItemRe  = regexp.MustCompile(`^\s*[-*]\s`)
	blankLineRe = regexp.MustCompile(`^\s*$`)
)

// Property is a "key:: value" line. Key is lowercased.
type Property struct {
	Key   string
	Value string
}

// ParseProperty parses a property line. Values must be non-empty.
func ParseProperty(line string) (Property, bool) {
	m := propertyRe.FindStringSubmatch(line)
	if m == nil {
		return Property{}, false
	}
	return Property{Key: strings.ToLower(m[1]), Value: strings.TrimSpace(m[2])}, true
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return blankLineRe.MatchString(line)
}

// StartsBlock reports whether a non-blank line opens a new outline block:
// either a list item at any depth or an unindented line.
func StartsBlock(line string) bool {
	if IsBlank(line) {
		return false
	}
	return listItemRe.MatchString(line) || !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t")
}

// Package slugs turns free text into tag- and path-safe tokens.
//
// Tag is the canonical normalizer: accents are stripped by decomposing to NFKD
// and dropping whatever is not ASCII afterwards. Text in non-Latin scripts
// therefore vanishes; a Slugger with Transliterate set runs it through
// gosimple/slug first so it survives as ASCII.
package slugs

import (
	"regexp"
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	separatorRun = regexp.MustCompile(`[\s_]+`)
	disallowed   = regexp.MustCompile(`[^a-zA-Z0-9/\-]`)
	dashRun      = regexp.MustCompile(`-+`)
)

// Slugger normalizes tag text.
type Slugger struct {
	// Transliterate maps non-Latin scripts to ASCII before normalizing.
	Transliterate bool
}

// Tag normalizes s with the default (non-transliterating) Slugger.
func Tag(s string) string {
	return Slugger{}.Tag(s)
}

// Tag returns a lowercase token made only of ASCII letters, digits, '/' and '-'.
// It never fails and Tag(Tag(x)) == Tag(x).
func (sl Slugger) Tag(s string) string {
	if sl.Transliterate {
		s = transliterate(s)
	}
	s = stripAccents(s)
	s = separatorRun.ReplaceAllString(strings.TrimSpace(s), "-")
	s = disallowed.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.ToLower(strings.Trim(s, "-"))
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// transliterate slugs each '/'-separated component so hierarchical tags keep
// their structure.
func transliterate(s string) string {
	parts := strings.Split(s, "/")
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		parts[i] = goslug.Make(part)
	}
	return strings.Join(parts, "/")
}

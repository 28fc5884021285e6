// Package dates normalizes the date spellings found in Logseq vaults to the
// canonical YYYY-MM-DD form used by Obsidian.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical output layout.
const DateLayout = "2006-01-02"

var (
	linkedDate  = regexp.MustCompile(`^\[\[(\d{4})[_-](\d{2})[_-](\d{2})\]\]`)
	bareDate    = regexp.MustCompile(`^(\d{4})[_-](\d{2})[_-](\d{2})`)
	journalStem = regexp.MustCompile(`^(\d{4})[_-](\d{2})[_-](\d{2})$`)
)

// calendarLayouts are tried in order after the pattern forms.
var calendarLayouts = []string{
	DateLayout,
	"2006_01_02",
	"2006-1-2",
	"2006_1_2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Normalize converts a date-like value to YYYY-MM-DD.
//
// Recognized forms, first match wins:
//   - a wikilink such as [[2023_09_04]] or [[2023-09-04]]
//   - a leading YYYY_MM_DD or YYYY-MM-DD token ("2023-09-10 Mon" included)
//   - the calendar layouts "Sep 4, 2023", "September 4, 2023", "4 Sep 2023", ...
//
// The second result is false when nothing matched.
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := linkedDate.FindStringSubmatch(s); m != nil {
		return join(m), true
	}
	if m := bareDate.FindStringSubmatch(s); m != nil {
		return join(m), true
	}
	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

// NormalizeValue normalizes a decoded metadata value. YAML may hand back a
// string or a time.Time depending on quoting.
func NormalizeValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return Normalize(val)
	case time.Time:
		return val.Format(DateLayout), true
	default:
		return "", false
	}
}

// JournalName returns the hyphenated form of a filename stem that is exactly a
// date (2023_09_04 or 2023-09-04). ok is false for any other stem.
func JournalName(stem string) (name string, ok bool) {
	m := journalStem.FindStringSubmatch(stem)
	if m == nil {
		return "", false
	}
	return join(m), true
}

func join(m []string) string {
	return m[1] + "-" + m[2] + "-" + m[3]
}

package rewrite

import (
	"fmt"
	"sort"

	"github.com/aidanlsb/lsq2obs/internal/dates"
	"github.com/aidanlsb/lsq2obs/internal/paths"
	"github.com/aidanlsb/lsq2obs/internal/slugs"
)

// Metadata keys written by the merge.
const (
	MetaTags = "tags"
	MetaDate = "date"
)

// mergeMeta folds page tags and the note date into meta and returns it.
func mergeMeta(meta map[string]any, relPath string, scan BlockScan, sl slugs.Slugger) map[string]any {
	if meta == nil {
		meta = make(map[string]any)
	}
	if len(scan.PageTags) > 0 {
		meta[MetaTags] = mergeTags(meta[MetaTags], scan.PageTags, sl)
	}
	if d, ok := NoteDate(meta, relPath, scan); ok {
		meta[MetaDate] = d
	}
	return meta
}

// mergeTags unions an existing tags list with page tags. Existing entries are
// kept verbatim; a tags value that is not a list is replaced.
func mergeTags(existing any, pageTags map[string]struct{}, sl slugs.Slugger) []string {
	set := make(map[string]struct{})
	if list, ok := existing.([]any); ok {
		for _, item := range list {
			if item == nil {
				continue
			}
			set[fmt.Sprint(item)] = struct{}{}
		}
	}
	for tag := range pageTags {
		if s := sl.Tag(tag); s != "" {
			set[s] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// NoteDate picks the note-level date: a journal filename first, then a
// date/created/updated metadata value, then the first created/updated block
// property in line order.
func NoteDate(meta map[string]any, relPath string, scan BlockScan) (string, bool) {
	if d, ok := dates.JournalName(paths.Stem(relPath)); ok {
		return d, true
	}
	for _, key := range []string{MetaDate, KeyCreated, KeyUpdated} {
		if v, ok := meta[key]; ok {
			if d, ok := dates.NormalizeValue(v); ok {
				return d, true
			}
		}
	}
	for _, idx := range scan.Owners() {
		for _, key := range []string{KeyCreated, KeyUpdated} {
			if v, ok := scan.Props[idx][key]; ok {
				if d, ok := dates.Normalize(v); ok {
					return d, true
				}
			}
		}
	}
	return "", false
}

package vault

import (
	"os"
	"path/filepath"

	"github.com/aidanlsb/lsq2obs/internal/dates"
	"github.com/aidanlsb/lsq2obs/internal/paths"
)

// Rename is one journal note moved to its hyphenated name.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`

	// Conflict is set when To already existed; such renames are not applied.
	Conflict bool `json:"conflict,omitempty"`
}

// RenameJournals renames every note named like 2023_09_04.md to
// 2023-09-04.md. Notes already hyphenated are untouched. With dryRun set the
// renames are only reported.
func RenameJournals(root string, opts WalkOptions, dryRun bool) ([]Rename, error) {
	notes, err := ListNotes(root, opts)
	if err != nil {
		return nil, err
	}

	var renames []Rename
	for _, rel := range notes {
		stem := paths.Stem(rel)
		name, ok := dates.JournalName(stem)
		if !ok || name == stem {
			continue
		}

		from := filepath.Join(root, rel)
		to := filepath.Join(filepath.Dir(from), name+filepath.Ext(rel))
		r := Rename{From: from, To: to}

		if _, err := os.Lstat(to); err == nil {
			r.Conflict = true
			renames = append(renames, r)
			continue
		}
		if !dryRun {
			if err := os.Rename(from, to); err != nil {
				return renames, err
			}
		}
		renames = append(renames, r)
	}
	return renames, nil
}

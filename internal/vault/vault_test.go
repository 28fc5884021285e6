package vault

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/aidanlsb/lsq2obs/internal/testutil"
)

func TestWalkNotes(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithPage("A", "a\n").
		WithPage("Upper", "u\n").
		WithFile("pages/deep/B.MD", "b\n").
		WithFile("assets/image.png", "png").
		WithFile("logseq/bak/pages/A.md", "old\n").
		WithJournal("2023_09_04", "j\n").
		Build()

	var got []string
	err := WalkNotes(v.Path, WalkOptions{Exclude: []string{"logseq/bak"}}, func(r WalkResult) error {
		if r.Error != nil {
			t.Fatalf("unexpected error for %s: %v", r.RelativePath, r.Error)
		}
		if len(r.Content) == 0 {
			t.Errorf("empty content for %s", r.RelativePath)
		}
		got = append(got, filepath.ToSlash(r.RelativePath))
		return nil
	})
	if err != nil {
		t.Fatalf("WalkNotes: %v", err)
	}

	want := []string{"journals/2023_09_04.md", "pages/A.md", "pages/Upper.md", "pages/deep/B.MD"}
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWalkNotesMissingRoot(t *testing.T) {
	err := WalkNotes(filepath.Join(t.TempDir(), "missing"), WalkOptions{}, func(WalkResult) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestCopyTree(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithPage("A", "source a\n").
		WithPage("B", "source b\n").
		WithFile("assets/x.png", "png").
		Build()

	out := filepath.Join(v.Path, "output")

	copied, err := CopyTree(v.Path, out)
	if err != nil {
		t.Fatalf("CopyTree: %v", err)
	}
	if copied != 3 {
		t.Fatalf("copied = %d, want 3", copied)
	}
	if got := testutil.ReadFile(t, filepath.Join(out, "assets", "x.png")); got != "png" {
		t.Fatalf("asset content = %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "output")); err == nil {
		t.Fatal("output copied into itself")
	}

	// Existing output files win over the source.
	testutil.WriteFile(t, filepath.Join(out, "pages", "A.md"), "migrated a\n")
	if err := os.Remove(filepath.Join(out, "pages", "B.md")); err != nil {
		t.Fatal(err)
	}
	copied, err = CopyTree(v.Path, out)
	if err != nil {
		t.Fatalf("CopyTree again: %v", err)
	}
	if copied != 1 {
		t.Fatalf("second copy = %d, want 1", copied)
	}
	if got := testutil.ReadFile(t, filepath.Join(out, "pages", "A.md")); got != "migrated a\n" {
		t.Fatalf("existing file overwritten: %q", got)
	}
}

func TestListNotesSkipPaths(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("pages/Kept.md", "kept\n").
		WithFile("source/pages/Original.md", "original\n").
		Build()

	got, err := ListNotes(v.Path, WalkOptions{SkipPaths: []string{filepath.Join(v.Path, "source")}})
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	want := []string{filepath.Join("pages", "Kept.md")}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("ListNotes() = %v, want %v", got, want)
	}
}

func TestCopyTreeSameDir(t *testing.T) {
	dir := t.TempDir()
	copied, err := CopyTree(dir, dir)
	if err != nil || copied != 0 {
		t.Fatalf("CopyTree(dir, dir) = %d, %v", copied, err)
	}
}

func TestRenameJournals(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithJournal("2023_09_04", "a\n").
		WithJournal("2023-09-05", "b\n").
		WithJournal("2023_09_06", "old\n").
		WithJournal("2023-09-06", "new\n").
		WithPage("2023_09_07 notes", "c\n").
		Build()

	renames, err := RenameJournals(v.Path, WalkOptions{}, false)
	if err != nil {
		t.Fatalf("RenameJournals: %v", err)
	}
	if len(renames) != 2 {
		t.Fatalf("renames = %+v, want 2 entries", renames)
	}

	v.AssertFileNotExists("journals/2023_09_04.md")
	v.AssertFileExists("journals/2023-09-04.md")
	v.AssertFileExists("journals/2023-09-05.md")
	v.AssertFileExists("pages/2023_09_07 notes.md")

	var conflicts int
	for _, r := range renames {
		if r.Conflict {
			conflicts++
			if filepath.Base(r.From) != "2023_09_06.md" {
				t.Errorf("unexpected conflict %+v", r)
			}
		}
	}
	if conflicts != 1 {
		t.Fatalf("conflicts = %d, want 1", conflicts)
	}
	v.AssertFileEquals("journals/2023-09-06.md", "new\n")
	v.AssertFileExists("journals/2023_09_06.md")
}

func TestRenameJournalsDryRun(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithJournal("2023_09_04", "a\n").
		Build()

	renames, err := RenameJournals(v.Path, WalkOptions{}, true)
	if err != nil {
		t.Fatalf("RenameJournals: %v", err)
	}
	if len(renames) != 1 || renames[0].Conflict {
		t.Fatalf("renames = %+v", renames)
	}
	if filepath.Base(renames[0].To) != "2023-09-04.md" {
		t.Fatalf("To = %s", renames[0].To)
	}
	v.AssertFileExists("journals/2023_09_04.md")
	v.AssertFileNotExists("journals/2023-09-04.md")
}

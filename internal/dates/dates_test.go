package dates

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2023-09-04", "2023-09-04", true},
		{"2023_09_04", "2023-09-04", true},
		{"[[2023_09_04]]", "2023-09-04", true},
		{"[[2023-09-04]]", "2023-09-04", true},
		{"  2023-09-04  ", "2023-09-04", true},
		{"2023-09-10 Mon", "2023-09-10", true},
		{"2023-9-4", "2023-09-04", true},
		{"2023_9_4", "2023-09-04", true},
		{"2023-9-04", "2023-09-04", true},
		{"Sep 4, 2023", "2023-09-04", true},
		{"Sep 04, 2023", "2023-09-04", true},
		{"September 4, 2023", "2023-09-04", true},
		{"4 Sep 2023", "2023-09-04", true},
		{"4 September 2023", "2023-09-04", true},
		{"<2023-09-10 Mon>", "", false},
		{"not a date", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeIsStableOnCanonicalInput(t *testing.T) {
	got, ok := Normalize("2023-09-04")
	if !ok {
		t.Fatal("canonical date not recognized")
	}
	again, ok := Normalize(got)
	if !ok || again != got {
		t.Fatalf("Normalize(%q) = %q, want unchanged", got, again)
	}
}

func TestNormalizeValue(t *testing.T) {
	if got, ok := NormalizeValue("Sep 4, 2023"); !ok || got != "2023-09-04" {
		t.Fatalf("string value: got (%q, %v)", got, ok)
	}
	ts := time.Date(2022, 12, 25, 0, 0, 0, 0, time.UTC)
	if got, ok := NormalizeValue(ts); !ok || got != "2022-12-25" {
		t.Fatalf("time value: got (%q, %v)", got, ok)
	}
	if _, ok := NormalizeValue(42); ok {
		t.Fatal("int value should not normalize")
	}
}

func TestJournalName(t *testing.T) {
	tests := []struct {
		stem   string
		want   string
		wantOK bool
	}{
		{"2023_09_04", "2023-09-04", true},
		{"2023-09-04", "2023-09-04", true},
		{"2023_09_04 notes", "", false},
		{"Sample Page", "", false},
	}
	for _, tt := range tests {
		got, ok := JournalName(tt.stem)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("JournalName(%q) = (%q, %v), want (%q, %v)", tt.stem, got, ok, tt.want, tt.wantOK)
		}
	}
}

package rewrite

import (
	"testing"

	"github.com/aidanlsb/lsq2obs/internal/anchors"
	"github.com/aidanlsb/lsq2obs/internal/slugs"
)

func TestConvertTask(t *testing.T) {
	tests := []struct {
		line   string
		tags   bool
		want   string
		wantOK bool
	}{
		{"- TODO Buy milk", true, "- [ ] Buy milk #status/todo", true},
		{"- DONE Ship it", true, "- [x] Ship it #status/done", true},
		{"- DOING Review documentation", true, "- [ ] Review documentation #status/doing", true},
		{"- NOW Working on migration script", true, "- [ ] Working on migration script #status/now", true},
		{"- LATER Write unit tests", true, "- [ ] Write unit tests #status/later", true},
		{"- WAITING Client feedback", true, "- [ ] Client feedback #status/waiting", true},
		{"- CANCELED Old feature", true, "- [x] Old feature #status/done", true},
		{"- CANCELLED Another old feature", true, "- [x] Another old feature #status/done", true},
		{"- TODO Buy milk", false, "- [ ] Buy milk", true},
		{"- DONE Ship it", false, "- [x] Ship it", true},
		{"  * todo nested lowercase", false, "  * [ ] nested lowercase", true},
		{"TODO not a list item", true, "TODO not a list item", false},
		{"- TODOS are not tasks", true, "- TODOS are not tasks", false},
		{"- [ ] already a checkbox", true, "- [ ] already a checkbox", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ConvertTask(tt.line, tt.tags)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("ConvertTask(%q, %v) = (%q, %v), want (%q, %v)", tt.line, tt.tags, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAnnotateSchedule(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		props Props
		want  string
	}{
		{
			name:  "scheduled",
			line:  "- [ ] Task",
			props: Props{KeyScheduled: "2023-09-10"},
			want:  "- [ ] Task ⏳ 2023-09-10",
		},
		{
			name:  "deadline wins over due",
			line:  "- [x] Task",
			props: Props{KeyDeadline: "[[2023_09_15]]", KeyDue: "2023-09-20"},
			want:  "- [x] Task 📅 2023-09-15",
		},
		{
			name:  "due with calendar spelling",
			line:  "- [ ] Task",
			props: Props{KeyDue: "Sep 20, 2023"},
			want:  "- [ ] Task 📅 2023-09-20",
		},
		{
			name:  "unparseable date is skipped",
			line:  "- [ ] Task",
			props: Props{KeyScheduled: "someday"},
			want:  "- [ ] Task",
		},
		{
			name:  "not a checkbox",
			line:  "- Plain block",
			props: Props{KeyScheduled: "2023-09-10"},
			want:  "- Plain block",
		},
		{
			name:  "icon already present",
			line:  "- [ ] Task ⏳ 2023-09-10",
			props: Props{KeyScheduled: "2023-09-11"},
			want:  "- [ ] Task ⏳ 2023-09-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := annotateSchedule(tt.line, tt.props); got != tt.want {
				t.Fatalf("annotateSchedule = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteInline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#[[Project Alpha]]", "#project-alpha"},
		{"This has #[[Tag With Spaces]] and #[[Another Tag]].", "This has #tag-with-spaces and #another-tag."},
		{"Also #regular-tag and #another_regular_tag.", "Also #regular-tag and #another_regular_tag."},
		{"[[2023_09_04]]", "[[2023-09-04]]"},
		{"[[2023-09-04]]", "[[2023-09-04]]"},
		{"Link to journal: [[2023_09_04]] and [[2022_12_25]]", "Link to journal: [[2023-09-04]] and [[2022-12-25]]"},
		{"[[Some Page]]", "[[Some Page]]"},
		{"#[[!!!]]", "#[[!!!]]"},
	}
	for _, tt := range tests {
		if got := RewriteInline(tt.in, slugs.Slugger{}); got != tt.want {
			t.Errorf("RewriteInline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveRefs(t *testing.T) {
	b := anchors.NewBuilder(nil)
	b.AddNote("pages/B.md", "- target\n  identifier:: abc123\n")
	ix := b.Index()

	got, resolved, unresolved := ResolveRefs("See ((abc123)) and ((zzz999)) and ((def456))", ix)
	if got != "See [[pages/B#^abc123]] and ((zzz999)) and ((def456))" {
		t.Fatalf("ResolveRefs = %q", got)
	}
	if resolved != 1 || unresolved != 2 {
		t.Fatalf("resolved=%d unresolved=%d, want 1 and 2", resolved, unresolved)
	}

	if got, _, _ := ResolveRefs("((abc12))", ix); got != "((abc12))" {
		t.Fatalf("short id rewritten: %q", got)
	}
	if got, _, _ := ResolveRefs("((abc123))", nil); got != "((abc123))" {
		t.Fatalf("nil index rewrote reference: %q", got)
	}
}

func TestStripProperties(t *testing.T) {
	lines := []string{
		"- [ ] Task",
		"  id:: abc123",
		"  custom:: kept",
		"  Scheduled:: 2023-09-10",
		"```yaml",
		"id:: stays",
		"tags:: stays",
		"```",
		"tags:: a, b",
		"identifier:: gone",
	}
	got := stripProperties(lines)
	want := []string{
		"- [ ] Task",
		"  custom:: kept",
		"```yaml",
		"id:: stays",
		"tags:: stays",
		"```",
	}
	if len(got) != len(want) {
		t.Fatalf("stripProperties = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stripProperties = %q, want %q", got, want)
		}
	}
}

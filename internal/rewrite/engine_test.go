package rewrite

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/lsq2obs/internal/anchors"
	"github.com/aidanlsb/lsq2obs/internal/parser"
	"github.com/aidanlsb/lsq2obs/internal/testutil"
)

func rewriteOrFail(t *testing.T, e *Engine, relPath, text string) Result {
	t.Helper()
	res, err := e.Rewrite(relPath, text)
	if err != nil {
		t.Fatalf("Rewrite(%s): %v", relPath, err)
	}
	return res
}

// splitMeta decodes the metadata block of out and returns it with the body.
func splitMeta(t *testing.T, out string) (map[string]any, string) {
	t.Helper()
	doc := parser.DecodeDocument(out)
	if doc.Status != parser.MetaParsed {
		t.Fatalf("expected a metadata block, got status %s in:\n%s", doc.Status, out)
	}
	return doc.Meta, doc.Body
}

func TestRewriteTasks(t *testing.T) {
	e := New(nil, Options{StatusTags: true})
	res := rewriteOrFail(t, e, "pages/Test Tasks.md", testutil.SampleTasks())

	want := `# Test Tasks

- [ ] Complete project proposal #status/todo
- [ ] Review documentation #status/doing
- [ ] Working on migration script #status/now
- [ ] Write unit tests #status/later
- [ ] Client feedback #status/waiting
- [x] Setup development environment #status/done
- [x] Old feature #status/done
- [x] Another old feature #status/done
`
	if res.Content != want {
		t.Fatalf("got:\n%s\nwant:\n%s", res.Content, want)
	}
	if !res.Changed {
		t.Fatal("expected Changed")
	}
}

func TestRewriteProperties(t *testing.T) {
	e := New(nil, Options{Frontmatter: true, StripProperties: true})
	res := rewriteOrFail(t, e, "pages/Test Properties.md", testutil.SampleProperties())

	meta, body := splitMeta(t, res.Content)
	wantBody := "# Test Properties\n\n- [ ] Complete task ^abc123 ⏳ 2023-09-10 📅 2023-09-15\n"
	if body != wantBody {
		t.Fatalf("body:\n%q\nwant:\n%q", body, wantBody)
	}
	if meta[MetaDate] != "2023-09-04" {
		t.Fatalf("date = %v, want 2023-09-04", meta[MetaDate])
	}
	if _, ok := meta[MetaTags]; ok {
		t.Fatalf("tags:: below the page header must not become page tags: %v", meta[MetaTags])
	}
}

func TestRewriteKeepsPropertiesWithoutStrip(t *testing.T) {
	e := New(nil, Options{})
	res := rewriteOrFail(t, e, "pages/Test Properties.md", testutil.SampleProperties())

	for _, want := range []string{"  id:: abc123", "  scheduled:: 2023-09-10", "tags:: project, work"} {
		if !strings.Contains(res.Content, want) {
			t.Errorf("expected %q to survive, got:\n%s", want, res.Content)
		}
	}
	if strings.HasPrefix(res.Content, "---") {
		t.Fatalf("no metadata block expected, got:\n%s", res.Content)
	}
}

func TestRewritePageTagsMerge(t *testing.T) {
	text := "---\ntags:\n  - existing\n---\ntags:: Project Alpha, [[Work]]\n\n- TODO x\n"
	e := New(nil, Options{Frontmatter: true})
	res := rewriteOrFail(t, e, "pages/P.md", text)

	meta, body := splitMeta(t, res.Content)
	tags, ok := meta[MetaTags].([]any)
	if !ok {
		t.Fatalf("tags = %#v", meta[MetaTags])
	}
	want := []string{"existing", "project-alpha", "work"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
	if !strings.Contains(body, "tags:: Project Alpha, [[Work]]") {
		t.Fatalf("property line should stay without stripping, got:\n%s", body)
	}
}

func TestRewriteJournalDate(t *testing.T) {
	e := New(nil, Options{Frontmatter: true})
	res := rewriteOrFail(t, e, "journals/2023_09_04.md", "- note\n  created:: 2020-01-01\n")

	meta, _ := splitMeta(t, res.Content)
	if meta[MetaDate] != "2023-09-04" {
		t.Fatalf("date = %v, want the journal date", meta[MetaDate])
	}
}

func TestRewriteTagsAndDateLinks(t *testing.T) {
	text := "- This has #[[Tag With Spaces]] and #[[Another Tag]].\n- Link to journal: [[2023_09_04]]\n"
	e := New(nil, Options{})
	res := rewriteOrFail(t, e, "pages/T.md", text)

	want := "- This has #tag-with-spaces and #another-tag.\n- Link to journal: [[2023-09-04]]\n"
	if res.Content != want {
		t.Fatalf("got %q, want %q", res.Content, want)
	}
}

func TestRewriteBlockRefs(t *testing.T) {
	b := anchors.NewBuilder(nil)
	b.AddNote("pages/B.md", "- target block\n  id:: abc123\n")
	e := New(b.Index(), Options{})

	res := rewriteOrFail(t, e, "pages/A.md", "- See ((abc123))\n- Missing ((zzz999))\n")
	want := "- See [[pages/B#^abc123]]\n- Missing ((zzz999))\n"
	if res.Content != want {
		t.Fatalf("got %q, want %q", res.Content, want)
	}
	if res.ResolvedRefs != 1 || res.UnresolvedRefs != 1 {
		t.Fatalf("resolved=%d unresolved=%d", res.ResolvedRefs, res.UnresolvedRefs)
	}

	res = rewriteOrFail(t, e, "pages/B.md", "- target block\n  id:: abc123\n")
	if res.Content != "- target block ^abc123\n  id:: abc123\n" {
		t.Fatalf("anchor not appended: %q", res.Content)
	}
}

func TestRewriteLeavesFencesAlone(t *testing.T) {
	text := "- block\n  id:: aaa111\n```yaml\nid:: fenced\n- TODO inside fence\n#[[Not A Tag]]\n```\n- TODO after\n"
	e := New(nil, Options{StatusTags: true, StripProperties: true})
	res := rewriteOrFail(t, e, "pages/F.md", text)

	want := "- block ^aaa111\n```yaml\nid:: fenced\n- TODO inside fence\n#[[Not A Tag]]\n```\n- [ ] after #status/todo\n"
	if res.Content != want {
		t.Fatalf("got %q, want %q", res.Content, want)
	}
}

func TestRewriteLeavesScheduledMarkerUnannotated(t *testing.T) {
	text := "- TODO Task\n  SCHEDULED: <2023-09-10 Sun>\n"
	e := New(nil, Options{})
	res := rewriteOrFail(t, e, "pages/S.md", text)

	if res.Content != "- [ ] Task\n  SCHEDULED: <2023-09-10 Sun>\n" {
		t.Fatalf("got %q", res.Content)
	}
}

func TestRewriteMalformedMetadata(t *testing.T) {
	text := "---\ntitle: Test: With Colon\n---\n- TODO task\n"
	e := New(nil, Options{Frontmatter: true})
	res := rewriteOrFail(t, e, "pages/M.md", text)

	if res.MetaStatus != parser.MetaFellBack {
		t.Fatalf("MetaStatus = %s, want fell-back", res.MetaStatus)
	}
	if res.Content != "---\ntitle: Test: With Colon\n---\n- [ ] task\n" {
		t.Fatalf("got %q", res.Content)
	}
}

func TestRewriteKeepsParsedMetadataBlock(t *testing.T) {
	e := New(nil, Options{})
	res := rewriteOrFail(t, e, "pages/K.md", "---\ntitle: X\n---\n- TODO a\n")

	if res.Content != "---\ntitle: X\n---\n- [ ] a\n" {
		t.Fatalf("got %q", res.Content)
	}
}

func TestRewriteUnchangedNote(t *testing.T) {
	e := New(nil, Options{Frontmatter: true, StatusTags: true, StripProperties: true})
	res := rewriteOrFail(t, e, "pages/Plain.md", "# Plain\n\nJust text.\n")
	if res.Changed {
		t.Fatalf("plain note reported as changed: %q", res.Content)
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	b := anchors.NewBuilder(nil)
	b.AddNote("pages/Test Properties.md", testutil.SampleProperties())
	opts := Options{Frontmatter: true, StatusTags: true, StripProperties: true}
	e := New(b.Index(), opts)

	inputs := map[string]string{
		"pages/Test Properties.md": testutil.SampleProperties(),
		"pages/Test Tasks.md":      testutil.SampleTasks(),
		"journals/2023_09_04.md":   "tags:: Daily\n- DONE standup ((abc123))\n- [[2023_09_03]]\n",
	}
	for relPath, text := range inputs {
		first := rewriteOrFail(t, e, relPath, text)
		second := rewriteOrFail(t, e, relPath, first.Content)
		if second.Changed {
			t.Errorf("%s changed on second pass:\nfirst:\n%s\nsecond:\n%s", relPath, first.Content, second.Content)
		}
	}
}

func TestEncodedDateIsAString(t *testing.T) {
	e := New(nil, Options{Frontmatter: true})
	res := rewriteOrFail(t, e, "journals/2023_09_04.md", "- entry\n")

	var meta map[string]string
	raw := strings.TrimPrefix(res.Content, "---\n")
	raw = raw[:strings.Index(raw, "---\n")]
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		t.Fatalf("metadata does not decode: %v", err)
	}
	if meta[MetaDate] != "2023-09-04" {
		t.Fatalf("date = %q", meta[MetaDate])
	}
}

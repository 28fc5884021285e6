package slugs

import (
	"regexp"
	"testing"
)

func TestTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Project Alpha", "project-alpha"},
		{"Tag With Spaces", "tag-with-spaces"},
		{"another_regular_tag", "another-regular-tag"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Café Crème", "cafe-creme"},
		{"status/todo", "status/todo"},
		{"A -- B", "a-b"},
		{"What?!", "what"},
		{"---", ""},
		{"", ""},
		{"Привет", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Tag(tt.in); got != tt.want {
				t.Fatalf("Tag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagIsIdempotent(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9/\-]*$`)
	inputs := []string{
		"Project Alpha",
		"Ünïcödé  Tëxt",
		"x__y  z",
		"-leading/and/trailing-",
		"MiXeD/Case_Path",
		"emoji 🚀 tag",
		"",
	}
	for _, in := range inputs {
		once := Tag(in)
		if twice := Tag(once); twice != once {
			t.Errorf("Tag not idempotent for %q: %q then %q", in, once, twice)
		}
		if !allowed.MatchString(once) {
			t.Errorf("Tag(%q) = %q contains disallowed characters", in, once)
		}
	}
}

func TestSluggerTransliterate(t *testing.T) {
	sl := Slugger{Transliterate: true}

	if got := sl.Tag("Привет мир"); got != "privet-mir" {
		t.Fatalf("Tag(Привет мир) = %q, want %q", got, "privet-mir")
	}
	if got := sl.Tag("Projects/Project Alpha"); got != "projects/project-alpha" {
		t.Fatalf("hierarchy not kept: %q", got)
	}
	if got := sl.Tag(sl.Tag("Привет мир")); got != "privet-mir" {
		t.Fatalf("transliterating Tag not idempotent: %q", got)
	}
}

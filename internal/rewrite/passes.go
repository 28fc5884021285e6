package rewrite

import (
	"regexp"
	"strings"

	"github.com/aidanlsb/lsq2obs/internal/anchors"
	"github.com/aidanlsb/lsq2obs/internal/dates"
	"github.com/aidanlsb/lsq2obs/internal/parser"
	"github.com/aidanlsb/lsq2obs/internal/paths"
	"github.com/aidanlsb/lsq2obs/internal/slugs"
)

// Obsidian Tasks icons.
const (
	IconScheduled = "⏳"
	IconDue       = "📅"
)

var (
	taskRe     = regexp.MustCompile(`(?i)^(\s*[-*]\s+)(TODO|DOING|NOW|LATER|WAITING|CANCELED|CANCELLED|DONE)\s+(.*)$`)
	checkboxRe = regexp.MustCompile(`^\s*[-*]\s+\[[ xX]\]`)
	tagLinkRe  = regexp.MustCompile(`#\[\[([^\]]+)\]\]`)
	dateLinkRe = regexp.MustCompile(`\[\[(\d{4})_(\d{2})_(\d{2})\]\]`)
	blockRefRe = regexp.MustCompile(`(?i)\(\(([a-f0-9\-]{6,})\)\)`)
)

var statusTags = map[string]string{
	"TODO":      "status/todo",
	"DOING":     "status/doing",
	"NOW":       "status/now",
	"LATER":     "status/later",
	"WAITING":   "status/waiting",
	"DONE":      "status/done",
	"CANCELED":  "status/done",
	"CANCELLED": "status/done",
}

// scheduleIcons lists, in order, the block properties projected onto a task
// line. deadline and due share an icon, so only the first present is used.
var scheduleIcons = []struct {
	key  string
	icon string
}{
	{KeyScheduled, IconScheduled},
	{KeyDeadline, IconDue},
	{KeyDue, IconDue},
}

// insertAnchors appends " ^id" to every block start carrying an id:: property.
func insertAnchors(lines []string, scan BlockScan) {
	for _, idx := range scan.Owners() {
		id := anchors.SanitizeID(scan.Props[idx][KeyID])
		if id == "" {
			continue
		}
		if !strings.Contains(lines[idx], "^"+id) {
			lines[idx] = strings.TrimRight(lines[idx], " \t") + " ^" + id
		}
	}
}

// ConvertTask rewrites a Logseq task line to a checkbox. ok is false when
// the line is not a task.
func ConvertTask(line string, withStatusTag bool) (string, bool) {
	m := taskRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	prefix, keyword, rest := m[1], strings.ToUpper(m[2]), m[3]

	box := "[ ]"
	if keyword == "DONE" || keyword == "CANCELED" || keyword == "CANCELLED" {
		box = "[x]"
	}
	if tag, ok := statusTags[keyword]; ok && withStatusTag {
		rest = strings.TrimRight(rest+" #"+tag, " \t")
	}
	return prefix + box + " " + rest, true
}

// convertTasks turns task keywords into checkboxes and projects scheduling
// properties onto checkbox lines.
func convertTasks(lines []string, scan BlockScan, withStatusTag bool) {
	var fence parser.FenceState
	for i, line := range lines {
		if fence.Verbatim(line) {
			continue
		}
		line, _ = ConvertTask(line, withStatusTag)
		if props, ok := scan.Props[i]; ok {
			line = annotateSchedule(line, props)
		}
		lines[i] = line
	}
}

func annotateSchedule(line string, props Props) string {
	if !checkboxRe.MatchString(line) {
		return line
	}
	for _, s := range scheduleIcons {
		raw, ok := props[s.key]
		if !ok {
			continue
		}
		iso, ok := dates.Normalize(raw)
		if !ok || strings.Contains(line, s.icon+" ") {
			continue
		}
		line = strings.TrimRight(line, " \t") + " " + s.icon + " " + iso
	}
	return line
}

// RewriteInline converts #[[Free Text]] tags and [[YYYY_MM_DD]] date links.
func RewriteInline(line string, sl slugs.Slugger) string {
	line = tagLinkRe.ReplaceAllStringFunc(line, func(m string) string {
		tag := sl.Tag(tagLinkRe.FindStringSubmatch(m)[1])
		if tag == "" {
			return m
		}
		return "#" + tag
	})
	return dateLinkRe.ReplaceAllString(line, "[[$1-$2-$3]]")
}

func rewriteTagsAndDates(lines []string, sl slugs.Slugger) {
	var fence parser.FenceState
	for i, line := range lines {
		if fence.Verbatim(line) {
			continue
		}
		lines[i] = RewriteInline(line, sl)
	}
}

// ResolveRefs rewrites ((id)) references found in index to block links and
// leaves the rest untouched.
func ResolveRefs(line string, index *anchors.Index) (out string, resolved, unresolved int) {
	out = blockRefRe.ReplaceAllStringFunc(line, func(m string) string {
		id := blockRefRe.FindStringSubmatch(m)[1]
		a, ok := index.Lookup(id)
		if !ok {
			unresolved++
			return m
		}
		resolved++
		return paths.BlockLink(a.Path, id)
	})
	return out, resolved, unresolved
}

func resolveBlockRefs(lines []string, index *anchors.Index) (resolved, unresolved int) {
	var fence parser.FenceState
	for i, line := range lines {
		if fence.Verbatim(line) {
			continue
		}
		var r, u int
		lines[i], r, u = ResolveRefs(line, index)
		resolved += r
		unresolved += u
	}
	return resolved, unresolved
}

// stripProperties drops recognized property lines outside code fences.
func stripProperties(lines []string) []string {
	out := make([]string, 0, len(lines))
	var fence parser.FenceState
	for _, line := range lines {
		if fence.Verbatim(line) {
			out = append(out, line)
			continue
		}
		if prop, ok := parser.ParseProperty(line); ok && strippedKeys[canonicalKey(prop.Key)] {
			continue
		}
		out = append(out, line)
	}
	return out
}

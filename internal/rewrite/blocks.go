package rewrite

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aidanlsb/lsq2obs/internal/parser"
	"github.com/aidanlsb/lsq2obs/internal/slugs"
	"github.com/aidanlsb/lsq2obs/internal/wikilink"
)

// Property keys the engine understands. "identifier" is folded into KeyID.
const (
	KeyID        = "id"
	KeyTags      = "tags"
	KeyScheduled = "scheduled"
	KeyDeadline  = "deadline"
	KeyDue       = "due"
	KeyCreated   = "created"
	KeyUpdated   = "updated"
)

// pageTagWindow is how many leading lines may still declare page tags after a
// block has started.
const pageTagWindow = 5

// blockKeys are recorded against the owning block.
var blockKeys = map[string]bool{
	KeyID:        true,
	KeyScheduled: true,
	KeyDeadline:  true,
	KeyDue:       true,
	KeyCreated:   true,
	KeyUpdated:   true,
}

// strippedKeys are removed by property stripping.
var strippedKeys = map[string]bool{
	KeyID:        true,
	KeyTags:      true,
	KeyScheduled: true,
	KeyDeadline:  true,
	KeyDue:       true,
	KeyCreated:   true,
	KeyUpdated:   true,
}

func canonicalKey(key string) string {
	if key == "identifier" {
		return KeyID
	}
	return key
}

// Props holds the recognized properties of one block, keyed by canonical key.
// A later declaration of the same key overwrites an earlier one.
type Props map[string]string

// BlockScan is the outcome of the block-property pass.
type BlockScan struct {
	// Props maps the line index of a block's first line to its properties.
	Props map[int]Props

	// PageTags are the slugged page-level tags.
	PageTags map[string]struct{}
}

// Owners returns the indices of blocks with properties in line order.
func (s BlockScan) Owners() []int {
	out := make([]int, 0, len(s.Props))
	for i := range s.Props {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// NextOwner returns the block that owns line i given the owner of the lines
// before it. owner is -1 until the first block starts.
func NextOwner(owner, i int, line string) int {
	if parser.StartsBlock(line) {
		return i
	}
	return owner
}

// ScanBlocks walks the body once, attaching each recognized property to the
// nearest enclosing block start and collecting page-level tags. Lines inside
// fenced code are ignored.
func ScanBlocks(lines []string, sl slugs.Slugger) BlockScan {
	scan := BlockScan{Props: make(map[int]Props), PageTags: make(map[string]struct{})}

	var fence parser.FenceState
	owner := -1
	for i, line := range lines {
		if fence.Verbatim(line) {
			continue
		}
		owner = NextOwner(owner, i, line)

		prop, ok := parser.ParseProperty(line)
		if !ok {
			continue
		}
		key := canonicalKey(prop.Key)

		if key == KeyTags && (owner < 0 || i < pageTagWindow) {
			for _, tag := range ParseTagList(prop.Value, sl) {
				scan.PageTags[tag] = struct{}{}
			}
		}
		if blockKeys[key] && owner >= 0 {
			props := scan.Props[owner]
			if props == nil {
				props = make(Props)
				scan.Props[owner] = props
			}
			props[key] = prop.Value
		}
	}
	return scan
}

var tagListSep = regexp.MustCompile(`,|\s{2,}`)

// ParseTagList splits a tags:: value on commas or runs of two or more spaces,
// unwraps [[Page]], [[Page|alias]], #[[Page]] and #tag decoration and slugs
// each entry.
// Entries that slug to nothing are dropped.
func ParseTagList(v string, sl slugs.Slugger) []string {
	var out []string
	for _, part := range tagListSep.Split(v, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.TrimPrefix(part, "#")
		if target, _, ok := wikilink.ParseExact(part); ok {
			part = target
		}
		if tag := sl.Tag(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

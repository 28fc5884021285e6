// Package migrate runs a whole-vault Logseq to Obsidian migration.
//
// A run has two passes separated by a barrier: the anchor index is built over
// every note first, then notes are rewritten in parallel against the frozen
// index. Journal renames happen last so rewrites never race a rename.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aidanlsb/lsq2obs/internal/anchors"
	"github.com/aidanlsb/lsq2obs/internal/atomicfile"
	"github.com/aidanlsb/lsq2obs/internal/audit"
	"github.com/aidanlsb/lsq2obs/internal/parser"
	"github.com/aidanlsb/lsq2obs/internal/rewrite"
	"github.com/aidanlsb/lsq2obs/internal/slugs"
	"github.com/aidanlsb/lsq2obs/internal/vault"
)

// ErrSourceNotFound is returned when the source root is missing or is not a
// directory.
var ErrSourceNotFound = errors.New("source directory not found")

// Options configures a run.
type Options struct {
	// Source is the Logseq vault root.
	Source string

	// Output, when set and different from Source, receives a copy of the
	// vault and is migrated instead of Source.
	Output string

	Frontmatter       bool
	StatusTags        bool
	StripProperties   bool
	RenameJournals    bool
	TransliterateTags bool

	// DryRun computes every change without writing or renaming notes. The
	// output copy is still made.
	DryRun bool

	// Workers bounds parallel rewrites. Zero or less means GOMAXPROCS.
	Workers int

	// Exclude lists vault-relative directories to leave alone.
	Exclude []string

	// Audit, if set, receives one entry per changed note and rename, and a
	// final run entry.
	Audit *audit.Logger

	// OnIndexed, if set, is called once the anchor index is complete.
	OnIndexed func(anchors int)
}

// EngineOptions returns the per-note switches of o.
func (o Options) EngineOptions() rewrite.Options {
	return rewrite.Options{
		Frontmatter:     o.Frontmatter,
		StatusTags:      o.StatusTags,
		StripProperties: o.StripProperties,
		Slugger:         slugs.Slugger{Transliterate: o.TransliterateTags},
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Summary reports what a run did.
type Summary struct {
	// Root is the directory that was migrated.
	Root string `json:"root"`

	// Copied counts files copied into the output root.
	Copied int `json:"copied"`

	// Processed counts notes rewritten, changed or not.
	Processed int `json:"processed"`

	// Changed counts notes whose content differs after rewriting.
	Changed int `json:"changed"`

	// Skipped counts notes that could not be read.
	Skipped int `json:"skipped"`

	// Anchors and DuplicateAnchors describe the block index.
	Anchors          int `json:"anchors"`
	DuplicateAnchors int `json:"duplicate_anchors"`

	// ResolvedRefs and UnresolvedRefs count ((id)) references across notes.
	ResolvedRefs   int `json:"resolved_refs"`
	UnresolvedRefs int `json:"unresolved_refs"`

	// MalformedMeta counts notes whose metadata block failed to parse.
	MalformedMeta int `json:"malformed_meta"`

	// Renames are journal renames performed, or pending in a dry run.
	Renames []vault.Rename `json:"renames"`

	// Conflicts are journal renames skipped because the target existed.
	Conflicts []vault.Rename `json:"conflicts"`

	DryRun bool `json:"dry_run"`
}

// noteResult is owned by the worker that rewrites the note.
type noteResult struct {
	skipped    bool
	changed    bool
	malformed  bool
	resolved   int
	unresolved int
}

// Run migrates a vault. A nil logger uses slog.Default().
func Run(ctx context.Context, opts Options, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}

	src, err := sourceRoot(opts.Source)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Root: src, DryRun: opts.DryRun}
	walkOpts := vault.WalkOptions{Exclude: opts.Exclude}
	if opts.Output != "" {
		out, err := filepath.Abs(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("resolve output: %w", err)
		}
		if out != src {
			copied, err := vault.CopyTree(src, out)
			if err != nil {
				return nil, fmt.Errorf("copy %s to %s: %w", src, out, err)
			}
			logger.Debug("copied vault", slog.String("to", out), slog.Int("files", copied))
			summary.Root = out
			summary.Copied = copied
			// A source nested inside the output is left as it was.
			walkOpts.SkipPaths = []string{src}
		}
	}

	index, err := anchors.Build(summary.Root, walkOpts, logger)
	if err != nil {
		return nil, fmt.Errorf("build anchor index: %w", err)
	}
	summary.Anchors = index.Len()
	summary.DuplicateAnchors = index.Duplicates()
	if opts.OnIndexed != nil {
		opts.OnIndexed(index.Len())
	}

	notes, err := vault.ListNotes(summary.Root, walkOpts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	results, err := rewriteAll(ctx, summary.Root, notes, rewrite.New(index, opts.EngineOptions()), opts, logger)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.skipped {
			summary.Skipped++
			continue
		}
		summary.Processed++
		if r.changed {
			summary.Changed++
		}
		if r.malformed {
			summary.MalformedMeta++
		}
		summary.ResolvedRefs += r.resolved
		summary.UnresolvedRefs += r.unresolved
	}

	if opts.RenameJournals {
		renames, err := vault.RenameJournals(summary.Root, walkOpts, opts.DryRun)
		if err != nil {
			return nil, fmt.Errorf("rename journals: %w", err)
		}
		for _, r := range renames {
			if err := opts.Audit.LogRename(r.From, r.To, opts.DryRun, r.Conflict); err != nil {
				return nil, fmt.Errorf("audit: %w", err)
			}
			if r.Conflict {
				logger.Warn("journal rename target exists, skipping",
					slog.String("from", r.From),
					slog.String("to", r.To))
				summary.Conflicts = append(summary.Conflicts, r)
				continue
			}
			summary.Renames = append(summary.Renames, r)
		}
	}

	err = opts.Audit.LogRun(summary.Root, opts.DryRun, map[string]interface{}{
		"processed":       summary.Processed,
		"changed":         summary.Changed,
		"renamed":         len(summary.Renames),
		"conflicts":       len(summary.Conflicts),
		"unresolved_refs": summary.UnresolvedRefs,
	})
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}
	return summary, nil
}

func sourceRoot(source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("%w: no source given", ErrSourceNotFound)
	}
	src, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolve source: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}
	return src, nil
}

// rewriteAll rewrites every note with at most opts.workers() in flight. Each
// worker owns one note and one slot of the result slice.
func rewriteAll(ctx context.Context, root string, notes []string, engine *rewrite.Engine, opts Options, logger *slog.Logger) ([]noteResult, error) {
	results := make([]noteResult, len(notes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i, rel := range notes {
		if gCtx.Err() != nil {
			break
		}
		i, rel := i, rel
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r, err := rewriteNote(root, rel, engine, opts, logger)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func rewriteNote(root, rel string, engine *rewrite.Engine, opts Options, logger *slog.Logger) (noteResult, error) {
	path := filepath.Join(root, rel)
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("skipping unreadable note",
			slog.String("path", rel),
			slog.String("error", err.Error()))
		return noteResult{skipped: true}, nil
	}

	res, err := engine.Rewrite(filepath.ToSlash(rel), string(content))
	if err != nil {
		return noteResult{}, fmt.Errorf("rewrite %s: %w", rel, err)
	}
	if res.MetaStatus == parser.MetaFellBack {
		logger.Debug("metadata block did not parse, kept as text", slog.String("path", rel))
	}

	if res.Changed {
		if !opts.DryRun {
			if err := atomicfile.WriteString(path, res.Content); err != nil {
				return noteResult{}, fmt.Errorf("write %s: %w", rel, err)
			}
		}
		if err := opts.Audit.LogRewrite(filepath.ToSlash(rel), opts.DryRun, res.ResolvedRefs, res.UnresolvedRefs); err != nil {
			return noteResult{}, fmt.Errorf("audit: %w", err)
		}
	}

	return noteResult{
		changed:    res.Changed,
		malformed:  res.MetaStatus == parser.MetaFellBack,
		resolved:   res.ResolvedRefs,
		unresolved: res.UnresolvedRefs,
	}, nil
}

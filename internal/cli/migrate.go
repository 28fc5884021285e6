package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/lsq2obs/internal/migrate"
	"github.com/aidanlsb/lsq2obs/internal/ui"
)

func runMigrate(cmd *cobra.Command, o *rootOptions) error {
	out := cmd.OutOrStdout()
	if o.src == "" {
		return handleError(out, o.jsonOutput, ErrMissingArgument,
			errors.New("--src is required"), "Pass the Logseq vault root, e.g. lsq2obs --src ~/logseq")
	}

	opts := o.migrateOptions(cmd.Flags())
	logger := newLogger(cmd.ErrOrStderr(), o.verbose)

	spinner := ui.NewSpinner(cmd.ErrOrStderr(), "Indexing block identifiers...")
	if !o.jsonOutput {
		spinner.Start()
		opts.OnIndexed = func(int) { spinner.Stop() }
	}
	summary, err := migrate.Run(cmd.Context(), opts, logger)
	spinner.Stop()
	if err != nil {
		code, suggestion := classifyError(err)
		return handleError(out, o.jsonOutput, code, err, suggestion)
	}

	if o.jsonOutput {
		outputSuccessWithWarnings(out, summary, summaryWarnings(summary))
		return nil
	}
	printSummary(out, cmd.ErrOrStderr(), summary)
	return nil
}

func classifyError(err error) (code, suggestion string) {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, migrate.ErrSourceNotFound):
		return ErrSourceNotFound, "Check the --src path"
	case errors.Is(err, context.Canceled):
		return ErrCanceled, ""
	case errors.As(err, &pathErr):
		return ErrFileWriteError, ""
	default:
		return ErrMigrateFailed, ""
	}
}

// printSummary writes the one-line result to out, pending renames in a dry
// run, and warnings to errOut.
func printSummary(out, errOut io.Writer, s *migrate.Summary) {
	fmt.Fprintf(out, "Processed %d files; changed %d. Renamed %d journals.\n",
		s.Processed, s.Changed, len(s.Renames))
	if s.DryRun {
		for _, r := range s.Renames {
			fmt.Fprintf(out, "RENAME: %s -> %s\n", r.From, r.To)
		}
	}

	if s.DryRun {
		fmt.Fprintln(errOut, ui.Infof("Dry run, no notes were written or renamed"))
	}

	warnings := summaryWarnings(s)
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(errOut, "%s %s\n", ui.Header("Warnings"), ui.Count(len(warnings), "warning", "warnings"))
	for _, c := range s.Conflicts {
		fmt.Fprintln(errOut, ui.Warning("journal not renamed, target already exists"))
		fmt.Fprintf(errOut, "  %s\n", ui.Move(c.From, c.To))
	}
	for _, w := range warnings {
		if w.Code == WarnRenameConflict {
			continue
		}
		fmt.Fprintln(errOut, ui.Warning(w.Message))
		if w.Ref != "" {
			fmt.Fprintf(errOut, "  %s\n", ui.Hint(w.Ref))
		}
	}
}

func summaryWarnings(s *migrate.Summary) []Warning {
	var warnings []Warning
	for _, c := range s.Conflicts {
		warnings = append(warnings, Warning{
			Code:    WarnRenameConflict,
			Message: "journal not renamed, target already exists",
			Ref:     fmt.Sprintf("%s -> %s", c.From, c.To),
		})
	}
	if s.UnresolvedRefs > 0 {
		warnings = append(warnings, Warning{
			Code: WarnUnresolvedRefs,
			Message: fmt.Sprintf("%d block %s left as ((id)), identifier not declared in the vault",
				s.UnresolvedRefs, ui.Plural(s.UnresolvedRefs, "reference", "references")),
		})
	}
	if s.MalformedMeta > 0 {
		warnings = append(warnings, Warning{
			Code: WarnMalformedMeta,
			Message: fmt.Sprintf("%d %s with unparseable frontmatter kept as text",
				s.MalformedMeta, ui.Plural(s.MalformedMeta, "note", "notes")),
		})
	}
	if s.Skipped > 0 {
		warnings = append(warnings, Warning{
			Code: WarnSkippedNotes,
			Message: fmt.Sprintf("%d unreadable %s skipped",
				s.Skipped, ui.Plural(s.Skipped, "note", "notes")),
		})
	}
	return warnings
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/lsq2obs/internal/migrate"
	"github.com/aidanlsb/lsq2obs/internal/ui"
)

type previewResult struct {
	Path           string `json:"path"`
	Content        string `json:"content"`
	Changed        bool   `json:"changed"`
	MetaStatus     string `json:"meta_status"`
	ResolvedRefs   int    `json:"resolved_refs"`
	UnresolvedRefs int    `json:"unresolved_refs"`
}

func newPreviewCmd(o *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "preview NOTE",
		Short: "Show one note as it would look after migration",
		Long: `Rewrites a single note in memory and prints it. Nothing is written.

The block index is built over the whole vault, so ((id)) references resolve
exactly as they would in a full run. NOTE is a path relative to --src, with
or without the .md extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if o.src == "" {
				return handleError(out, o.jsonOutput, ErrMissingArgument,
					fmt.Errorf("--src is required"), "")
			}

			opts := o.migrateOptions(cmd.Flags())
			res, rel, err := migrate.Preview(opts, args[0], newLogger(cmd.ErrOrStderr(), o.verbose))
			if err != nil {
				code, suggestion := classifyError(err)
				if code == ErrFileWriteError {
					code = ErrFileNotFound
				}
				return handleError(out, o.jsonOutput, code, err, suggestion)
			}

			if o.jsonOutput {
				outputSuccess(out, previewResult{
					Path:           rel,
					Content:        res.Content,
					Changed:        res.Changed,
					MetaStatus:     res.MetaStatus.String(),
					ResolvedRefs:   res.ResolvedRefs,
					UnresolvedRefs: res.UnresolvedRefs,
				})
				return nil
			}

			display := ui.NewDisplayContext()
			if raw || !display.IsTTY {
				fmt.Fprint(out, res.Content)
				return nil
			}

			rendered, err := ui.RenderMarkdown(res.Content, display.MarkdownWidth())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Header(rel))
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	bindSourceFlags(cmd.Flags(), o)
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without terminal rendering")
	return cmd
}

// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/lsq2obs/internal/config"
	"github.com/aidanlsb/lsq2obs/internal/ui"
)

// rootOptions holds flag values shared by the root command and its
// subcommands.
type rootOptions struct {
	src               string
	out               string
	frontmatter       bool
	statusTags        bool
	stripProperties   bool
	renameJournals    bool
	dryRun            bool
	transliterateTags bool
	workers           int
	exclude           []string
	auditLog          string

	configPath string
	jsonOutput bool
	verbose    bool

	// cfg is loaded before any command that migrates or previews.
	cfg *config.Config
}

// NewRootCmd builds the lsq2obs command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lsq2obs --src DIR [flags]",
		Short: "Migrate a Logseq vault to Obsidian markdown",
		Long: `lsq2obs rewrites a Logseq vault into Obsidian-compatible markdown.

Task keywords become checkboxes, #[[Free Text]] tags become slugs, journal
date links are hyphenated, and ((block-id)) references become [[note#^id]]
links wherever the identifier is declared somewhere in the vault.

Without --out the vault is rewritten in place. Run with --dry-run first to
see what would change.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for commands that don't need it
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return o.loadConfig(cmd.OutOrStdout())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, o)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/lsq2obs/config.toml)")
	pf.BoolVar(&o.jsonOutput, "json", false, "Output in JSON format (for script use)")
	pf.BoolVar(&o.verbose, "verbose", false, "Log diagnostics to stderr")

	bindSourceFlags(cmd.Flags(), o)
	bindRunFlags(cmd.Flags(), o)

	cmd.AddCommand(newPreviewCmd(o), newConfigCmd(o), newVersionCmd(o))
	return cmd
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(err.Error()))
	}
	return err
}

func (o *rootOptions) loadConfig(w io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return handleError(w, o.jsonOutput, ErrConfigInvalid, err, "Fix the file or point --config elsewhere")
	}
	o.cfg = cfg
	ui.ConfigureTheme(cfg.UI.Accent)
	ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
	return nil
}

// newLogger returns the diagnostics logger. Diagnostics never go to stdout,
// which carries the summary or the JSON envelope.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

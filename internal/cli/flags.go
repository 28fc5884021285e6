package cli

import (
	"github.com/spf13/pflag"

	"github.com/aidanlsb/lsq2obs/internal/audit"
	"github.com/aidanlsb/lsq2obs/internal/migrate"
)

const (
	flagSrc               = "src"
	flagOut               = "out"
	flagFrontmatter       = "frontmatter"
	flagStatusTags        = "status-tags"
	flagStripProperties   = "strip-properties"
	flagRenameJournals    = "rename-journals"
	flagDryRun            = "dry-run"
	flagTransliterateTags = "transliterate-tags"
	flagWorkers           = "workers"
	flagExclude           = "exclude"
	flagAuditLog          = "audit-log"
)

// bindSourceFlags registers the flags that shape how a single note is
// rewritten. Both migration and preview use them.
func bindSourceFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.StringVar(&o.src, flagSrc, "", "Logseq vault root (required)")
	fs.BoolVar(&o.frontmatter, flagFrontmatter, false, "Merge page tags and note dates into YAML frontmatter")
	fs.BoolVar(&o.statusTags, flagStatusTags, false, "Append #status/<keyword> to converted tasks")
	fs.BoolVar(&o.stripProperties, flagStripProperties, false, "Remove id::, scheduled::, tags:: and similar property lines")
	fs.BoolVar(&o.transliterateTags, flagTransliterateTags, false, "Transliterate non-Latin tag text instead of dropping it")
	fs.StringSliceVar(&o.exclude, flagExclude, nil, "Vault-relative directory to skip (repeatable)")
}

// bindRunFlags registers flags that only apply to a whole-vault run.
func bindRunFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.StringVar(&o.out, flagOut, "", "Copy the vault here and migrate the copy")
	fs.BoolVar(&o.renameJournals, flagRenameJournals, false, "Rename YYYY_MM_DD.md journals to YYYY-MM-DD.md")
	fs.BoolVar(&o.dryRun, flagDryRun, false, "Report changes without writing or renaming notes")
	fs.IntVar(&o.workers, flagWorkers, 0, "Parallel note rewrites (0 = one per CPU)")
	fs.StringVar(&o.auditLog, flagAuditLog, "", "Append a JSON line per changed note and rename to this file")
}

// migrateOptions merges flags with the loaded config. A flag given on the
// command line wins; otherwise the config value applies.
func (o *rootOptions) migrateOptions(fs *pflag.FlagSet) migrate.Options {
	opts := migrate.Options{
		Source:            o.src,
		Output:            o.out,
		Frontmatter:       o.frontmatter,
		StatusTags:        o.statusTags,
		StripProperties:   o.stripProperties,
		RenameJournals:    o.renameJournals,
		DryRun:            o.dryRun,
		TransliterateTags: o.transliterateTags,
		Workers:           o.workers,
		Exclude:           o.exclude,
	}
	cfg := o.cfg
	if cfg == nil {
		opts.Audit = audit.New(o.auditLog)
		return opts
	}

	fromConfig := func(name string, dst *bool, v bool) {
		if !fs.Changed(name) {
			*dst = v
		}
	}
	fromConfig(flagFrontmatter, &opts.Frontmatter, cfg.Frontmatter)
	fromConfig(flagStatusTags, &opts.StatusTags, cfg.StatusTags)
	fromConfig(flagStripProperties, &opts.StripProperties, cfg.StripProperties)
	fromConfig(flagRenameJournals, &opts.RenameJournals, cfg.RenameJournals)
	fromConfig(flagTransliterateTags, &opts.TransliterateTags, cfg.TransliterateTags)
	if !fs.Changed(flagWorkers) {
		opts.Workers = cfg.Workers
	}
	if !fs.Changed(flagExclude) {
		opts.Exclude = cfg.Exclude
	}
	auditLog := o.auditLog
	if !fs.Changed(flagAuditLog) {
		auditLog = cfg.AuditLog
	}
	opts.Audit = audit.New(auditLog)
	return opts
}

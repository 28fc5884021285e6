// Package config handles the optional lsq2obs configuration file.
//
// Every key mirrors a command-line switch. Flags given explicitly on the
// command line win over file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aidanlsb/lsq2obs/internal/atomicfile"
)

// MaxWorkers caps the rewrite concurrency accepted from configuration.
const MaxWorkers = 256

// Config represents the lsq2obs configuration file.
type Config struct {
	// Frontmatter merges page tags and note dates into the metadata block.
	Frontmatter bool `toml:"frontmatter"`

	// StatusTags appends #status/<keyword> to converted tasks.
	StatusTags bool `toml:"status_tags"`

	// StripProperties removes recognized key:: lines after conversion.
	StripProperties bool `toml:"strip_properties"`

	// RenameJournals renames YYYY_MM_DD.md journals to YYYY-MM-DD.md.
	RenameJournals bool `toml:"rename_journals"`

	// TransliterateTags keeps non-Latin tag text by transliterating it.
	TransliterateTags bool `toml:"transliterate_tags"`

	// Workers bounds parallel note rewrites. Zero means one per CPU.
	Workers int `toml:"workers"`

	// AuditLog, when set, appends a JSON line per changed note and rename.
	AuditLog string `toml:"audit_log"`

	// Exclude lists vault-relative directories that are never migrated,
	// e.g. "logseq" or "logseq/bak".
	Exclude []string `toml:"exclude"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used by preview for code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(MaxWorkers)),
		validation.Field(&c.Exclude, validation.Each(validation.Required, validation.By(relativeDir))),
	)
}

func relativeDir(value interface{}) error {
	dir, _ := value.(string)
	if filepath.IsAbs(dir) {
		return errors.New("must be relative to the vault root")
	}
	clean := filepath.ToSlash(filepath.Clean(dir))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.New("must stay inside the vault")
	}
	return nil
}

// Default returns the configuration used when no file exists. Every switch
// is off and every note under the source root is migrated.
func Default() *Config {
	return &Config{}
}

// Load loads the configuration from path. An empty path means DefaultPath(),
// and a missing default file yields Default(). A missing explicit file is an
// error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Default(), nil
		}
	}
	return LoadFrom(path)
}

// LoadFrom loads and validates the configuration at path. Keys absent from
// the file keep their Default() values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/lsq2obs/config.toml, falling back to
// the OS-specific user config directory.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lsq2obs", "config.toml")
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "lsq2obs", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

const defaultConfig = `# lsq2obs configuration
# Command-line flags override these values.

# Merge page tags and note dates into the metadata block.
# frontmatter = false

# Append #status/<keyword> to converted tasks.
# status_tags = false

# Remove id::, scheduled::, tags:: and similar lines after conversion.
# strip_properties = false

# Rename YYYY_MM_DD.md journals to YYYY-MM-DD.md.
# rename_journals = false

# Transliterate non-Latin tags (Привет -> privet) instead of dropping them.
# transliterate_tags = false

# Parallel note rewrites (0 = one per CPU).
# workers = 0

# Append a JSON line per changed note and journal rename.
# audit_log = "/var/tmp/lsq2obs-audit.log"

# Vault-relative directories that are never migrated.
# exclude = ["logseq/bak", "logseq/.recycle"]

# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault writes a commented default config to path unless a file is
// already there. It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig)); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

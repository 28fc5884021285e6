// Package audit provides an append-only log of what a migration changed.
//
// Each line is one JSON entry. Rewrites are logged from parallel workers, so
// Log serializes writers.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Operations recorded in the log.
const (
	OpRewrite = "rewrite"
	OpRename  = "rename"
	OpRun     = "run"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`
	Path      string                 `json:"path,omitempty"`
	To        string                 `json:"to,omitempty"` // rename target
	DryRun    bool                   `json:"dry_run,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger handles writing to the audit log.
type Logger struct {
	path string
	mu   sync.Mutex

	// now is swapped in tests.
	now func() time.Time
}

// New creates an audit logger appending to path. An empty path yields nil,
// which is a valid no-op logger.
func New(path string) *Logger {
	if path == "" {
		return nil
	}
	return &Logger{path: path, now: time.Now}
}

// Log writes an entry to the audit log.
func (l *Logger) Log(entry Entry) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// LogRewrite records a note whose content changed.
func (l *Logger) LogRewrite(path string, dryRun bool, resolvedRefs, unresolvedRefs int) error {
	extra := make(map[string]interface{})
	if resolvedRefs > 0 {
		extra["resolved_refs"] = resolvedRefs
	}
	if unresolvedRefs > 0 {
		extra["unresolved_refs"] = unresolvedRefs
	}
	if len(extra) == 0 {
		extra = nil
	}
	return l.Log(Entry{Operation: OpRewrite, Path: path, DryRun: dryRun, Extra: extra})
}

// LogRename records a journal rename, applied or skipped.
func (l *Logger) LogRename(from, to string, dryRun, conflict bool) error {
	var extra map[string]interface{}
	if conflict {
		extra = map[string]interface{}{"skipped": "target exists"}
	}
	return l.Log(Entry{Operation: OpRename, Path: from, To: to, DryRun: dryRun, Extra: extra})
}

// LogRun records the end of a run with its counters.
func (l *Logger) LogRun(root string, dryRun bool, counts map[string]interface{}) error {
	return l.Log(Entry{Operation: OpRun, Path: root, DryRun: dryRun, Extra: counts})
}

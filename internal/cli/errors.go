package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Input errors
	ErrSourceNotFound  = "SOURCE_NOT_FOUND"
	ErrMissingArgument = "MISSING_ARGUMENT"
	ErrInvalidInput    = "INVALID_INPUT"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Run errors
	ErrCanceled      = "CANCELED"
	ErrMigrateFailed = "MIGRATE_FAILED"
)

// Warning codes.
const (
	WarnRenameConflict = "RENAME_CONFLICT"
	WarnUnresolvedRefs = "UNRESOLVED_REFS"
	WarnMalformedMeta  = "MALFORMED_METADATA"
	WarnSkippedNotes   = "SKIPPED_NOTES"
)

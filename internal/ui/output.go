package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
)

// Success returns a success message with checkmark symbol
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Warning returns a warning message with warning symbol
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Warningf returns a formatted warning message with warning symbol
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Infof returns a formatted info message with info symbol
func Infof(format string, args ...interface{}) string {
	return fmt.Sprintf("%s %s", SymbolInfo, fmt.Sprintf(format, args...))
}

// Header returns a styled section header
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath returns an accent-styled file path
func FilePath(path string) string {
	return Accent.Render(path)
}

// Move renders "from → to" with both paths highlighted.
func Move(from, to string) string {
	return fmt.Sprintf("%s %s %s", FilePath(from), Muted.Render(SymbolArrow), FilePath(to))
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a styled count badge (e.g., "(3 notes)")
func Count(n int, singular, plural string) string {
	return fmt.Sprintf("(%d %s)", n, Plural(n, singular, plural))
}

// Plural picks the singular or plural form for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

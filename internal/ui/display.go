package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext holds display parameters, auto-detecting terminal width.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether stdout is a terminal
}

// NewDisplayContext creates a DisplayContext, auto-detecting terminal dimensions.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	isTTY := term.IsTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	return &DisplayContext{
		TermWidth: width,
		IsTTY:     isTTY,
	}
}

// MarkdownWidth is the wrap width for rendered markdown, leaving room for
// the render margin on both sides.
func (d *DisplayContext) MarkdownWidth() int {
	return d.TermWidth - 2*MarkdownRenderMargin
}

package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA unless configured): paths, counts, headings
// - Muted (gray): Secondary info, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

// accentColor is the user-configured accent, empty when unset.
var accentColor string

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ConfigureTheme applies a configured accent color. Unrecognized values and
// "none", "off" or "default" restore the built-in palette.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		color = defaultAccent
	} else {
		accentColor = color
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = Accent.Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

func normalizeAccentColor(value string) (string, bool) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		if !hexColor.MatchString(v) {
			return "", false
		}
		v = strings.ToLower(v)
		if len(v) == 4 {
			v = fmt.Sprintf("#%c%c%c%c%c%c", v[1], v[1], v[2], v[2], v[3], v[3])
		}
		return v, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple, configurable): paths, highlights
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths, titles, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// accentColor is the active accent, empty when accents are disabled.
	accentColor = defaultAccent
)

// ConfigureTheme applies the user's accent color preference from config.
// "none", "off", and "default" disable the accent entirely.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}

	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		return
	}

	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates an accent value: an ANSI code 0-255 or a hex
// color (#RGB is expanded to #RRGGBB). Returns ok=false for disabling values
// and anything unparseable.
func normalizeAccentColor(v string) (string, bool) {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			var b strings.Builder
			for _, c := range hex {
				b.WriteRune(c)
				b.WriteRune(c)
			}
			hex = b.String()
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
		return strconv.Itoa(n), true
	}
	return "", false
}

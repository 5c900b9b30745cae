package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when the terminal width cannot be detected.
const DefaultTermWidth = 120

// DisplayContext carries terminal capabilities for rendering output.
type DisplayContext struct {
	Width int
	IsTTY bool
}

// NewDisplayContext detects terminal capabilities from stdout.
func NewDisplayContext() DisplayContext {
	dc := DisplayContext{Width: DefaultTermWidth}
	fd := os.Stdout.Fd()
	dc.IsTTY = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if dc.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			dc.Width = w
		}
	}
	return dc
}

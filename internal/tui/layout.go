package tui

import (
	xansi "github.com/charmbracelet/x/ansi"
)

// truncateLine shortens a styled line to the given display width, keeping
// ANSI sequences intact.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, "…")
}

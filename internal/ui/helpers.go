package ui

import (
	"github.com/mattn/go-runewidth"
)

// TruncatePath truncates a path from the beginning with ellipsis, keeping the
// file name end. Widths are in display cells so wide runes count as two.
func TruncatePath(path string, maxLen int) string {
	width := runewidth.StringWidth(path)
	if width <= maxLen {
		return path
	}
	return runewidth.TruncateLeft(path, width-maxLen+3, "...")
}

// TruncateString truncates a string from the end with ellipsis
func TruncateString(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	return runewidth.Truncate(s, maxLen, "...")
}

package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// DiffStats summarizes the change counts shown in the header
type DiffStats struct {
	Additions int
	Deletions int
}

// Header represents the top header bar
type Header struct {
	width     int
	fileName  string
	progress  string
	diffStats *DiffStats
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetFileName sets the current file name to display
func (h *Header) SetFileName(name string) {
	h.fileName = name
}

// SetProgress sets the resolution progress to display.
// Passing total 0 clears the progress indicator.
func (h *Header) SetProgress(resolved, total int) {
	if total == 0 {
		h.progress = ""
		return
	}
	h.progress = fmt.Sprintf("%d/%d resolved", resolved, total)
}

// SetDiffStats sets the diff stats to display, or clears them when nil
func (h *Header) SetDiffStats(stats *DiffStats) {
	h.diffStats = stats
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " rift"
	var rightText string
	if h.fileName != "" {
		rightText = h.fileName
		if h.diffStats != nil && h.diffStats.Additions+h.diffStats.Deletions > 0 {
			rightText += fmt.Sprintf(" +%d -%d", h.diffStats.Additions, h.diffStats.Deletions)
		}
		if h.progress != "" {
			rightText += " (" + h.progress + ")"
		}
		rightText += " "
	}

	// Calculate padding in display cells so wide-rune file names line up
	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	// Render with gradient background
	return h.renderGradient(fullContent, h.progress)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// progress is used to identify and mute the progress portion of the text.
func (h *Header) renderGradient(content string, progress string) string {
	if len(content) == 0 {
		return ""
	}

	// Get colors from current theme
	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	// Text color from theme
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	// Find where the progress portion starts (if present)
	progressStart := -1
	if progress != "" {
		progressMarker := "(" + progress + ")"
		if idx := strings.Index(content, progressMarker); idx >= 0 {
			progressStart = utf8.RuneCountInString(content[:idx])
		}
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		// Create color string
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		// Determine if this character is in the progress portion
		inProgress := progressStart >= 0 && i >= progressStart

		// Style for this character
		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 5) // Bold for "rift" title

		if inProgress {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

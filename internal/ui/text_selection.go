// Package ui provides terminal user interface components for Rift.
//
// # Text Selection Coordinate System
//
// The text selection system uses a coordinate system relative to a pane's viewport:
//
//	┌─────────────────────────────────────────────┐
//	│ ← 1px border                                │
//	│  ┌─────────────────────────────────────────┐│
//	│  │ (0,0)   Viewport content area           ││
//	│  │                                         ││
//	│  │    Selection coordinates are            ││
//	│  │    relative to this inner area          ││
//	│  │                                         ││
//	│  │                             (width, height)
//	│  └─────────────────────────────────────────┘│
//	│                                 1px border → │
//	└─────────────────────────────────────────────┘
//
// Mouse events from Bubble Tea arrive in terminal coordinates (0,0 = top-left of
// terminal). The pane receives events pre-adjusted to panel coordinates (0,0 =
// top-left of the pane). The pane's Update() method then subtracts 1 from both X
// and Y to account for the panel border, yielding viewport-relative coordinates:
//
//	x := msg.X - 1  // Subtract border width
//	y := msg.Y - 1  // Subtract border height
//
// Selection coordinates (StartCol, StartLine, EndCol, EndLine) are stored in
// viewport-relative coordinates. When rendering the selection highlight, these
// coordinates are used directly with the ultraviolet screen buffer which also
// operates in viewport-relative coordinates.
//
// When extracting selected text, the coordinates are used to index into the
// pane's visible content lines. ANSI escape codes are stripped before text
// extraction to ensure coordinates align with visible character positions.
package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/zhubert/rift/internal/clipboard"
	"github.com/zhubert/rift/internal/logger"
)

// ClipboardErrorMsg is sent when clipboard operations fail
type ClipboardErrorMsg struct {
	Error error
}

// SelectionFlashTickMsg is sent to animate the selection copy flash
type SelectionFlashTickMsg time.Time

// SelectionFlashTick returns a command that sends a selection flash tick
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // pixels
)

// TextSelection tracks mouse-based text selection state in a content pane.
// The pane passes its visible content to the methods that need it, so the
// same machinery serves both the diff pane and the conflict pane.
type TextSelection struct {
	StartCol, StartLine int  // Start position (column, line in viewport)
	EndCol, EndLine     int  // End position (column, line in viewport)
	Active              bool // True during drag operation

	// Click tracking for double/triple click detection
	LastClickTime time.Time
	LastClickX    int
	LastClickY    int
	ClickCount    int

	// Selection flash animation (brief highlight after copy, then clear)
	FlashFrame int // -1 = inactive, 0 = flash visible, 1+ = done
}

// NewTextSelection creates a new TextSelection in inactive state.
func NewTextSelection() *TextSelection {
	return &TextSelection{
		FlashFrame: -1,
	}
}

// Start begins a text selection at the given coordinates
func (s *TextSelection) Start(col, line int) {
	s.StartCol = col
	s.StartLine = line
	s.EndCol = col
	s.EndLine = line
	s.Active = true
}

// Extend updates the end position of the selection during drag
func (s *TextSelection) Extend(col, line int) {
	if !s.Active {
		return
	}
	s.EndCol = col
	s.EndLine = line
}

// Stop ends the drag but keeps the selection visible
func (s *TextSelection) Stop() {
	s.Active = false
}

// Clear resets the selection to empty state.
func (s *TextSelection) Clear() {
	s.StartCol = 0
	s.StartLine = 0
	s.EndCol = 0
	s.EndLine = 0
	s.Active = false
}

// HasSelection returns true if there's a non-empty text selection.
func (s *TextSelection) HasSelection() bool {
	if s.StartLine != s.EndLine {
		return true
	}
	return s.StartCol != s.EndCol
}

// HandleClick handles mouse click events and detects double/triple clicks.
// content is the pane's visible rendered content, used for word and
// paragraph selection on multi-clicks.
func (s *TextSelection) HandleClick(content string, x, y int) tea.Cmd {
	now := time.Now()

	// Check if this is a potential multi-click
	if now.Sub(s.LastClickTime) <= doubleClickThreshold &&
		abs(x-s.LastClickX) <= clickTolerance &&
		abs(y-s.LastClickY) <= clickTolerance {
		s.ClickCount++
	} else {
		s.ClickCount = 1
	}

	s.LastClickTime = now
	s.LastClickX = x
	s.LastClickY = y

	switch s.ClickCount {
	case 1:
		// Single click - start selection
		s.Start(x, y)
	case 2:
		// Double click - select word and copy immediately
		s.SelectWord(content, x, y)
		return s.Copy(content)
	case 3:
		// Triple click - select line/paragraph and copy immediately
		s.SelectParagraph(content, x, y)
		s.ClickCount = 0 // Reset after triple click
		return s.Copy(content)
	}

	return nil
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SelectWord selects the word at the given position
func (s *TextSelection) SelectWord(content string, col, line int) {
	lines := strings.Split(content, "\n")

	if line < 0 || line >= len(lines) {
		return
	}

	currentLine := ansi.Strip(lines[line])
	if col < 0 || col >= len(currentLine) {
		return
	}

	// Find word boundaries using uniseg
	startCol := col
	endCol := col

	// Search backward for word start
	gr := uniseg.NewGraphemes(currentLine[:col])
	pos := 0
	lastBoundary := 0
	for gr.Next() {
		if gr.IsWordBoundary() {
			lastBoundary = pos
		}
		pos += len(gr.Str())
	}
	startCol = lastBoundary

	// Search forward for word end
	gr = uniseg.NewGraphemes(currentLine[col:])
	pos = col
	for gr.Next() {
		if gr.IsWordBoundary() {
			endCol = pos
			break
		}
		pos += len(gr.Str())
	}
	if endCol <= col {
		endCol = len(currentLine)
	}

	s.StartCol = startCol
	s.StartLine = line
	s.EndCol = endCol
	s.EndLine = line
	s.Active = false
}

// SelectParagraph selects the paragraph/line at the given position
func (s *TextSelection) SelectParagraph(content string, col, line int) {
	lines := strings.Split(content, "\n")

	if line < 0 || line >= len(lines) {
		return
	}

	// Find paragraph boundaries (search for empty lines)
	startLine := line
	endLine := line

	// Search backward for paragraph start
	for startLine > 0 {
		prevLine := ansi.Strip(lines[startLine-1])
		if strings.TrimSpace(prevLine) == "" {
			break
		}
		startLine--
	}

	// Search forward for paragraph end
	for endLine < len(lines)-1 {
		nextLine := ansi.Strip(lines[endLine+1])
		if strings.TrimSpace(nextLine) == "" {
			break
		}
		endLine++
	}

	// Get the width of the last line in the paragraph
	lastLineWidth := len(ansi.Strip(lines[endLine]))

	s.StartCol = 0
	s.StartLine = startLine
	s.EndCol = lastLineWidth
	s.EndLine = endLine
	s.Active = false
}

// area returns the normalized selection area (start < end).
//
// Selection can happen in any direction - the user might drag from bottom-right
// to top-left. This function normalizes the coordinates so that (startCol, startLine)
// is always before (endCol, endLine) in reading order.
//
// The normalization handles two cases:
//  1. Multi-line backward selection: startLine > endLine - swap both lines and columns
//  2. Same-line backward selection: startLine == endLine && startCol > endCol - swap columns
//
// This ensures text extraction and rendering always process from start to end.
func (s *TextSelection) area() (startCol, startLine, endCol, endLine int) {
	startCol = s.StartCol
	startLine = s.StartLine
	endCol = s.EndCol
	endLine = s.EndLine

	// Normalize so start is before end in reading order (top-to-bottom, left-to-right)
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}

	return
}

// SelectedText returns the currently selected text.
//
// The text extraction process:
//  1. Take the pane's visible rendered content (which contains ANSI escape codes)
//  2. Split into lines
//  3. For each line in the selection range, strip ANSI codes before extracting substring
//  4. Join lines with newlines
//
// ANSI codes are stripped because selection coordinates correspond to visible character
// positions, not raw string positions. For example, a bold "Hello" might be stored as
// "\x1b[1mHello\x1b[0m" (15 bytes) but displays as 5 characters. When the user selects
// characters 0-5, they expect "Hello", not a partial escape sequence.
func (s *TextSelection) SelectedText(content string) string {
	if !s.HasSelection() {
		return ""
	}

	lines := strings.Split(content, "\n")

	startCol, startLine, endCol, endLine := s.area()

	// Dragging onto the panel border yields a negative line after the border
	// subtraction, which normalization can move into startLine.
	if startLine < 0 {
		startLine = 0
	}

	var result strings.Builder

	for y := startLine; y <= endLine && y < len(lines); y++ {
		line := ansi.Strip(lines[y])

		var lineStart, lineEnd int
		if y == startLine {
			lineStart = startCol
		} else {
			lineStart = 0
		}
		if y == endLine {
			lineEnd = endCol
		} else {
			lineEnd = len(line)
		}

		// Ensure bounds are valid
		if lineStart < 0 {
			lineStart = 0
		}
		if lineEnd > len(line) {
			lineEnd = len(line)
		}
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		if lineStart < len(line) {
			result.WriteString(line[lineStart:lineEnd])
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// Copy copies the selected text to the clipboard and starts the flash animation
func (s *TextSelection) Copy(content string) tea.Cmd {
	if !s.HasSelection() {
		return nil
	}

	selectedText := s.SelectedText(content)
	if selectedText == "" {
		return nil
	}

	// Start the selection flash animation
	s.FlashFrame = 0

	return tea.Batch(
		// OSC 52 escape sequence (works in modern terminals)
		tea.SetClipboard(selectedText),
		// Native clipboard fallback - returns error message if it fails
		func() tea.Msg {
			if err := clipboard.WriteText(selectedText); err != nil {
				logger.WithComponent("ui").Warn("clipboard write failed", "error", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
		// Start flash animation timer
		SelectionFlashTick(),
	)
}

// IsFlashing returns whether the copy flash animation is active
func (s *TextSelection) IsFlashing() bool {
	return s.FlashFrame >= 0
}

// FinishFlash ends the copy flash animation and clears the selection
func (s *TextSelection) FinishFlash() {
	s.FlashFrame = -1
	s.Clear()
}

// Highlight applies selection highlighting to the rendered view using ultraviolet
func (s *TextSelection) Highlight(view string, width, height int) string {
	if !s.HasSelection() {
		return view
	}

	if width <= 0 || height <= 0 {
		return view
	}

	// Create screen buffer from the rendered view
	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	// Get normalized selection coordinates
	startCol, startLine, endCol, endLine := s.area()

	// Get selection style colors - use flash style during copy animation
	var selBg, selFg color.Color
	if s.FlashFrame == 0 {
		// Flash frame - use bright green to indicate successful copy
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		// Normal selection
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	// Apply selection highlighting
	for y := startLine; y <= endLine && y < height; y++ {
		var xStart, xEnd int
		if y == startLine && y == endLine {
			// Single line selection
			xStart = startCol
			xEnd = endCol
		} else if y == startLine {
			// First line of multi-line selection
			xStart = startCol
			xEnd = width
		} else if y == endLine {
			// Last line of multi-line selection
			xStart = 0
			xEnd = endCol
		} else {
			// Middle lines
			xStart = 0
			xEnd = width
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}

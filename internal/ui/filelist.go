package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/rift/internal/keys"
)

// FileItem represents a selectable file in the file list
type FileItem struct {
	Path     string // Absolute path, used as the item identity
	Display  string // Path shown in the list, usually repo-relative
	Role     string // Pair label in diff mode ("original"/"revised"), empty otherwise
	Resolved int
	Total    int
	Applied  bool
	Staged   bool
}

// statusText returns the short status shown next to the file name
func (f FileItem) statusText() string {
	if f.Role != "" {
		return f.Role
	}
	switch {
	case f.Staged:
		return "staged"
	case f.Applied:
		return "applied"
	default:
		return fmt.Sprintf("%d/%d", f.Resolved, f.Total)
	}
}

// done reports whether the file needs no further attention
func (f FileItem) done() bool {
	return f.Applied || f.Staged || (f.Total > 0 && f.Resolved == f.Total)
}

// FileList represents the left panel listing the session's files
type FileList struct {
	items        []FileItem
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
}

// NewFileList creates a new file list
func NewFileList() *FileList {
	return &FileList{}
}

// SetSize sets the file list dimensions
func (l *FileList) SetSize(width, height int) {
	l.width = width
	l.height = height

	ctx := GetViewContext()
	ctx.Log("FileList.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the file list width
func (l *FileList) Width() int {
	return l.width
}

// SetFocused sets the focus state
func (l *FileList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns the focus state
func (l *FileList) IsFocused() bool {
	return l.focused
}

// SetItems replaces the file list contents, keeping the selection on the
// same path when it still exists.
func (l *FileList) SetItems(items []FileItem) {
	var selectedPath string
	if item := l.Selected(); item != nil {
		selectedPath = item.Path
	}

	l.items = items
	l.selectedIdx = 0
	for i, item := range items {
		if item.Path == selectedPath {
			l.selectedIdx = i
			break
		}
	}
}

// Items returns the current file items
func (l *FileList) Items() []FileItem {
	return l.items
}

// Len returns the number of files in the list
func (l *FileList) Len() int {
	return len(l.items)
}

// Selected returns the currently selected item, or nil when the list is empty
func (l *FileList) Selected() *FileItem {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.items) {
		return nil
	}
	return &l.items[l.selectedIdx]
}

// SelectedIndex returns the index of the selected item
func (l *FileList) SelectedIndex() int {
	return l.selectedIdx
}

// Select moves the selection to the given index, clamping to valid range
func (l *FileList) Select(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(l.items)-1 {
		idx = len(l.items) - 1
	}
	if idx >= 0 {
		l.selectedIdx = idx
	}
}

// SelectPath moves the selection to the item with the given path.
// Returns false when no item matches.
func (l *FileList) SelectPath(path string) bool {
	for i, item := range l.items {
		if item.Path == path {
			l.selectedIdx = i
			return true
		}
	}
	return false
}

// SelectNext advances the selection, wrapping at the end
func (l *FileList) SelectNext() {
	if len(l.items) == 0 {
		return
	}
	l.selectedIdx = (l.selectedIdx + 1) % len(l.items)
}

// SelectPrev moves the selection back, wrapping at the start
func (l *FileList) SelectPrev() {
	if len(l.items) == 0 {
		return
	}
	l.selectedIdx = (l.selectedIdx + len(l.items) - 1) % len(l.items)
}

// Update handles navigation keys when the list is focused
func (l *FileList) Update(msg tea.Msg) (*FileList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !l.focused {
			return l, nil
		}

		switch msg.String() {
		case keys.Up, "k":
			if l.selectedIdx > 0 {
				l.selectedIdx--
			}
		case keys.Down, "j":
			if l.selectedIdx < len(l.items)-1 {
				l.selectedIdx++
			}
		case keys.Home, "g":
			l.selectedIdx = 0
		case keys.End, "G":
			if len(l.items) > 0 {
				l.selectedIdx = len(l.items) - 1
			}
		}
	}

	return l, nil
}

// View renders the file list
func (l *FileList) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if l.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(l.height)
	innerWidth := ctx.InnerWidth(l.width)

	var content string

	if len(l.items) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No files.")
	} else {
		// Use actual rendered lines so wrapping stays consistent
		var allLines []string
		selectedStartLine := 0

		for i, item := range l.items {
			status := item.statusText()
			statusStyle := FileListStatusStyle
			if item.done() {
				statusStyle = FileListResolvedStyle
			}

			// Leave room for the status, the prefix, and item padding
			maxName := innerWidth - len(status) - 6
			if maxName < 8 {
				maxName = 8
			}
			name := TruncatePath(item.Display, maxName)

			display := name + "  " + statusStyle.Render(status)
			itemStyle := FileListItemStyle.Width(innerWidth)
			prefix := "  "
			if i == l.selectedIdx {
				itemStyle = FileListSelectedStyle.Width(innerWidth)
				prefix = "> "
				selectedStartLine = len(allLines)
			}

			rendered := itemStyle.Render(prefix + display)
			allLines = append(allLines, strings.Split(rendered, "\n")...)
		}

		// Adjust scroll to keep the selected file visible
		visibleHeight := innerHeight
		if selectedStartLine < l.scrollOffset {
			l.scrollOffset = selectedStartLine
		} else if selectedStartLine >= l.scrollOffset+visibleHeight {
			l.scrollOffset = selectedStartLine - visibleHeight + 1
		}

		if l.scrollOffset < 0 {
			l.scrollOffset = 0
		}
		maxScroll := len(allLines) - visibleHeight
		if maxScroll < 0 {
			maxScroll = 0
		}
		if l.scrollOffset > maxScroll {
			l.scrollOffset = maxScroll
		}

		if l.scrollOffset > 0 && l.scrollOffset < len(allLines) {
			allLines = allLines[l.scrollOffset:]
		}
		if len(allLines) > visibleHeight && visibleHeight > 0 {
			allLines = allLines[:visibleHeight]
		}
		content = strings.Join(allLines, "\n")
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(l.width).Height(l.height).Render(content)
}

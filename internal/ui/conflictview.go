package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/rift/internal/config"
	"github.com/zhubert/rift/internal/conflict"
	"github.com/zhubert/rift/internal/keys"
)

// ConflictView renders a conflicted buffer as a scrollable panel. Conflict
// marker blocks are drawn as colored current/base/incoming sections, resolved
// conflicts show their replacement lines, and the surrounding context keeps
// the file's own text, syntax highlighted when the language is known. n/p
// moves the selection between conflicts.
type ConflictView struct {
	viewport viewport.Model

	width   int
	height  int
	focused bool

	store    *conflict.Store
	content  string
	language string

	lines       []string
	highlighted []string

	contextLines int
	tabWidth     int

	selectedIdx int
	// conflictRows maps each conflict to the rendered row of its header.
	conflictRows []int

	selection *TextSelection
}

// NewConflictView creates an empty conflict view.
func NewConflictView() *ConflictView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SoftWrap = false
	return &ConflictView{
		viewport:     vp,
		contextLines: config.DefaultContextLines,
		tabWidth:     config.DefaultTabWidth,
		selection:    NewTextSelection(),
	}
}

// SetSize updates the view dimensions and re-renders the content to fit.
func (v *ConflictView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetWidth(width - BorderSize)
	v.viewport.SetHeight(height - BorderSize)
	ctx := GetViewContext()
	ctx.Log("ConflictView size updated", "width", width, "height", height)
	v.refresh()
}

// SetFocused sets whether the view responds to key input.
func (v *ConflictView) SetFocused(focused bool) {
	v.focused = focused
}

// IsFocused returns whether the view has focus.
func (v *ConflictView) IsFocused() bool {
	return v.focused
}

// SetContextLines sets how many context lines stay visible around each
// conflict before the rest of the run folds away.
func (v *ConflictView) SetContextLines(n int) {
	if n < 0 {
		n = 0
	}
	v.contextLines = n
	v.refresh()
}

// SetTabWidth sets the tab stop width used when expanding tabs.
func (v *ConflictView) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	v.tabWidth = n
	v.rebuildLines()
	v.refresh()
}

// SetSource installs a parsed conflict store together with the buffer it was
// parsed from. The language is a chroma lexer name; pass "" to skip syntax
// highlighting. Selection and scroll state reset to the top.
func (v *ConflictView) SetSource(store *conflict.Store, content, language string) {
	v.store = store
	v.content = content
	v.language = language
	v.selectedIdx = 0
	v.rebuildLines()
	v.refresh()
	v.viewport.GotoTop()
}

// Clear removes the loaded buffer and conflicts.
func (v *ConflictView) Clear() {
	v.store = nil
	v.content = ""
	v.language = ""
	v.lines = nil
	v.highlighted = nil
	v.conflictRows = nil
	v.selectedIdx = 0
	v.viewport.SetContent("")
	v.viewport.GotoTop()
}

// Len returns the number of conflicts in the loaded store.
func (v *ConflictView) Len() int {
	if v.store == nil {
		return 0
	}
	return v.store.Len()
}

// Selected returns the selected conflict, or nil when none is loaded. The
// pointer aliases the store; resolve through the store, not by mutation.
func (v *ConflictView) Selected() *conflict.Conflict {
	if v.store == nil {
		return nil
	}
	list := v.store.Conflicts()
	if v.selectedIdx < 0 || v.selectedIdx >= len(list) {
		return nil
	}
	return &list[v.selectedIdx]
}

// SelectedID returns the selected conflict's id, or "" when none is loaded.
func (v *ConflictView) SelectedID() string {
	if c := v.Selected(); c != nil {
		return c.ID
	}
	return ""
}

// Select moves the selection to the given index, clamping to range.
func (v *ConflictView) Select(idx int) {
	n := v.Len()
	if n == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	v.selectedIdx = idx
	v.refresh()
	v.scrollToConflict(idx)
}

// SelectNext moves the selection to the next conflict, wrapping past the
// last.
func (v *ConflictView) SelectNext() {
	if n := v.Len(); n > 0 {
		v.Select((v.selectedIdx + 1) % n)
	}
}

// SelectPrev moves the selection to the previous conflict, wrapping past the
// first.
func (v *ConflictView) SelectPrev() {
	if n := v.Len(); n > 0 {
		v.Select((v.selectedIdx - 1 + n) % n)
	}
}

// SelectNextUnresolved moves the selection to the next unresolved conflict,
// scanning forward with wraparound, and reports whether one was found.
func (v *ConflictView) SelectNextUnresolved() bool {
	n := v.Len()
	if n == 0 {
		return false
	}
	list := v.store.Conflicts()
	for off := 1; off <= n; off++ {
		idx := (v.selectedIdx + off) % n
		if !list[idx].Resolved {
			v.Select(idx)
			return true
		}
	}
	return false
}

// Refresh re-renders the view after resolution state changes in the store.
// Scroll position is kept.
func (v *ConflictView) Refresh() {
	v.refresh()
}

func (v *ConflictView) scrollToConflict(idx int) {
	if idx < 0 || idx >= len(v.conflictRows) {
		return
	}
	row := v.conflictRows[idx] - regionJumpContext
	if row < 0 {
		row = 0
	}
	v.viewport.SetYOffset(row)
}

// CopySelection copies the current text selection to the clipboard. Returns
// nil when nothing is selected.
func (v *ConflictView) CopySelection() tea.Cmd {
	if !v.selection.HasSelection() {
		return nil
	}
	return v.selection.Copy(v.viewport.View())
}

// Selection returns the view's text selection state.
func (v *ConflictView) Selection() *TextSelection {
	return v.selection
}

// Update handles scrolling and selection input. Keys are only handled while
// focused; mouse events always reach the viewport and the text selection.
// Mouse coordinates arrive relative to the panel, so the border is subtracted
// here.
func (v *ConflictView) Update(msg tea.Msg) (*ConflictView, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !v.focused {
			return v, nil
		}
		switch msg.String() {
		case "g", keys.Home:
			v.viewport.GotoTop()
		case "G", "shift+g", keys.End:
			v.viewport.GotoBottom()
		case "n":
			v.SelectNext()
		case "p":
			v.SelectPrev()
		case "j", "k", keys.Up, keys.Down, keys.PgUp, keys.PgDown,
			keys.CtrlU, keys.CtrlD, "ctrl+up", "ctrl+down":
			v.viewport, cmd = v.viewport.Update(msg)
		}
	case tea.MouseWheelMsg:
		v.viewport, cmd = v.viewport.Update(msg)
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			cmd = v.selection.HandleClick(v.viewport.View(), msg.X-1, msg.Y-1)
		}
	case tea.MouseMotionMsg:
		v.selection.Extend(msg.X-1, msg.Y-1)
	case tea.MouseReleaseMsg:
		if v.selection.Active {
			v.selection.Stop()
			cmd = v.selection.Copy(v.viewport.View())
		}
	case SelectionFlashTickMsg:
		if v.selection.IsFlashing() {
			v.selection.FinishFlash()
		}
	}
	return v, cmd
}

// View renders the conflict panel.
func (v *ConflictView) View() string {
	style := PanelStyle
	if v.focused {
		style = PanelFocusedStyle
	}

	if v.store == nil {
		empty := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No file loaded.")
		return style.Width(v.width).Height(v.height).Render(empty)
	}
	if v.store.Len() == 0 {
		none := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No conflict markers found.")
		return style.Width(v.width).Height(v.height).Render(none)
	}

	inner := v.selection.Highlight(v.viewport.View(), v.viewport.Width(), v.viewport.Height())
	content := lipgloss.NewStyle().
		MaxHeight(v.height - BorderSize).
		Render(inner)
	return style.Width(v.width).Height(v.height).Render(content)
}

// rebuildLines expands tabs in the buffer and recomputes the highlighted
// counterpart used for context rows.
func (v *ConflictView) rebuildLines() {
	if v.content == "" && v.store == nil {
		v.lines = nil
		v.highlighted = nil
		return
	}
	expanded := expandBufferTabs(v.content, v.tabWidth)
	v.lines = strings.Split(expanded, "\n")
	v.highlighted = nil
	if v.language != "" {
		hl := strings.Split(HighlightCode(expanded, v.language), "\n")
		// Row indexes must line up with the raw buffer.
		if len(hl) == len(v.lines) {
			v.highlighted = hl
		}
	}
}

func (v *ConflictView) refresh() {
	if v.store == nil {
		v.viewport.SetContent("")
		v.conflictRows = nil
		return
	}
	innerWidth := v.viewport.Width()
	if innerWidth <= 0 {
		innerWidth = DefaultWrapWidth
	}

	conflicts := v.store.Conflicts()
	v.conflictRows = make([]int, len(conflicts))

	var rows []string
	cursor := 1
	for i := range conflicts {
		c := &conflicts[i]
		// Skip conflicts whose recorded range no longer fits the buffer,
		// the same rule BuildResolvedContent applies when splicing.
		if c.StartLine < cursor || c.EndLine > len(v.lines) {
			continue
		}
		rows = v.appendContext(rows, cursor, c.StartLine-1, i == 0, false, innerWidth)
		v.conflictRows[i] = len(rows)
		rows = v.appendConflict(rows, c, i, len(conflicts), innerWidth)
		cursor = c.EndLine + 1
	}
	rows = v.appendContext(rows, cursor, len(v.lines), len(conflicts) == 0, true, innerWidth)

	v.viewport.SetContent(strings.Join(rows, "\n"))
}

// appendContext renders buffer lines from..to (1-based, inclusive), folding
// the middle of long runs. The run before the first conflict keeps only its
// tail, the run after the last keeps only its head.
func (v *ConflictView) appendContext(rows []string, from, to int, first, last bool, width int) []string {
	n := to - from + 1
	if n <= 0 {
		return rows
	}
	head, tail := v.contextLines, v.contextLines
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if n <= head+tail {
		for ln := from; ln <= to; ln++ {
			rows = append(rows, v.contextRow(ln, width))
		}
		return rows
	}
	for ln := from; ln < from+head; ln++ {
		rows = append(rows, v.contextRow(ln, width))
	}
	rows = append(rows, DiffCollapsedStyle.Render(foldLabel(n-head-tail)))
	for ln := to - tail + 1; ln <= to; ln++ {
		rows = append(rows, v.contextRow(ln, width))
	}
	return rows
}

func (v *ConflictView) contextRow(ln, width int) string {
	if v.highlighted != nil {
		return ansi.Truncate(v.highlighted[ln-1], width, "…")
	}
	return ansi.Truncate(DiffContextStyle.Render(v.lines[ln-1]), width, "…")
}

func (v *ConflictView) appendConflict(rows []string, c *conflict.Conflict, idx, total, width int) []string {
	header := fmt.Sprintf("Conflict %d of %d · line %d", c.Ordinal, total, c.StartLine)
	style := ConflictLabelStyle
	if c.Resolved {
		header = fmt.Sprintf("✓ Conflict %d of %d · %s", c.Ordinal, total, choiceLabel(c.Resolution))
		style = ConflictResolvedStyle
	}
	prefix := "  "
	if idx == v.selectedIdx {
		prefix = "> "
		style = ConflictSelectedStyle
	}
	rows = append(rows, ansi.Truncate(style.Render(prefix+header), width, "…"))

	if c.Resolved {
		for _, line := range c.ResolvedLines {
			rows = append(rows, v.sectionRow(line, DiffContextStyle, width))
		}
		return rows
	}

	rows = append(rows, ansi.Truncate(ConflictCurrentStyle.Render("<<<<<<< "+c.CurrentLabel), width, "…"))
	for _, line := range c.CurrentLines {
		rows = append(rows, v.sectionRow(line, ConflictCurrentStyle, width))
	}
	if c.HasBase() {
		rows = append(rows, ansi.Truncate(ConflictBaseStyle.Render("|||||||"), width, "…"))
		for _, line := range c.BaseLines {
			rows = append(rows, v.sectionRow(line, ConflictBaseStyle, width))
		}
	}
	rows = append(rows, ansi.Truncate(ConflictLabelStyle.Render("======="), width, "…"))
	for _, line := range c.IncomingLines {
		rows = append(rows, v.sectionRow(line, ConflictIncomingStyle, width))
	}
	rows = append(rows, ansi.Truncate(ConflictIncomingStyle.Render(">>>>>>> "+c.IncomingLabel), width, "…"))
	return rows
}

func (v *ConflictView) sectionRow(line string, style lipgloss.Style, width int) string {
	col := 0
	text := expandTabs([]rune(line), v.tabWidth, &col)
	return ansi.Truncate(style.Render(text), width, "…")
}

// choiceLabel maps a resolution choice to its display name.
func choiceLabel(c conflict.Choice) string {
	switch c {
	case conflict.ChooseCurrent:
		return "current"
	case conflict.ChooseIncoming:
		return "incoming"
	case conflict.ChooseBoth:
		return "both"
	case conflict.ChooseBothReverse:
		return "both (reversed)"
	case conflict.ChooseCustom:
		return "custom"
	default:
		return string(c)
	}
}

// expandBufferTabs expands tabs on every line of a buffer.
func expandBufferTabs(content string, tabWidth int) string {
	if !strings.Contains(content, "\t") {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "\t") {
			continue
		}
		col := 0
		lines[i] = expandTabs([]rune(line), tabWidth, &col)
	}
	return strings.Join(lines, "\n")
}

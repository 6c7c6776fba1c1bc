package ui

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/rift/internal/config"
	"github.com/zhubert/rift/internal/diff"
	"github.com/zhubert/rift/internal/keys"
)

// regionJumpContext is how many rows stay visible above a change region when
// jumping to it with NextChange/PrevChange.
const regionJumpContext = 3

// sideBySideSeparator divides the original and revised columns.
const sideBySideSeparator = " │ "

// DiffView renders a computed edit script inside a scrollable panel. It
// supports an inline mode (one column, removed lines above added lines) and a
// side-by-side mode (original lines left, revised lines right). Long lines are
// truncated rather than wrapped so the line number gutters and the column
// separator stay vertically aligned.
type DiffView struct {
	viewport viewport.Model

	width   int
	height  int
	focused bool

	viewMode     string
	contextLines int
	tabWidth     int

	script  []diff.Entry
	regions []diff.Region

	// regionIdx is the change region n/p navigation last jumped to, or -1
	// before navigation begins.
	regionIdx int
	// regionRows maps each region to the rendered row where it starts.
	regionRows []int
	// lineRows maps each rendered row to its revised line number, 0 for rows
	// without one (fold markers, removed-only rows).
	lineRows []int

	selection *TextSelection
}

// NewDiffView creates a diff view with the default mode and settings.
func NewDiffView() *DiffView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SoftWrap = false
	return &DiffView{
		viewport:     vp,
		viewMode:     config.ViewModeSideBySide,
		contextLines: config.DefaultContextLines,
		tabWidth:     config.DefaultTabWidth,
		regionIdx:    -1,
		selection:    NewTextSelection(),
	}
}

// SetSize updates the view dimensions and re-renders the content to fit.
func (d *DiffView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.SetWidth(width - BorderSize)
	d.viewport.SetHeight(height - BorderSize)
	ctx := GetViewContext()
	ctx.Log("DiffView size updated", "width", width, "height", height)
	d.refresh()
}

// SetFocused sets whether the view responds to key input.
func (d *DiffView) SetFocused(focused bool) {
	d.focused = focused
}

// IsFocused returns whether the view has focus.
func (d *DiffView) IsFocused() bool {
	return d.focused
}

// SetViewMode switches between config.ViewModeInline and
// config.ViewModeSideBySide. Unknown modes are ignored.
func (d *DiffView) SetViewMode(mode string) {
	if mode != config.ViewModeInline && mode != config.ViewModeSideBySide {
		return
	}
	if d.viewMode == mode {
		return
	}
	d.viewMode = mode
	d.refresh()
	if d.regionIdx >= 0 {
		d.scrollToRegion(d.regionIdx)
	} else {
		d.viewport.GotoTop()
	}
}

// ViewMode returns the active rendering mode.
func (d *DiffView) ViewMode() string {
	return d.viewMode
}

// ToggleViewMode flips between inline and side-by-side rendering.
func (d *DiffView) ToggleViewMode() {
	if d.viewMode == config.ViewModeInline {
		d.SetViewMode(config.ViewModeSideBySide)
	} else {
		d.SetViewMode(config.ViewModeInline)
	}
}

// SetContextLines sets how many unchanged lines stay visible around each
// change before the rest of the run folds away.
func (d *DiffView) SetContextLines(n int) {
	if n < 0 {
		n = 0
	}
	d.contextLines = n
	d.refresh()
}

// SetTabWidth sets the tab stop width used when expanding tabs.
func (d *DiffView) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	d.tabWidth = n
	d.refresh()
}

// SetDiff installs a new edit script and resets scroll and navigation state.
func (d *DiffView) SetDiff(script []diff.Entry) {
	d.script = script
	d.regions = diff.Regions(script)
	d.regionIdx = -1
	d.refresh()
	d.viewport.GotoTop()
}

// Clear removes the loaded diff.
func (d *DiffView) Clear() {
	d.script = nil
	d.regions = nil
	d.regionRows = nil
	d.lineRows = nil
	d.regionIdx = -1
	d.viewport.SetContent("")
	d.viewport.GotoTop()
}

// HasDiff reports whether an edit script is loaded.
func (d *DiffView) HasDiff() bool {
	return len(d.script) > 0
}

// Stats summarizes the loaded edit script.
func (d *DiffView) Stats() diff.Stats {
	return diff.Summarize(d.script)
}

// ChangeCount returns the number of change regions in the diff.
func (d *DiffView) ChangeCount() int {
	return len(d.regions)
}

// CurrentChange returns the 1-based index of the region navigation points at,
// or 0 until NextChange/PrevChange has been used.
func (d *DiffView) CurrentChange() int {
	if d.regionIdx < 0 {
		return 0
	}
	return d.regionIdx + 1
}

// NextChange scrolls to the next change region, wrapping past the last.
func (d *DiffView) NextChange() {
	if len(d.regions) == 0 {
		return
	}
	if d.regionIdx < 0 {
		d.regionIdx = 0
	} else {
		d.regionIdx = (d.regionIdx + 1) % len(d.regions)
	}
	d.scrollToRegion(d.regionIdx)
}

// PrevChange scrolls to the previous change region, wrapping past the first.
func (d *DiffView) PrevChange() {
	if len(d.regions) == 0 {
		return
	}
	if d.regionIdx < 0 {
		d.regionIdx = len(d.regions) - 1
	} else {
		d.regionIdx = (d.regionIdx - 1 + len(d.regions)) % len(d.regions)
	}
	d.scrollToRegion(d.regionIdx)
}

func (d *DiffView) scrollToRegion(idx int) {
	if idx < 0 || idx >= len(d.regionRows) {
		return
	}
	row := d.regionRows[idx] - regionJumpContext
	if row < 0 {
		row = 0
	}
	d.viewport.SetYOffset(row)
}

// MaxLine returns the highest revised line number in the script, 0 when no
// diff is loaded.
func (d *DiffView) MaxLine() int {
	maxLine := 0
	for _, e := range d.script {
		if e.RevisedLine > maxLine {
			maxLine = e.RevisedLine
		}
	}
	return maxLine
}

// ScrollToLine scrolls the viewport so the given revised line sits at the
// top. Lines hidden inside a folded run land on the next visible row.
func (d *DiffView) ScrollToLine(line int) {
	for row, ln := range d.lineRows {
		if ln >= line && ln > 0 {
			d.viewport.SetYOffset(row)
			return
		}
	}
	d.viewport.GotoBottom()
}

// CopySelection copies the current text selection to the clipboard. Returns
// nil when nothing is selected.
func (d *DiffView) CopySelection() tea.Cmd {
	if !d.selection.HasSelection() {
		return nil
	}
	return d.selection.Copy(d.viewport.View())
}

// Selection returns the view's text selection state.
func (d *DiffView) Selection() *TextSelection {
	return d.selection
}

// Update handles scrolling input. Keys are only handled while focused; mouse
// events always reach the viewport and the text selection. Mouse coordinates
// arrive relative to the panel, so the border is subtracted here.
func (d *DiffView) Update(msg tea.Msg) (*DiffView, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !d.focused {
			return d, nil
		}
		switch msg.String() {
		case "g", keys.Home:
			d.viewport.GotoTop()
		case "G", "shift+g", keys.End:
			d.viewport.GotoBottom()
		case "n":
			d.NextChange()
		case "p":
			d.PrevChange()
		case "j", "k", keys.Up, keys.Down, keys.PgUp, keys.PgDown,
			keys.CtrlU, keys.CtrlD, "ctrl+up", "ctrl+down":
			d.viewport, cmd = d.viewport.Update(msg)
		}
	case tea.MouseWheelMsg:
		d.viewport, cmd = d.viewport.Update(msg)
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			cmd = d.selection.HandleClick(d.viewport.View(), msg.X-1, msg.Y-1)
		}
	case tea.MouseMotionMsg:
		d.selection.Extend(msg.X-1, msg.Y-1)
	case tea.MouseReleaseMsg:
		if d.selection.Active {
			d.selection.Stop()
			cmd = d.selection.Copy(d.viewport.View())
		}
	case SelectionFlashTickMsg:
		if d.selection.IsFlashing() {
			d.selection.FinishFlash()
		}
	}
	return d, cmd
}

// View renders the diff panel.
func (d *DiffView) View() string {
	style := PanelStyle
	if d.focused {
		style = PanelFocusedStyle
	}

	if len(d.script) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No diff loaded.")
		return style.Width(d.width).Height(d.height).Render(empty)
	}
	if !d.Stats().HasChanges() {
		same := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Files are identical.")
		return style.Width(d.width).Height(d.height).Render(same)
	}

	inner := d.selection.Highlight(d.viewport.View(), d.viewport.Width(), d.viewport.Height())
	content := lipgloss.NewStyle().
		MaxHeight(d.height - BorderSize).
		Render(inner)
	return style.Width(d.width).Height(d.height).Render(content)
}

// refresh re-renders the script into the viewport and rebuilds the region row
// index used by change navigation.
func (d *DiffView) refresh() {
	if len(d.script) == 0 {
		return
	}
	innerWidth := d.viewport.Width()
	if innerWidth <= 0 {
		innerWidth = DefaultWrapWidth
	}
	var rows []string
	if d.viewMode == config.ViewModeSideBySide {
		rows, d.regionRows, d.lineRows = d.renderSideBySide(innerWidth)
	} else {
		rows, d.regionRows, d.lineRows = d.renderInline(innerWidth)
	}
	d.viewport.SetContent(strings.Join(rows, "\n"))
}

func (d *DiffView) renderInline(width int) (rows []string, regionRows, lineRows []int) {
	lines := diff.Inline(d.script)
	gutter := lineNumberWidth(d.script)
	spans := intralineForScript(d.script)

	starts := regionStartIndexes(d.script)
	startRegion := make(map[int]int, len(starts))
	for r, idx := range starts {
		startRegion[idx] = r
	}
	regionRows = make([]int, len(starts))

	items := foldUnchanged(len(lines), d.contextLines, func(i int) bool {
		return lines[i].Kind == diff.KindUnchanged
	})
	rows = make([]string, 0, len(items))
	lineRows = make([]int, 0, len(items))
	for _, it := range items {
		if it.index < 0 {
			rows = append(rows, DiffCollapsedStyle.Render(foldLabel(it.hidden)))
			lineRows = append(lineRows, 0)
			continue
		}
		if r, ok := startRegion[it.index]; ok {
			regionRows[r] = len(rows)
		}
		rows = append(rows, d.inlineRow(lines[it.index], gutter, width, spans[it.index]))
		lineRows = append(lineRows, lines[it.index].RevisedLine)
	}
	return rows, regionRows, lineRows
}

func (d *DiffView) inlineRow(ln diff.InlineLine, gutter, width int, spans []diff.Span) string {
	var sign string
	var base, emph lipgloss.Style
	switch ln.Kind {
	case diff.KindAdded:
		sign, base, emph = "+", DiffAddedStyle, DiffAddedEmphStyle
	case diff.KindRemoved:
		sign, base, emph = "-", DiffRemovedStyle, DiffRemovedEmphStyle
	case diff.KindModified:
		sign, base, emph = "~", DiffModifiedStyle, DiffModifiedStyle
	default:
		sign, base, emph = " ", DiffContextStyle, DiffContextStyle
	}
	nums := lineNo(ln.OriginalLine, gutter) + " " + lineNo(ln.RevisedLine, gutter) + " "
	row := DiffLineNumberStyle.Render(nums) +
		base.Render(sign+" ") +
		d.renderSpans(ln.Text, spans, base, emph)
	return ansi.Truncate(row, width, "…")
}

func (d *DiffView) renderSideBySide(width int) (rows []string, regionRows, lineRows []int) {
	paired := diff.SideBySide(d.script, d.regions)
	gutter := lineNumberWidth(d.script)
	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(sideBySideSeparator)
	colWidth := (width - ansi.StringWidth(sideBySideSeparator)) / 2
	spans := intralineForPaired(paired)

	regionRows = make([]int, len(d.regions))
	seen := make(map[int]bool, len(d.regions))

	items := foldUnchanged(len(paired), d.contextLines, func(i int) bool {
		return paired[i].Kind == diff.KindUnchanged
	})
	rows = make([]string, 0, len(items))
	lineRows = make([]int, 0, len(items))
	for _, it := range items {
		if it.index < 0 {
			rows = append(rows, DiffCollapsedStyle.Render(foldLabel(it.hidden)))
			lineRows = append(lineRows, 0)
			continue
		}
		pl := paired[it.index]
		if g := pl.ChangeGroup; g > 0 && !seen[g] {
			seen[g] = true
			if g-1 < len(regionRows) {
				regionRows[g-1] = len(rows)
			}
		}
		rows = append(rows, d.pairedRow(pl, spans[it.index], gutter, colWidth, sep))
		lineRows = append(lineRows, pl.RightLine)
	}
	return rows, regionRows, lineRows
}

// pairedRow renders one side-by-side row. A side whose line number is zero is
// drawn as a blank placeholder so the two columns stay aligned.
func (d *DiffView) pairedRow(pl diff.PairedLine, spans []diff.Span, gutter, colWidth int, sep string) string {
	blank := strings.Repeat(" ", colWidth)
	switch pl.Kind {
	case diff.KindUnchanged:
		left := d.sideCell(pl.LeftText, pl.LeftLine, nil, gutter, colWidth, DiffContextStyle, DiffContextStyle)
		right := d.sideCell(pl.RightText, pl.RightLine, nil, gutter, colWidth, DiffContextStyle, DiffContextStyle)
		return left + sep + right
	case diff.KindRemoved:
		left := d.sideCell(pl.LeftText, pl.LeftLine, spans, gutter, colWidth, DiffRemovedStyle, DiffRemovedEmphStyle)
		return left + sep + blank
	case diff.KindAdded:
		right := d.sideCell(pl.RightText, pl.RightLine, spans, gutter, colWidth, DiffAddedStyle, DiffAddedEmphStyle)
		return blank + sep + right
	default:
		// Modified rows carry one populated side each.
		if pl.LeftLine > 0 {
			left := d.sideCell(pl.LeftText, pl.LeftLine, spans, gutter, colWidth, DiffRemovedStyle, DiffRemovedEmphStyle)
			return left + sep + blank
		}
		right := d.sideCell(pl.RightText, pl.RightLine, spans, gutter, colWidth, DiffAddedStyle, DiffAddedEmphStyle)
		return blank + sep + right
	}
}

// sideCell renders one column of a side-by-side row at an exact display width.
func (d *DiffView) sideCell(text string, line int, spans []diff.Span, gutter, colWidth int, base, emph lipgloss.Style) string {
	cell := DiffLineNumberStyle.Render(lineNo(line, gutter)+" ") +
		d.renderSpans(text, spans, base, emph)
	return padCell(cell, colWidth)
}

// renderSpans styles text with base, switching to emph inside the given rune
// spans. Tabs are expanded against the running display column so emphasis
// boundaries stay accurate after expansion.
func (d *DiffView) renderSpans(text string, spans []diff.Span, base, emph lipgloss.Style) string {
	runes := []rune(text)
	var b strings.Builder
	col := 0
	at := 0
	for _, sp := range spans {
		if sp.Start >= len(runes) {
			break
		}
		end := sp.End
		if end > len(runes) {
			end = len(runes)
		}
		if sp.Start > at {
			b.WriteString(base.Render(expandTabs(runes[at:sp.Start], d.tabWidth, &col)))
		}
		b.WriteString(emph.Render(expandTabs(runes[sp.Start:end], d.tabWidth, &col)))
		at = end
	}
	if at < len(runes) {
		b.WriteString(base.Render(expandTabs(runes[at:], d.tabWidth, &col)))
	}
	return b.String()
}

// expandTabs replaces tabs with spaces up to the next tab stop. col tracks the
// display column across calls for a single line.
func expandTabs(runes []rune, tabWidth int, col *int) string {
	var b strings.Builder
	for _, r := range runes {
		if r == '\t' {
			n := tabWidth - (*col % tabWidth)
			b.WriteString(strings.Repeat(" ", n))
			*col += n
			continue
		}
		b.WriteRune(r)
		*col += ansi.StringWidth(string(r))
	}
	return b.String()
}

// padCell truncates or pads styled content to an exact display width.
func padCell(cell string, width int) string {
	w := ansi.StringWidth(cell)
	if w > width {
		return ansi.Truncate(cell, width, "…")
	}
	return cell + strings.Repeat(" ", width-w)
}

// lineNo formats a 1-based line number into a fixed-width gutter, blank when
// the side has no line there.
func lineNo(n, width int) string {
	if n <= 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, n)
}

// lineNumberWidth returns the gutter width needed for the largest line number
// in the script, with a floor so small files don't produce a jittery gutter.
func lineNumberWidth(script []diff.Entry) int {
	max := 0
	for _, e := range script {
		if e.OriginalLine > max {
			max = e.OriginalLine
		}
		if e.RevisedLine > max {
			max = e.RevisedLine
		}
	}
	w := len(strconv.Itoa(max))
	if w < 3 {
		w = 3
	}
	return w
}

func foldLabel(hidden int) string {
	if hidden == 1 {
		return "··· 1 unchanged line ···"
	}
	return fmt.Sprintf("··· %d unchanged lines ···", hidden)
}

// foldItem is one planned output row: either a source row index or, when
// index is -1, a fold marker standing in for hidden rows.
type foldItem struct {
	index  int
	hidden int
}

// foldUnchanged plans which rows to show. Unchanged runs keep context rows
// next to adjacent changes and collapse the rest to a single marker. Runs at
// the start of the file keep only their tail, runs at the end only their head.
func foldUnchanged(n, context int, unchanged func(int) bool) []foldItem {
	items := make([]foldItem, 0, n)
	i := 0
	for i < n {
		if !unchanged(i) {
			items = append(items, foldItem{index: i})
			i++
			continue
		}
		j := i
		for j < n && unchanged(j) {
			j++
		}
		run := j - i
		head := context
		tail := context
		if i == 0 {
			head = 0
		}
		if j == n {
			tail = 0
		}
		if run <= head+tail {
			for k := i; k < j; k++ {
				items = append(items, foldItem{index: k})
			}
		} else {
			for k := i; k < i+head; k++ {
				items = append(items, foldItem{index: k})
			}
			items = append(items, foldItem{index: -1, hidden: run - head - tail})
			for k := j - tail; k < j; k++ {
				items = append(items, foldItem{index: k})
			}
		}
		i = j
	}
	return items
}

// regionStartIndexes returns the script index where each change region
// begins, in the order diff.Regions reports them.
func regionStartIndexes(script []diff.Entry) []int {
	var starts []int
	for i, e := range script {
		if e.Kind == diff.KindUnchanged {
			continue
		}
		if i == 0 || script[i-1].Kind == diff.KindUnchanged {
			starts = append(starts, i)
		}
	}
	return starts
}

// intralineForScript pairs removed and added lines position by position
// inside each change run and computes the changed spans for each pair. Lines
// with no surviving common text are left unemphasized.
func intralineForScript(script []diff.Entry) map[int][]diff.Span {
	spans := make(map[int][]diff.Span)
	i := 0
	for i < len(script) {
		if script[i].Kind == diff.KindUnchanged {
			i++
			continue
		}
		j := i
		var removed, added []int
		for j < len(script) && script[j].Kind != diff.KindUnchanged {
			switch script[j].Kind {
			case diff.KindRemoved:
				removed = append(removed, j)
			case diff.KindAdded:
				added = append(added, j)
			}
			j++
		}
		for k := 0; k < len(removed) && k < len(added); k++ {
			lText := script[removed[k]].Text
			rText := script[added[k]].Text
			l, r := diff.IntralineSpans(lText, rText)
			if coversAll(l, lText) && coversAll(r, rText) {
				continue
			}
			if len(l) > 0 {
				spans[removed[k]] = l
			}
			if len(r) > 0 {
				spans[added[k]] = r
			}
		}
		i = j
	}
	return spans
}

// intralineForPaired pairs the k-th left-side and k-th right-side modified
// rows of each change group and computes the changed spans for both, keyed by
// paired row index.
func intralineForPaired(paired []diff.PairedLine) map[int][]diff.Span {
	spans := make(map[int][]diff.Span)
	i := 0
	for i < len(paired) {
		if paired[i].Kind != diff.KindModified {
			i++
			continue
		}
		g := paired[i].ChangeGroup
		j := i
		var left, right []int
		for j < len(paired) && paired[j].Kind == diff.KindModified && paired[j].ChangeGroup == g {
			if paired[j].LeftLine > 0 {
				left = append(left, j)
			} else {
				right = append(right, j)
			}
			j++
		}
		for k := 0; k < len(left) && k < len(right); k++ {
			lText := paired[left[k]].LeftText
			rText := paired[right[k]].RightText
			l, r := diff.IntralineSpans(lText, rText)
			if coversAll(l, lText) && coversAll(r, rText) {
				continue
			}
			if len(l) > 0 {
				spans[left[k]] = l
			}
			if len(r) > 0 {
				spans[right[k]] = r
			}
		}
		i = j
	}
	return spans
}

// coversAll reports whether the spans reduce to the entire string, meaning
// the paired lines share no common text worth emphasizing.
func coversAll(spans []diff.Span, s string) bool {
	return len(spans) == 1 && spans[0].Start == 0 && spans[0].End == len([]rune(s))
}

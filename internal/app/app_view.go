package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/rift/internal/ui"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the full layout to a plain string
func (m *Model) RenderToString() string {
	m.updateFooterContext()

	headerView := m.header.View()
	footerView := m.footer.View()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.files.View(),
		m.contentPaneView(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		headerView,
		panels,
		footerView,
	)

	// Modal replaces the layout; its View centers itself on the screen
	if m.modal.IsVisible() {
		view = m.modal.View(m.width, m.height)
	}

	return view
}

// contentPaneView renders whichever pane the mode calls for
func (m *Model) contentPaneView() string {
	if m.mode == ModeResolve {
		return m.conflicts.View()
	}
	return m.diffView.View()
}

// updateFooterContext derives the footer's key hints from the current state
func (m *Model) updateFooterContext() {
	hasFiles := m.files.Len() > 0
	fileListFocused := m.focus == FocusFiles
	resolveMode := m.mode == ModeResolve

	conflictFocused := false
	allResolved := false
	if resolveMode {
		if c := m.conflicts.Selected(); c != nil && !c.Resolved {
			conflictFocused = true
		}
		if f := m.currentFile(); f != nil {
			allResolved = f.Store.AllResolved()
		}
	}

	sel := m.contentSelection()
	selecting := sel.Active || sel.HasSelection()

	m.footer.SetContext(hasFiles, fileListFocused, resolveMode, conflictFocused, allResolved, selecting)
}

// updateSizes recalculates panel dimensions from the terminal size
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.files.SetSize(ctx.FileListWidth, ctx.ContentHeight)
	m.diffView.SetSize(ctx.DiffWidth, ctx.ContentHeight)
	m.conflicts.SetSize(ctx.DiffWidth, ctx.ContentHeight)
}

package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/ui"
)

// routeScrollAndMouseEvents routes scroll keys and mouse events to the content pane.
// Returns a command if the event was handled, nil otherwise.
func (m *Model) routeScrollAndMouseEvents(msg tea.Msg) tea.Cmd {
	// Route scroll keys to the content pane even when the file list is focused
	if m.focus == FocusFiles {
		if cmd := m.routeFileListFocusedEvents(msg); cmd != nil {
			return cmd
		}
	}

	// Handle mouse events when the content pane is focused
	if m.focus == FocusDiff {
		if cmd := m.routeMouseEventsToContent(msg); cmd != nil {
			return cmd
		}
	}

	return nil
}

// routeFileListFocusedEvents routes events to the content pane while the
// file list holds focus
func (m *Model) routeFileListFocusedEvents(msg tea.Msg) tea.Cmd {
	// Scroll keys always drive the content pane; the file list moves with j/k
	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		switch keyMsg.String() {
		case "pgup", "pgdown", "page up", "page down", "ctrl+u", "ctrl+d":
			return m.updateContentPaneScroll(msg)
		}
	}

	// Route mouse wheel events by position
	if mouseMsg, isMouse := msg.(tea.MouseWheelMsg); isMouse {
		if mouseMsg.X > m.files.Width() {
			return m.updateContentPane(msg)
		}
	}

	// Route mouse click/motion/release events for text selection
	return m.routeMouseEventsToContent(msg)
}

// updateContentPaneScroll forwards a scroll key to the content pane with its
// focus temporarily forced on, since panes drop keys while unfocused
func (m *Model) updateContentPaneScroll(msg tea.Msg) tea.Cmd {
	if m.mode == ModeResolve {
		m.conflicts.SetFocused(true)
		cmd := m.updateContentPane(msg)
		m.conflicts.SetFocused(false)
		return cmd
	}
	m.diffView.SetFocused(true)
	cmd := m.updateContentPane(msg)
	m.diffView.SetFocused(false)
	return cmd
}

// routeMouseEventsToContent routes mouse events to the content pane with
// coordinate adjustment for the file list column and the header row
func (m *Model) routeMouseEventsToContent(msg tea.Msg) tea.Cmd {
	filesWidth := m.files.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseWheelMsg:
		// Wheel scrolls the content pane from anywhere while it is focused
		if m.focus == FocusDiff {
			return m.updateContentPane(msg)
		}

	case tea.MouseClickMsg:
		if mouseMsg.X > filesWidth {
			return m.updateContentPane(m.adjustMouseClickMsg(mouseMsg, filesWidth))
		}

	case tea.MouseMotionMsg:
		if mouseMsg.X > filesWidth {
			return m.updateContentPane(m.adjustMouseMotionMsg(mouseMsg, filesWidth))
		}

	case tea.MouseReleaseMsg:
		if mouseMsg.X > filesWidth {
			return m.updateContentPane(m.adjustMouseReleaseMsg(mouseMsg, filesWidth))
		}
	}

	return nil
}

// adjustMouseClickMsg adjusts mouse click coordinates for the content pane.
// X is adjusted by subtracting the file list width, Y by the header height.
func (m *Model) adjustMouseClickMsg(msg tea.MouseClickMsg, filesWidth int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      msg.X - filesWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseMotionMsg adjusts mouse motion coordinates for the content pane.
func (m *Model) adjustMouseMotionMsg(msg tea.MouseMotionMsg, filesWidth int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      msg.X - filesWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

// adjustMouseReleaseMsg adjusts mouse release coordinates for the content pane.
func (m *Model) adjustMouseReleaseMsg(msg tea.MouseReleaseMsg, filesWidth int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      msg.X - filesWidth,
		Y:      msg.Y - ui.HeaderHeight,
		Button: msg.Button,
		Mod:    msg.Mod,
	}
}

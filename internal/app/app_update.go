package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/keys"
	"github.com/zhubert/rift/internal/logger"
	"github.com/zhubert/rift/internal/ui"
	"github.com/zhubert/rift/internal/ui/modals"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		logger.Debug("app: terminal window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		logger.Debug("app: terminal window blurred")
		return m, nil

	case tea.KeyPressMsg:
		// A nil model means the key was not consumed and should fall
		// through to the focused panel below
		model, cmd := m.handleKeyPress(msg)
		if model != nil {
			return model, cmd
		}

	case StartupModalMsg:
		return m.handleStartup()

	case ApplyResultMsg:
		return m.handleApplyResult(msg)

	case ApplyAllResultMsg:
		return m.handleApplyAllResult(msg)

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)
	}

	// Update modal if visible
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Handle flash and selection timers
	if cmd := m.handleTickMessages(msg); cmd != nil {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Route scroll and mouse events to the content pane
	if cmd := m.routeScrollAndMouseEvents(msg); cmd != nil {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Mouse events stop at routing; their coordinates were already adjusted
	// there, so the focused panel must not see them again
	switch msg.(type) {
	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		return m, tea.Batch(cmds...)
	}

	// Route remaining messages to the focused panel
	if m.focus == FocusFiles {
		files, cmd := m.files.Update(msg)
		m.files = files
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else {
		if cmd := m.updateContentPane(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress processes key presses. A (nil, nil) return means the key was
// not handled here and falls through to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Modal gets keys first when visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Escape clears any text selection before anything else
	if key == keys.Escape {
		if model, cmd, handled := m.handleEscapeKey(); handled {
			return model, cmd
		}
		return m, nil
	}

	// Copy re-copies the current selection (drag release already copied once)
	if key == "y" && m.contentSelection().HasSelection() {
		return m, m.copySelection()
	}

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Registered shortcuts
	if model, cmd, handled := m.ExecuteShortcut(key); handled {
		return model, cmd
	}

	if key == keys.Enter {
		return m.handleEnterKey()
	}

	return nil, nil
}

// handleEscapeKey clears the content pane's text selection. Returns handled
// false when there is nothing to clear.
func (m *Model) handleEscapeKey() (tea.Model, tea.Cmd, bool) {
	sel := m.contentSelection()
	if sel.Active || sel.HasSelection() {
		sel.Clear()
		return m, nil, true
	}
	return m, nil, false
}

// handleEnterKey opens the selected file or the resolve modal depending on
// which panel is focused
func (m *Model) handleEnterKey() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusFiles:
		if m.mode == ModeResolve {
			if item := m.files.Selected(); item != nil {
				m.openFile(item.Path)
				m.setFocus(FocusDiff)
			}
		}
		return m, nil
	case FocusDiff:
		if m.mode == ModeResolve {
			return m.showResolveModal()
		}
	}
	return m, nil
}

// handleTickMessages handles flash timers and selection flash ticks
func (m *Model) handleTickMessages(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ui.SelectionFlashTickMsg:
		return m.updateContentPane(msg)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return nil
		}
		if m.footer.HasFlash() {
			return ui.FlashTick()
		}
		return nil

	case ui.ClipboardErrorMsg:
		logger.Warn("app: clipboard: %v", msg.Error)
		m.footer.SetFlash("Failed to copy to clipboard", ui.FlashError)
		return ui.FlashTick()
	}
	return nil
}

// handleHelpShortcutTrigger executes a shortcut selected from the help modal
func (m *Model) handleHelpShortcutTrigger(displayKey string) (tea.Model, tea.Cmd) {
	key := normalizeHelpDisplayKey(displayKey)
	if key == "" {
		return m, nil
	}
	model, cmd, handled := m.ExecuteShortcut(key)
	if !handled {
		logger.Debug("app: help-triggered shortcut %q not applicable", key)
		return m, nil
	}
	return model, cmd
}

package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/conflict"
	"github.com/zhubert/rift/internal/keys"
	"github.com/zhubert/rift/internal/logger"
	"github.com/zhubert/rift/internal/ui"
	"github.com/zhubert/rift/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on
// the modal state type
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.WelcomeState:
		return m.handleWelcomeModal(key)
	case *modals.ResolveState:
		return m.handleResolveModal(key, msg, s)
	case *modals.ManualEditState:
		return m.handleManualEditModal(key, msg, s)
	case *modals.ConfirmApplyState:
		return m.handleConfirmApplyModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.GotoLineState:
		return m.handleGotoLineModal(key, msg, s)
	case *modals.SaveAsState:
		return m.handleSaveAsModal(key, msg, s)
	}

	// Default: update modal input (for text-based modals)
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleWelcomeModal handles key events for the first-run welcome modal
func (m *Model) handleWelcomeModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape, "q":
		m.config.SetWelcomeShown()
		if err := m.config.Save(); err != nil {
			logger.Warn("app: save welcome flag: %v", err)
		}
		m.modal.Hide()
	}
	return m, nil
}

// handleResolveModal handles key events for the resolve-choice modal
func (m *Model) handleResolveModal(key string, msg tea.KeyPressMsg, state *modals.ResolveState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		action := state.SelectedAction()
		m.modal.Hide()
		switch action {
		case modals.ResolveKeepCurrent:
			return m.resolveConflict(state.ConflictID, conflict.ChooseCurrent)
		case modals.ResolveKeepIncoming:
			return m.resolveConflict(state.ConflictID, conflict.ChooseIncoming)
		case modals.ResolveKeepBoth:
			return m.resolveConflict(state.ConflictID, conflict.ChooseBoth)
		case modals.ResolveEditManually:
			return m.showManualEditModal()
		}
		return m, nil
	}
	// Forward up/down to the option list
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleManualEditModal handles key events for the manual resolution editor
func (m *Model) handleManualEditModal(key string, msg tea.KeyPressMsg, state *modals.ManualEditState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.CtrlS:
		content := state.GetContent()
		m.modal.Hide()
		return m.resolveCustom(state.ConflictID, content)
	}
	// All other keys go to the textarea
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmApplyModal handles key events for the apply confirmation
func (m *Model) handleConfirmApplyModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmApplyState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.pendingApplyAll = false
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		applyAll := m.pendingApplyAll
		m.pendingApplyAll = false
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		if applyAll {
			return m, tea.Batch(m.applyAllCmd(), m.ShowFlashInfo("Applying..."))
		}
		f := m.currentFile()
		if f == nil {
			return m, nil
		}
		return m, tea.Batch(m.applyFileCmd(f.Path), m.ShowFlashInfo("Applying..."))
	}
	// left/right toggle the confirm buttons inside the form
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleSettingsModal handles key events for the Settings modal
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.config.SetTheme(state.GetSelectedTheme())
		m.config.SetViewMode(state.GetViewMode())
		m.config.SetContextLines(state.GetContextLines())
		m.config.SetTabWidth(state.GetTabWidth())
		m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())
		if err := m.config.Save(); err != nil {
			logger.Error("app: save settings: %v", err)
			m.modal.SetError("Failed to save: " + err.Error())
			return m, nil
		}

		if state.ThemeChanged() {
			ui.SetThemeByName(state.GetSelectedTheme())
		}
		m.diffView.SetViewMode(state.GetViewMode())
		m.diffView.SetContextLines(state.GetContextLines())
		m.diffView.SetTabWidth(state.GetTabWidth())
		m.conflicts.SetContextLines(state.GetContextLines())
		m.conflicts.SetTabWidth(state.GetTabWidth())

		m.modal.Hide()
		return m, m.ShowFlashSuccess("Settings saved")
	}
	// Forward other keys to the form
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpModal handles key events for the Help modal
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		// Trigger the selected shortcut
		shortcut := state.GetSelectedShortcut()
		if shortcut != nil {
			m.modal.Hide()
			return m, func() tea.Msg {
				return modals.HelpShortcutTriggeredMsg{Key: shortcut.Key}
			}
		}
		return m, nil
	}
	// Forward navigation keys to the modal
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleGotoLineModal handles key events for the go-to-line modal
func (m *Model) handleGotoLineModal(key string, msg tea.KeyPressMsg, state *modals.GotoLineState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		line, ok := state.GetLine()
		if !ok {
			m.modal.SetError(fmt.Sprintf("Enter a line between 1 and %d", state.MaxLine))
			return m, nil
		}
		m.modal.Hide()
		m.diffView.ScrollToLine(line)
		return m, nil
	}
	// Forward digits and editing keys to the input
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleSaveAsModal handles key events for the save-as modal
func (m *Model) handleSaveAsModal(key string, msg tea.KeyPressMsg, state *modals.SaveAsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		target := state.GetPath()
		m.modal.Hide()
		if target == "" {
			return m, nil
		}
		f := m.currentFile()
		if f == nil {
			return m, nil
		}
		if err := m.saveResolvedCopy(f, target); err != nil {
			logger.Error("app: save as %s: %v", target, err)
			return m, m.ShowFlashError("Failed to save: " + err.Error())
		}
		logger.Info("app: saved resolved copy of %s to %s", f.Path, target)
		return m, m.ShowFlashSuccess("Saved " + target)
	}
	// All other keys go to the path input
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/conflict"
	"github.com/zhubert/rift/internal/logger"
	"github.com/zhubert/rift/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key               string                              // The key binding (e.g., "a", "ctrl+s")
	DisplayKey        string                              // Display name in help; defaults to Key
	Description       string                              // Human-readable description
	Category          string                              // Section for help modal grouping
	RequiresResolve   bool                                // Only available in resolve mode
	RequiresDiffFocus bool                                // Only when the content pane is focused
	Handler           func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition         func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategoryResolve    = "Resolving"
	CategoryFiles      = "Files"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryResolve,
	CategoryFiles,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         "tab",
		Description: "Switch between file list and content",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         ":",
		Description: "Go to line",
		Category:    CategoryNavigation,
		Handler:     shortcutGotoLine,
		Condition:   func(m *Model) bool { return m.mode == ModeDiff && m.diffView.HasDiff() },
	},

	// Resolving
	{
		Key:               "c",
		Description:       "Keep current side",
		Category:          CategoryResolve,
		RequiresResolve:   true,
		RequiresDiffFocus: true,
		Handler:           shortcutKeepCurrent,
		Condition:         hasSelectedConflict,
	},
	{
		Key:               "i",
		Description:       "Keep incoming side",
		Category:          CategoryResolve,
		RequiresResolve:   true,
		RequiresDiffFocus: true,
		Handler:           shortcutKeepIncoming,
		Condition:         hasSelectedConflict,
	},
	{
		Key:               "b",
		Description:       "Keep both, current first",
		Category:          CategoryResolve,
		RequiresResolve:   true,
		RequiresDiffFocus: true,
		Handler:           shortcutKeepBoth,
		Condition:         hasSelectedConflict,
	},
	{
		Key:               "B",
		Description:       "Keep both, incoming first",
		Category:          CategoryResolve,
		RequiresResolve:   true,
		RequiresDiffFocus: true,
		Handler:           shortcutKeepBothReverse,
		Condition:         hasSelectedConflict,
	},
	{
		Key:               "e",
		Description:       "Edit resolution manually",
		Category:          CategoryResolve,
		RequiresResolve:   true,
		RequiresDiffFocus: true,
		Handler:           shortcutEditConflict,
		Condition:         hasSelectedConflict,
	},

	// Files
	{
		Key:             "a",
		Description:     "Apply resolutions to the file",
		Category:        CategoryFiles,
		RequiresResolve: true,
		Handler:         shortcutApplyFile,
		Condition: func(m *Model) bool {
			f := m.currentFile()
			return f != nil && f.Store.AllResolved() && !f.Applied
		},
	},
	{
		Key:             "A",
		Description:     "Apply all resolved files",
		Category:        CategoryFiles,
		RequiresResolve: true,
		Handler:         shortcutApplyAll,
		Condition:       func(m *Model) bool { return m.sess != nil && m.sess.AllResolved() },
	},
	{
		Key:             "S",
		Description:     "Save resolved copy as...",
		Category:        CategoryFiles,
		RequiresResolve: true,
		Handler:         shortcutSaveAs,
		Condition:       func(m *Model) bool { return m.currentFile() != nil },
	},
	{
		Key:         "r",
		Description: "Reload from disk",
		Category:    CategoryFiles,
		Handler:     shortcutReload,
		Condition:   func(m *Model) bool { return m.mode == ModeDiff || m.currentFile() != nil },
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:         "d",
		Description: "Toggle inline/side-by-side",
		Category:    CategoryGeneral,
		Handler:     shortcutToggleViewMode,
		Condition:   func(m *Model) bool { return m.mode == ModeDiff },
	},
	{
		Key:         ",",
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:         "q",
		Description: "Quit application",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// hasSelectedConflict gates the per-conflict resolve shortcuts
func hasSelectedConflict(m *Model) bool {
	return m.conflicts.Selected() != nil
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
// These are pane keys handled by the focused panel or fixed app keys.
var DisplayOnlyShortcuts = []Shortcut{
	// Navigation (display-only)
	{DisplayKey: "j/k", Description: "Move selection / scroll", Category: CategoryNavigation},
	{DisplayKey: "g/G", Description: "Jump to top/bottom", Category: CategoryNavigation},
	{DisplayKey: "ctrl+d/u", Description: "Half page down/up", Category: CategoryNavigation},
	{DisplayKey: "n/p", Description: "Next/previous change or conflict", Category: CategoryNavigation},
	{DisplayKey: "enter", Description: "Open file / resolve selected conflict", Category: CategoryNavigation},

	// General (display-only)
	{DisplayKey: "mouse drag", Description: "Select text (auto-copies)", Category: CategoryGeneral},
	{DisplayKey: "y", Description: "Copy selection again", Category: CategoryGeneral},
	{DisplayKey: "esc", Description: "Clear text selection", Category: CategoryGeneral},
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresResolve && m.mode != ModeResolve {
		return false
	}
	if s.RequiresDiffFocus && m.focus != FocusDiff {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// It checks all guards (RequiresResolve, RequiresDiffFocus, Condition) before executing.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Handle help shortcut specially (defined outside registry to avoid init cycle)
	if key == "?" {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.RequiresResolve && m.mode != ModeResolve {
			logger.Debug("app: shortcut %q needs resolve mode", key)
			return m, nil, false
		}
		if s.RequiresDiffFocus && m.focus != FocusDiff {
			logger.Debug("app: shortcut %q needs the content pane focused", key)
			return m, nil, false
		}
		if s.Condition != nil && !s.Condition(m) {
			logger.Debug("app: shortcut %q condition failed", key)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that
// are applicable in the current application state, filtering out shortcuts
// whose guards would fail.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	// Add executable shortcuts that are applicable
	for _, s := range registry {
		if !m.isShortcutApplicable(s) {
			continue
		}
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	// Display-only shortcuts describe pane keys that work in every mode
	for _, s := range displayOnly {
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  s.DisplayKey,
			Desc: s.Description,
		})
	}

	// Build sections in the correct order
	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}

	return sections
}

// normalizeHelpDisplayKey maps a help-modal display key back to the registry
// key it executes as. Display-only entries map to "".
func normalizeHelpDisplayKey(displayKey string) string {
	switch displayKey {
	case "j/k", "g/G", "ctrl+d/u", "n/p", "enter", "esc", "y", "mouse drag":
		return ""
	}
	return displayKey
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	cmd := m.toggleFocus()
	return m, cmd
}

func shortcutGotoLine(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewGotoLineState(m.diffView.MaxLine()))
	return m, nil
}

func shortcutKeepCurrent(m *Model) (tea.Model, tea.Cmd) {
	return m.resolveSelected(conflict.ChooseCurrent)
}

func shortcutKeepIncoming(m *Model) (tea.Model, tea.Cmd) {
	return m.resolveSelected(conflict.ChooseIncoming)
}

func shortcutKeepBoth(m *Model) (tea.Model, tea.Cmd) {
	return m.resolveSelected(conflict.ChooseBoth)
}

func shortcutKeepBothReverse(m *Model) (tea.Model, tea.Cmd) {
	return m.resolveSelected(conflict.ChooseBothReverse)
}

func shortcutEditConflict(m *Model) (tea.Model, tea.Cmd) {
	return m.showManualEditModal()
}

func shortcutApplyFile(m *Model) (tea.Model, tea.Cmd) {
	f := m.currentFile()
	if f == nil {
		return m, nil
	}
	resolved, total := f.Progress()
	m.pendingApplyAll = false
	m.modal.Show(modals.NewConfirmApplyState(m.displayPath(f.Path), resolved, total))
	return m, nil
}

func shortcutApplyAll(m *Model) (tea.Model, tea.Cmd) {
	resolved, total := m.sess.Progress()
	m.pendingApplyAll = true
	m.modal.Show(modals.NewConfirmApplyState(
		fmt.Sprintf("%d file(s)", len(m.sess.Files)), resolved, total))
	return m, nil
}

func shortcutSaveAs(m *Model) (tea.Model, tea.Cmd) {
	f := m.currentFile()
	if f == nil {
		return m, nil
	}
	m.modal.Show(modals.NewSaveAsState(f.Path))
	return m, nil
}

func shortcutReload(m *Model) (tea.Model, tea.Cmd) {
	return m.reload()
}

func shortcutToggleViewMode(m *Model) (tea.Model, tea.Cmd) {
	m.diffView.ToggleViewMode()
	m.config.SetViewMode(m.diffView.ViewMode())
	if err := m.config.Save(); err != nil {
		logger.Warn("app: save view mode: %v", err)
	}
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.showSettingsModal()
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	// Include help shortcut in the registry for display purposes
	allShortcuts := append(ShortcutRegistry, helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpStateFromSections(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/conflict"
	"github.com/zhubert/rift/internal/config"
	"github.com/zhubert/rift/internal/diff"
	"github.com/zhubert/rift/internal/document"
	"github.com/zhubert/rift/internal/logger"
	"github.com/zhubert/rift/internal/notification"
	"github.com/zhubert/rift/internal/session"
	"github.com/zhubert/rift/internal/ui"
	"github.com/zhubert/rift/internal/ui/modals"
)

// =============================================================================
// Focus Management
// =============================================================================

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusFiles {
		// Only allow switching to the content pane when something is loaded
		if m.files.Len() == 0 {
			return nil
		}
		m.setFocus(FocusDiff)
	} else {
		m.setFocus(FocusFiles)
	}
	return nil
}

func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.files.SetFocused(focus == FocusFiles)
	m.diffView.SetFocused(focus == FocusDiff)
	m.conflicts.SetFocused(focus == FocusDiff)
}

// =============================================================================
// File Selection
// =============================================================================

// openFile loads a session file's conflicts into the content pane.
// Resolve mode only.
func (m *Model) openFile(path string) {
	f, err := m.sess.File(path)
	if err != nil {
		logger.Warn("app: open file: %v", err)
		return
	}

	m.files.SelectPath(f.Path)

	store, content := f.Store, f.Doc.Buffer()
	if f.Applied {
		// The buffer was rewritten on apply, so the recorded conflict
		// ranges no longer match it. Re-parse for display; resolutions
		// stay on the session's own store.
		store = conflict.NewStore(conflict.Parse(content))
	}
	m.conflicts.SetSource(store, content, f.Doc.Language())
	m.conflicts.SelectNextUnresolved()

	m.header.SetFileName(filepath.Base(f.Path))
	m.syncProgress()
	logger.Debug("app: opened %s, %d conflict(s)", f.Path, f.Store.Len())
}

// currentFile returns the session file for the selected list item, or nil in
// diff mode or when nothing is selected.
func (m *Model) currentFile() *session.FileState {
	if m.sess == nil {
		return nil
	}
	item := m.files.Selected()
	if item == nil {
		return nil
	}
	f, err := m.sess.File(item.Path)
	if err != nil {
		return nil
	}
	return f
}

// displayPath returns the path as shown in the UI, repo-relative when the
// session sits inside a work tree.
func (m *Model) displayPath(path string) string {
	if m.sess != nil && m.sess.RepoRoot != "" {
		if rel, err := filepath.Rel(m.sess.RepoRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

// syncFileList rebuilds the file list items from the session state, keeping
// the selection on the same path.
func (m *Model) syncFileList() {
	if m.sess == nil {
		return
	}
	items := make([]ui.FileItem, len(m.sess.Files))
	for i, f := range m.sess.Files {
		resolved, total := f.Progress()
		items[i] = ui.FileItem{
			Path:     f.Path,
			Display:  m.displayPath(f.Path),
			Resolved: resolved,
			Total:    total,
			Applied:  f.Applied,
			Staged:   f.Staged,
		}
	}
	m.files.SetItems(items)
}

// syncProgress pushes the session's resolution counts into the header
func (m *Model) syncProgress() {
	if m.sess == nil {
		return
	}
	resolved, total := m.sess.Progress()
	m.header.SetProgress(resolved, total)
}

// =============================================================================
// Content Pane Routing
// =============================================================================

// contentSelection returns the text selection of the visible content pane
func (m *Model) contentSelection() *ui.TextSelection {
	if m.mode == ModeResolve {
		return m.conflicts.Selection()
	}
	return m.diffView.Selection()
}

// copySelection copies the visible content pane's selection to the clipboard
func (m *Model) copySelection() tea.Cmd {
	if m.mode == ModeResolve {
		return m.conflicts.CopySelection()
	}
	return m.diffView.CopySelection()
}

// updateContentPane forwards a message to the visible content pane
func (m *Model) updateContentPane(msg tea.Msg) tea.Cmd {
	if m.mode == ModeResolve {
		conflicts, cmd := m.conflicts.Update(msg)
		m.conflicts = conflicts
		return cmd
	}
	diffView, cmd := m.diffView.Update(msg)
	m.diffView = diffView
	return cmd
}

// =============================================================================
// Conflict Resolution
// =============================================================================

// resolveSelected records a choice for the conflict selected in the pane
func (m *Model) resolveSelected(choice conflict.Choice) (tea.Model, tea.Cmd) {
	if id := m.conflicts.SelectedID(); id != "" {
		return m.resolveConflict(id, choice)
	}
	return m, nil
}

// resolveConflict records a choice for one conflict of the current file and
// advances the selection to the next unresolved one
func (m *Model) resolveConflict(conflictID string, choice conflict.Choice) (tea.Model, tea.Cmd) {
	f := m.currentFile()
	if f == nil {
		return m, nil
	}
	if err := m.sess.Resolve(f.Path, conflictID, choice); err != nil {
		logger.Error("app: resolve %s: %v", conflictID, err)
		return m, m.ShowFlashError("Failed to resolve: " + err.Error())
	}
	return m, m.afterResolution()
}

// resolveCustom records a hand-edited resolution for one conflict
func (m *Model) resolveCustom(conflictID, text string) (tea.Model, tea.Cmd) {
	f := m.currentFile()
	if f == nil {
		return m, nil
	}
	if err := m.sess.ResolveCustom(f.Path, conflictID, text); err != nil {
		logger.Error("app: resolve %s: %v", conflictID, err)
		return m, m.ShowFlashError("Failed to resolve: " + err.Error())
	}
	return m, m.afterResolution()
}

// afterResolution refreshes the panes after a resolution changed and moves
// the selection forward
func (m *Model) afterResolution() tea.Cmd {
	m.conflicts.Refresh()
	m.conflicts.SelectNextUnresolved()
	m.syncFileList()
	m.syncProgress()
	return m.maybeNotifyAllResolved()
}

// maybeNotifyAllResolved fires once when the last conflict of the session
// gets a resolution. The desktop notification is skipped while the terminal
// window has focus or when notifications are disabled.
func (m *Model) maybeNotifyAllResolved() tea.Cmd {
	if m.sess == nil || m.notifiedAllResolved || !m.sess.AllResolved() {
		return nil
	}
	m.notifiedAllResolved = true
	logger.Info("app: all conflicts resolved in session %s", m.sess.ShortID)
	if !m.windowFocused && m.config.GetNotificationsEnabled() {
		go notification.SessionResolved(len(m.sess.Files))
	}
	return m.ShowFlashSuccess("All conflicts resolved")
}

// =============================================================================
// Modals
// =============================================================================

// showResolveModal opens the choice modal for the selected conflict
func (m *Model) showResolveModal() (tea.Model, tea.Cmd) {
	c := m.conflicts.Selected()
	if c == nil {
		return m, nil
	}
	m.modal.Show(modals.NewResolveState(
		c.ID, c.Ordinal, m.conflicts.Len(),
		c.CurrentLabel, c.IncomingLabel,
		c.CurrentLines, c.IncomingLines,
	))
	return m, nil
}

// showManualEditModal opens the free-text editor for the selected conflict,
// seeded with both sides, or with the prior resolution when there is one
func (m *Model) showManualEditModal() (tea.Model, tea.Cmd) {
	c := m.conflicts.Selected()
	if c == nil {
		return m, nil
	}
	lines := append(append([]string{}, c.CurrentLines...), c.IncomingLines...)
	if c.Resolved {
		lines = c.ResolvedLines
	}
	m.modal.Show(modals.NewManualEditState(c.ID, c.CurrentLabel, c.IncomingLabel, strings.Join(lines, "\n")))
	return m, nil
}

// showSettingsModal builds the settings form from the current config
func (m *Model) showSettingsModal() {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	displayNames := make([]string, len(names))
	for i, name := range names {
		themes[i] = string(name)
		displayNames[i] = ui.GetTheme(name).Name
	}

	m.modal.Show(modals.NewSettingsState(
		themes, displayNames, string(ui.CurrentThemeName()),
		[]string{config.ViewModeInline, config.ViewModeSideBySide},
		[]string{"Inline", "Side by side"},
		m.config.GetViewMode(),
		m.config.GetContextLines(),
		m.config.GetTabWidth(),
		m.config.GetNotificationsEnabled(),
	))
}

// =============================================================================
// Apply Resolutions
// =============================================================================

// applyFileCmd writes one file's resolutions to disk and stages it.
// Runs as a command since staging shells out to git.
func (m *Model) applyFileCmd(path string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
		defer cancel()
		return ApplyResultMsg{Path: path, Err: sess.Apply(ctx, path)}
	}
}

// applyAllCmd writes every fully resolved file to disk and stages them
func (m *Model) applyAllCmd() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
		defer cancel()
		return ApplyAllResultMsg{Err: sess.ApplyAll(ctx)}
	}
}

func (m *Model) handleApplyResult(msg ApplyResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("app: apply %s: %v", msg.Path, msg.Err)
		return m, m.ShowFlashError("Failed to apply: " + msg.Err.Error())
	}

	m.syncFileList()
	m.syncProgress()
	if item := m.files.Selected(); item != nil && item.Path == msg.Path {
		m.openFile(msg.Path)
	}
	return m, m.ShowFlashSuccess("Applied " + m.displayPath(msg.Path))
}

func (m *Model) handleApplyAllResult(msg ApplyAllResultMsg) (tea.Model, tea.Cmd) {
	// Sync either way; a partial failure still applied some files
	m.syncFileList()
	m.syncProgress()

	if msg.Err != nil {
		logger.Error("app: apply all: %v", msg.Err)
		return m, m.ShowFlashError("Failed to apply: " + msg.Err.Error())
	}

	if item := m.files.Selected(); item != nil {
		m.openFile(item.Path)
	}
	return m, m.ShowFlashSuccess(fmt.Sprintf("Applied %d file(s)", len(m.sess.Files)))
}

// saveResolvedCopy writes the file's resolved content to target without
// touching the original. Unresolved conflicts keep their markers.
func (m *Model) saveResolvedCopy(f *session.FileState, target string) error {
	out := document.FromString(target, f.Store.BuildResolvedContent(f.Doc.Buffer()))
	out.Terminator = f.Doc.Terminator
	out.TrailingNewline = f.Doc.TrailingNewline
	return out.Save()
}

// =============================================================================
// Diff Pair Loading
// =============================================================================

// loadPair loads the diff-mode pair through the cache and installs the
// computed script into the diff pane
func (m *Model) loadPair() error {
	original, err := m.loadDocument(m.originalPath)
	if err != nil {
		return err
	}
	revised, err := m.loadDocument(m.revisedPath)
	if err != nil {
		return err
	}

	script, ok := m.cache.Script(m.originalPath, m.revisedPath)
	if !ok {
		script = diff.Compute(original.Lines, revised.Lines)
		m.cache.PutScript(m.originalPath, m.revisedPath, script)
	}

	m.diffView.SetDiff(script)
	stats := m.diffView.Stats()
	m.header.SetFileName(filepath.Base(m.originalPath) + " vs " + filepath.Base(m.revisedPath))
	m.header.SetDiffStats(&ui.DiffStats{Additions: stats.Added, Deletions: stats.Removed})
	logger.Info("app: loaded pair %s / %s, +%d -%d", m.originalPath, m.revisedPath, stats.Added, stats.Removed)

	m.config.AddRecentPair(m.originalPath, m.revisedPath)
	if err := m.config.Save(); err != nil {
		logger.Warn("app: save recent pairs: %v", err)
	}
	return nil
}

// loadDocument reads a document through the cache
func (m *Model) loadDocument(path string) (*document.Document, error) {
	if doc, ok := m.cache.Document(path); ok {
		return doc, nil
	}
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	m.cache.PutDocument(doc)
	return doc, nil
}

// reload re-reads the current content from disk. In diff mode both sides of
// the pair drop out of the cache; in resolve mode the selected file loses
// any recorded resolutions.
func (m *Model) reload() (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeDiff:
		m.cache.Invalidate(m.originalPath)
		m.cache.Invalidate(m.revisedPath)
		if err := m.loadPair(); err != nil {
			logger.Error("app: reload pair: %v", err)
			return m, m.ShowFlashError("Failed to reload: " + err.Error())
		}
		return m, m.ShowFlashInfo("Reloaded")

	case ModeResolve:
		f := m.currentFile()
		if f == nil {
			return m, nil
		}
		if _, err := m.sess.Reload(f.Path); err != nil {
			logger.Error("app: reload %s: %v", f.Path, err)
			return m, m.ShowFlashError("Failed to reload: " + err.Error())
		}
		m.notifiedAllResolved = m.sess.AllResolved()
		m.openFile(f.Path)
		m.syncFileList()
		return m, m.ShowFlashInfo("Reloaded " + m.displayPath(f.Path))
	}
	return m, nil
}

// =============================================================================
// Startup
// =============================================================================

// handleStartup loads the diff-mode pair and shows the welcome modal for
// first-time users
func (m *Model) handleStartup() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	logger.Info("app: rift %s starting in %s mode", m.version, m.mode)

	if m.mode == ModeDiff {
		if err := m.loadPair(); err != nil {
			logger.Error("app: load pair: %v", err)
			cmds = append(cmds, m.ShowFlashError("Failed to load: "+err.Error()))
		}
	}

	if !m.config.IsWelcomeShown() {
		logger.Info("app: showing welcome modal (first run)")
		m.modal.Show(modals.NewWelcomeState())
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// Flash Message Helpers
// =============================================================================

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

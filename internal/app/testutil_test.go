package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/config"
	pexec "github.com/zhubert/rift/internal/exec"
	"github.com/zhubert/rift/internal/git"
	"github.com/zhubert/rift/internal/keys"
	"github.com/zhubert/rift/internal/session"
)

// conflictedContent has two well-formed conflicts around plain lines.
const conflictedContent = `package widget
<<<<<<< HEAD
const limit = 10
=======
const limit = 20
>>>>>>> feature
func run() {}
<<<<<<< HEAD
var mode = "fast"
=======
var mode = "safe"
>>>>>>> feature
// end
`

// singleConflictContent has one conflict.
const singleConflictContent = `start
<<<<<<< HEAD
alpha
=======
beta
>>>>>>> feature
end
`

// testConfig creates a minimal config for testing. HOME points at a temp
// directory so Save never touches the real ~/.rift.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return &config.Config{
		Theme:                config.DefaultTheme,
		ViewMode:             config.ViewModeSideBySide,
		ContextLines:         config.DefaultContextLines,
		TabWidth:             config.DefaultTabWidth,
		NotificationsEnabled: false,
		WelcomeShown:         true, // Skip welcome modal in tests
	}
}

// writeFile writes content to dir/name and returns the absolute path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// stubGitService routes the session package's git calls through a
// FakeExecutor for the duration of the test. With no scripted results every
// command succeeds with empty output, so repo detection reports false and
// nothing is staged.
func stubGitService(t *testing.T) *pexec.FakeExecutor {
	t.Helper()
	fake := &pexec.FakeExecutor{}
	svc := git.NewGitService()
	svc.SetExecutor(fake)
	session.SetGitService(svc)
	t.Cleanup(func() { session.SetGitService(git.NewGitService()) })
	return fake
}

// testSession builds a session over the given conflicted files.
func testSession(t *testing.T, paths ...string) *session.Session {
	t.Helper()
	stubGitService(t)
	sess, err := session.New(context.Background(), paths)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return sess
}

// testResolveModel creates a sized resolve-mode model over two fixture files:
// alpha.go with two conflicts and beta.go with one.
func testResolveModel(t *testing.T) *Model {
	t.Helper()
	cfg := testConfig(t)
	dir := t.TempDir()
	alpha := writeFile(t, dir, "alpha.go", conflictedContent)
	beta := writeFile(t, dir, "beta.go", singleConflictContent)
	sess := testSession(t, alpha, beta)

	m := New(cfg, "0.0.0-test", sess)
	return setSize(m, 120, 40)
}

// testDiffModel creates a sized diff-mode model over two plain files and
// delivers the startup message so the pair is loaded.
func testDiffModel(t *testing.T) *Model {
	t.Helper()
	cfg := testConfig(t)
	dir := t.TempDir()
	original := writeFile(t, dir, "old.txt", "one\ntwo\nthree\n")
	revised := writeFile(t, dir, "new.txt", "one\n2\nthree\nfour\n")

	m := NewDiff(cfg, "0.0.0-test", original, revised)
	m = setSize(m, 120, 40)
	result, _ := m.Update(StartupModalMsg{})
	return result.(*Model)
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.CtrlU:
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	case keys.CtrlD:
		return tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// sendFocus delivers a terminal focus event.
func sendFocus(m *Model) *Model {
	result, _ := m.Update(tea.FocusMsg{})
	return result.(*Model)
}

// sendBlur delivers a terminal blur event.
func sendBlur(m *Model) *Model {
	result, _ := m.Update(tea.BlurMsg{})
	return result.(*Model)
}

// collectMsgs runs a command tree and flattens the produced messages,
// expanding batches depth-first.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, collectMsgs(sub)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// =============================================================================
// Mouse Event Helpers
// =============================================================================

// mouseClick creates a tea.MouseClickMsg at the given coordinates.
func mouseClick(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// mouseMotion creates a tea.MouseMotionMsg at the given coordinates.
func mouseMotion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// mouseRelease creates a tea.MouseReleaseMsg at the given coordinates.
func mouseRelease(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// wheelDown creates a scroll-down tea.MouseWheelMsg at the given coordinates.
func wheelDown(x, y int) tea.MouseWheelMsg {
	return tea.MouseWheelMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseWheelDown,
	}
}

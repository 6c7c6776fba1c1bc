package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/ui"
)

// sendMouse delivers a mouse event to the model and returns the updated model.
func sendMouse(m *Model, msg tea.Msg) *Model {
	result, _ := m.Update(msg)
	return result.(*Model)
}

// bigDiffModel creates a sized diff-mode model whose diff is taller than the
// viewport, so scrolling has a visible effect.
func bigDiffModel(t *testing.T) *Model {
	t.Helper()
	cfg := testConfig(t)
	dir := t.TempDir()

	var oldB, newB strings.Builder
	for i := 1; i <= 120; i++ {
		fmt.Fprintf(&oldB, "alpha %d\n", i)
		fmt.Fprintf(&newB, "beta %d\n", i)
	}
	original := writeFile(t, dir, "old.txt", oldB.String())
	revised := writeFile(t, dir, "new.txt", newB.String())

	m := NewDiff(cfg, "0.0.0-test", original, revised)
	m = setSize(m, 120, 40)
	result, _ := m.Update(StartupModalMsg{})
	return result.(*Model)
}

// manyConflictsModel creates a sized resolve-mode model over a file whose
// conflict listing is taller than the viewport.
func manyConflictsModel(t *testing.T) *Model {
	t.Helper()
	cfg := testConfig(t)
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("package big\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "// section %d\n", i)
		b.WriteString("<<<<<<< HEAD\n")
		fmt.Fprintf(&b, "const a%d = %d\n", i, i)
		b.WriteString("=======\n")
		fmt.Fprintf(&b, "const a%d = %d\n", i, i*10)
		b.WriteString(">>>>>>> feature\n")
	}
	path := writeFile(t, dir, "big.go", b.String())
	sess := testSession(t, path)

	m := New(cfg, "0.0.0-test", sess)
	return setSize(m, 120, 40)
}

func TestMouseDragCreatesSelection(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	fw := m.files.Width()
	m = sendMouse(m, mouseClick(fw+3, 4))

	sel := m.conflicts.Selection()
	if !sel.Active {
		t.Fatal("expected click inside the content pane to start a selection")
	}
	if sel.StartCol != 2 || sel.StartLine != 2 {
		t.Errorf("selection start = (%d, %d), want (2, 2)", sel.StartCol, sel.StartLine)
	}
	if sel.ClickCount != 1 {
		t.Errorf("ClickCount = %d, want 1", sel.ClickCount)
	}

	m = sendMouse(m, mouseMotion(fw+9, 6))
	sel = m.conflicts.Selection()
	if sel.EndCol != 8 || sel.EndLine != 4 {
		t.Errorf("selection end = (%d, %d), want (8, 4)", sel.EndCol, sel.EndLine)
	}

	m = sendMouse(m, mouseRelease(fw+9, 6))
	sel = m.conflicts.Selection()
	if sel.Active {
		t.Error("expected drag to stop on release")
	}
	if !sel.HasSelection() {
		t.Error("expected selection to survive release")
	}
	if !sel.IsFlashing() {
		t.Error("expected release to copy and start the selection flash")
	}
}

func TestMouseCoordinatesMapToViewport(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	// The first content cell sits one column past the file list and one row
	// past the header, and the pane border eats one more in each direction.
	fw := m.files.Width()
	m = sendMouse(m, mouseClick(fw+1, ui.HeaderHeight+1))

	sel := m.conflicts.Selection()
	if !sel.Active {
		t.Fatal("expected click on the first content cell to start a selection")
	}
	if sel.StartCol != 0 || sel.StartLine != 0 {
		t.Errorf("selection start = (%d, %d), want viewport origin (0, 0)", sel.StartCol, sel.StartLine)
	}
}

func TestMouseClickOverFileListIgnored(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	m = sendMouse(m, mouseClick(2, 5))

	sel := m.conflicts.Selection()
	if sel.Active {
		t.Error("click over the file list should not start a content selection")
	}
	if sel.ClickCount != 0 {
		t.Errorf("ClickCount = %d, want 0", sel.ClickCount)
	}
	if m.files.SelectedIndex() != 0 {
		t.Errorf("file list selection = %d, want 0", m.files.SelectedIndex())
	}
}

func TestMouseMotionWithoutClickIgnored(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	fw := m.files.Width()
	m = sendMouse(m, mouseMotion(fw+5, 5))

	sel := m.conflicts.Selection()
	if sel.Active || sel.HasSelection() {
		t.Error("motion without a preceding click should not create a selection")
	}
}

func TestMouseReleaseWithoutDragIsNoop(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	fw := m.files.Width()
	m = sendMouse(m, mouseRelease(fw+5, 5))

	sel := m.conflicts.Selection()
	if sel.HasSelection() {
		t.Error("release without a drag should not create a selection")
	}
	if sel.IsFlashing() {
		t.Error("release without a drag should not copy")
	}
}

func TestMouseSelectionWorksFromFileListFocus(t *testing.T) {
	m := testResolveModel(t)
	if m.focus != FocusFiles {
		t.Fatalf("focus = %v, want FocusFiles", m.focus)
	}

	fw := m.files.Width()
	m = sendMouse(m, mouseClick(fw+4, 5))
	m = sendMouse(m, mouseMotion(fw+12, 7))
	m = sendMouse(m, mouseRelease(fw+12, 7))

	if !m.conflicts.Selection().HasSelection() {
		t.Error("expected drag selection to work while the file list holds focus")
	}
	if m.focus != FocusFiles {
		t.Error("mouse selection should not move keyboard focus")
	}
}

func TestMouseDragSelectsInDiffMode(t *testing.T) {
	m := testDiffModel(t)
	m = sendKey(m, "tab")

	fw := m.files.Width()
	m = sendMouse(m, mouseClick(fw+3, 3))
	m = sendMouse(m, mouseMotion(fw+10, 4))
	m = sendMouse(m, mouseRelease(fw+10, 4))

	if !m.diffView.Selection().HasSelection() {
		t.Error("expected drag selection in the diff pane")
	}
}

func TestMouseWheelScrollsFocusedContentAnywhere(t *testing.T) {
	m := bigDiffModel(t)
	m = sendKey(m, "tab")

	// With the content pane focused the wheel scrolls it even when the
	// pointer sits over the file list column.
	before := m.diffView.View()
	m = sendMouse(m, wheelDown(2, 10))

	if m.diffView.View() == before {
		t.Error("expected wheel to scroll the focused content pane")
	}
}

func TestMouseWheelOverContentWhileFilesFocused(t *testing.T) {
	m := bigDiffModel(t)

	before := m.diffView.View()
	m = sendMouse(m, wheelDown(m.files.Width()+5, 10))

	if m.diffView.View() == before {
		t.Error("expected wheel over the content pane to scroll it")
	}
}

func TestMouseWheelOverFileListWhileFilesFocusedIgnored(t *testing.T) {
	m := bigDiffModel(t)

	before := m.diffView.View()
	m = sendMouse(m, wheelDown(2, 10))

	if m.diffView.View() != before {
		t.Error("wheel over the file list should not scroll the content pane")
	}
}

func TestScrollKeysDriveDiffFromFileList(t *testing.T) {
	m := bigDiffModel(t)
	if m.focus != FocusFiles {
		t.Fatalf("focus = %v, want FocusFiles", m.focus)
	}

	before := m.diffView.View()
	m = sendKey(m, "ctrl+d")

	if m.diffView.View() == before {
		t.Error("expected ctrl+d to scroll the content pane from the file list")
	}
	if m.diffView.IsFocused() {
		t.Error("content pane focus should be restored after scroll routing")
	}
	if m.files.SelectedIndex() != 0 {
		t.Errorf("file list selection = %d, want 0", m.files.SelectedIndex())
	}
}

func TestScrollKeysDriveConflictsFromFileList(t *testing.T) {
	m := manyConflictsModel(t)
	if m.conflicts.Len() != 12 {
		t.Fatalf("conflicts.Len() = %d, want 12", m.conflicts.Len())
	}

	before := m.conflicts.View()
	m = sendKey(m, "pgdown")

	if m.conflicts.View() == before {
		t.Error("expected pgdown to scroll the conflict pane from the file list")
	}
	if m.conflicts.IsFocused() {
		t.Error("conflict pane focus should be restored after scroll routing")
	}
}

func TestCopyKeyRecopiesSelection(t *testing.T) {
	m := testResolveModel(t)
	m = sendKey(m, "tab")

	// Without a selection the key is not consumed
	_, cmd := m.Update(keyPress("y"))
	if cmd != nil {
		t.Error("expected no copy command without a selection")
	}

	fw := m.files.Width()
	m = sendMouse(m, mouseClick(fw+3, 4))
	m = sendMouse(m, mouseMotion(fw+15, 6))
	m = sendMouse(m, mouseRelease(fw+15, 6))

	result, cmd := m.Update(keyPress("y"))
	m = result.(*Model)
	if cmd == nil {
		t.Error("expected y to re-copy the selection")
	}
	if !m.conflicts.Selection().HasSelection() {
		t.Error("re-copy should keep the selection")
	}
}

package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testFileItems() []FileItem {
	return []FileItem{
		{Path: "/repo/src/main.go", Display: "src/main.go", Resolved: 1, Total: 3},
		{Path: "/repo/src/parser.go", Display: "src/parser.go", Resolved: 2, Total: 2},
		{Path: "/repo/README.md", Display: "README.md", Resolved: 0, Total: 1},
	}
}

// keyPressMsg creates a tea.KeyPressMsg for the given key string
func keyPressMsg(key string) tea.KeyPressMsg {
	switch key {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "esc", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	default:
		// Regular letter keys use Text field
		return tea.KeyPressMsg{Code: 0, Text: key}
	}
}

func TestNewFileList(t *testing.T) {
	list := NewFileList()

	if list == nil {
		t.Fatal("NewFileList() returned nil")
	}

	if list.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx 0, got %d", list.selectedIdx)
	}

	if list.Len() != 0 {
		t.Errorf("Expected empty list, got %d items", list.Len())
	}
}

func TestFileList_SetSize(t *testing.T) {
	list := NewFileList()

	list.SetSize(40, 24)

	if list.width != 40 {
		t.Errorf("Expected width 40, got %d", list.width)
	}

	if list.height != 24 {
		t.Errorf("Expected height 24, got %d", list.height)
	}

	if list.Width() != 40 {
		t.Errorf("Width() should return 40, got %d", list.Width())
	}
}

func TestFileList_FocusState(t *testing.T) {
	list := NewFileList()

	if list.IsFocused() {
		t.Error("Should not be focused initially")
	}

	list.SetFocused(true)
	if !list.IsFocused() {
		t.Error("Should be focused after SetFocused(true)")
	}

	list.SetFocused(false)
	if list.IsFocused() {
		t.Error("Should not be focused after SetFocused(false)")
	}
}

func TestFileList_SetItems(t *testing.T) {
	list := NewFileList()

	list.SetItems(testFileItems())

	if list.Len() != 3 {
		t.Errorf("Expected 3 items, got %d", list.Len())
	}

	selected := list.Selected()
	if selected == nil {
		t.Fatal("Expected a selected item")
	}

	if selected.Path != "/repo/src/main.go" {
		t.Errorf("Expected first item selected, got %q", selected.Path)
	}
}

func TestFileList_SetItems_KeepsSelectionByPath(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())
	list.Select(2)

	// Re-set with one item removed in front; selection should follow the path
	items := testFileItems()[1:]
	list.SetItems(items)

	selected := list.Selected()
	if selected == nil {
		t.Fatal("Expected a selected item")
	}

	if selected.Path != "/repo/README.md" {
		t.Errorf("Expected selection to follow path, got %q", selected.Path)
	}
}

func TestFileList_SetItems_ResetsWhenPathGone(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())
	list.Select(2)

	list.SetItems(testFileItems()[:2])

	if list.SelectedIndex() != 0 {
		t.Errorf("Expected selection reset to 0, got %d", list.SelectedIndex())
	}
}

func TestFileList_Select_Clamps(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())

	list.Select(99)
	if list.SelectedIndex() != 2 {
		t.Errorf("Expected selection clamped to 2, got %d", list.SelectedIndex())
	}

	list.Select(-5)
	if list.SelectedIndex() != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", list.SelectedIndex())
	}
}

func TestFileList_SelectPath(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())

	if !list.SelectPath("/repo/src/parser.go") {
		t.Fatal("SelectPath should find existing path")
	}

	if list.SelectedIndex() != 1 {
		t.Errorf("Expected index 1, got %d", list.SelectedIndex())
	}

	if list.SelectPath("/repo/missing.go") {
		t.Error("SelectPath should return false for unknown path")
	}
}

func TestFileList_SelectNextPrev_Wraps(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())

	list.SelectNext()
	list.SelectNext()
	if list.SelectedIndex() != 2 {
		t.Errorf("Expected index 2, got %d", list.SelectedIndex())
	}

	list.SelectNext()
	if list.SelectedIndex() != 0 {
		t.Errorf("Expected wrap to 0, got %d", list.SelectedIndex())
	}

	list.SelectPrev()
	if list.SelectedIndex() != 2 {
		t.Errorf("Expected wrap to 2, got %d", list.SelectedIndex())
	}
}

func TestFileList_Update_Navigation(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())
	list.SetFocused(true)

	list, _ = list.Update(keyPressMsg("j"))
	if list.SelectedIndex() != 1 {
		t.Errorf("Expected index 1 after j, got %d", list.SelectedIndex())
	}

	list, _ = list.Update(keyPressMsg("down"))
	if list.SelectedIndex() != 2 {
		t.Errorf("Expected index 2 after down, got %d", list.SelectedIndex())
	}

	// At the end, j should not move past the last item
	list, _ = list.Update(keyPressMsg("j"))
	if list.SelectedIndex() != 2 {
		t.Errorf("Expected index to stay 2, got %d", list.SelectedIndex())
	}

	list, _ = list.Update(keyPressMsg("k"))
	if list.SelectedIndex() != 1 {
		t.Errorf("Expected index 1 after k, got %d", list.SelectedIndex())
	}

	list, _ = list.Update(keyPressMsg("g"))
	if list.SelectedIndex() != 0 {
		t.Errorf("Expected index 0 after g, got %d", list.SelectedIndex())
	}

	list, _ = list.Update(keyPressMsg("G"))
	if list.SelectedIndex() != 2 {
		t.Errorf("Expected index 2 after G, got %d", list.SelectedIndex())
	}
}

func TestFileList_Update_IgnoredWhenUnfocused(t *testing.T) {
	list := NewFileList()
	list.SetItems(testFileItems())
	list.SetFocused(false)

	list, _ = list.Update(keyPressMsg("j"))

	if list.SelectedIndex() != 0 {
		t.Errorf("Unfocused list should not move selection, got %d", list.SelectedIndex())
	}
}

func TestFileList_View_Empty(t *testing.T) {
	list := NewFileList()
	list.SetSize(40, 20)

	view := stripANSI(list.View())

	if !strings.Contains(view, "No files.") {
		t.Errorf("Empty list should render placeholder, got: %q", view)
	}
}

func TestFileList_View_ShowsFilesAndProgress(t *testing.T) {
	list := NewFileList()
	list.SetSize(44, 20)
	list.SetItems(testFileItems())

	view := stripANSI(list.View())

	if !strings.Contains(view, "src/main.go") {
		t.Errorf("View should contain file name, got: %q", view)
	}

	if !strings.Contains(view, "1/3") {
		t.Errorf("View should contain progress, got: %q", view)
	}

	if !strings.Contains(view, "> ") {
		t.Error("View should mark the selected item")
	}
}

func TestFileList_View_ShowsAppliedStatus(t *testing.T) {
	list := NewFileList()
	list.SetSize(44, 20)
	list.SetItems([]FileItem{
		{Path: "/repo/a.go", Display: "a.go", Resolved: 2, Total: 2, Applied: true},
		{Path: "/repo/b.go", Display: "b.go", Resolved: 2, Total: 2, Applied: true, Staged: true},
	})

	view := stripANSI(list.View())

	if !strings.Contains(view, "applied") {
		t.Errorf("View should show applied status, got: %q", view)
	}

	if !strings.Contains(view, "staged") {
		t.Errorf("View should show staged status, got: %q", view)
	}
}

func TestFileList_View_DiffModeRoles(t *testing.T) {
	list := NewFileList()
	list.SetSize(44, 20)
	list.SetItems([]FileItem{
		{Path: "/tmp/old.txt", Display: "old.txt", Role: "original"},
		{Path: "/tmp/new.txt", Display: "new.txt", Role: "revised"},
	})

	view := stripANSI(list.View())

	if !strings.Contains(view, "original") {
		t.Errorf("View should show original role, got: %q", view)
	}

	if !strings.Contains(view, "revised") {
		t.Errorf("View should show revised role, got: %q", view)
	}
}

func TestFileItem_StatusText(t *testing.T) {
	tests := []struct {
		name     string
		item     FileItem
		expected string
	}{
		{"progress", FileItem{Resolved: 1, Total: 4}, "1/4"},
		{"applied", FileItem{Resolved: 4, Total: 4, Applied: true}, "applied"},
		{"staged wins over applied", FileItem{Applied: true, Staged: true}, "staged"},
		{"role wins", FileItem{Role: "original", Applied: true}, "original"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.statusText(); got != tt.expected {
				t.Errorf("statusText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

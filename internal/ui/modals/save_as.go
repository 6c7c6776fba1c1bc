package modals

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// SaveAsState - State for the save-as modal
// =============================================================================

type SaveAsState struct {
	Input        textinput.Model
	OriginalPath string
}

func (*SaveAsState) modalState() {}

func (s *SaveAsState) Title() string { return "Save As" }

func (s *SaveAsState) Help() string {
	return "Enter: save  Esc: cancel"
}

func (s *SaveAsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	label := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Write resolved content to:")

	inputView := s.Input.View()

	originalNote := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1).
		Render("Original: " + TruncatePath(s.OriginalPath, ModalWidth-14))

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, label, inputView, originalNote, help)
}

func (s *SaveAsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// GetPath returns the entered target path, trimmed. Empty means the user
// cleared the input; callers treat that as a cancel.
func (s *SaveAsState) GetPath() string {
	return strings.TrimSpace(s.Input.Value())
}

// NewSaveAsState creates a SaveAsState seeded with the original path so a
// small edit (suffix, directory) is the common case.
func NewSaveAsState(originalPath string) *SaveAsState {
	ti := textinput.New()
	ti.Placeholder = "/path/to/output"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.SetValue(originalPath)
	ti.Focus()

	return &SaveAsState{
		Input:        ti,
		OriginalPath: originalPath,
	}
}

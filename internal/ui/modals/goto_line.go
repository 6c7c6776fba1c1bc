package modals

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// GotoLineState - State for the go-to-line modal
// =============================================================================

type GotoLineState struct {
	Input   textinput.Model
	MaxLine int // highest valid 1-based line in the current pane
}

func (*GotoLineState) modalState() {}

func (s *GotoLineState) Title() string { return "Go to Line" }

func (s *GotoLineState) Help() string {
	return "Enter: jump  Esc: cancel"
}

func (s *GotoLineState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	rangeHint := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(fmt.Sprintf("Line number (1-%d):", s.MaxLine))

	inputView := s.Input.View()

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, rangeHint, inputView, help)
}

func (s *GotoLineState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// GetLine parses the entered line number. ok is false when the input is not
// a number or falls outside 1..MaxLine.
func (s *GotoLineState) GetLine() (line int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s.Input.Value()))
	if err != nil || n < 1 || n > s.MaxLine {
		return 0, false
	}
	return n, true
}

// NewGotoLineState creates a GotoLineState for a pane with maxLine lines.
func NewGotoLineState(maxLine int) *GotoLineState {
	ti := textinput.New()
	ti.Placeholder = "42"
	ti.CharLimit = 7
	ti.SetWidth(ModalInputWidth)
	ti.Focus()

	return &GotoLineState{
		Input:   ti,
		MaxLine: maxLine,
	}
}

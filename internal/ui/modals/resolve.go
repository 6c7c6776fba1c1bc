package modals

import (
	"fmt"
	"image/color"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
)

// =============================================================================
// ResolveState - State for the resolve-choice modal
// =============================================================================

// ResolveAction identifies what the user picked in the resolve modal.
type ResolveAction int

const (
	ResolveKeepCurrent ResolveAction = iota
	ResolveKeepIncoming
	ResolveKeepBoth
	ResolveEditManually
)

// resolvePreviewLines caps how many lines of each side the modal shows.
const resolvePreviewLines = 4

type ResolveState struct {
	ConflictID    string
	Ordinal       int // 1-based position among the buffer's conflicts
	Total         int
	CurrentLabel  string
	IncomingLabel string
	CurrentLines  []string
	IncomingLines []string
	Options       []string
	SelectedIndex int
}

func (*ResolveState) modalState() {}

func (s *ResolveState) Title() string {
	return fmt.Sprintf("Resolve Conflict %d/%d", s.Ordinal, s.Total)
}

func (s *ResolveState) Help() string {
	return "up/down to select, Enter to confirm, Esc to cancel"
}

func (s *ResolveState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	// Content width for preview truncation (modal width minus padding)
	contentWidth := ModalWidth - 4

	currentSection := renderSidePreview(
		fmt.Sprintf("<<<<<<< %s", s.CurrentLabel), s.CurrentLines, ColorConflictCurrent, contentWidth)
	incomingSection := renderSidePreview(
		fmt.Sprintf(">>>>>>> %s", s.IncomingLabel), s.IncomingLines, ColorConflictIncoming, contentWidth)

	var optionList string
	for i, opt := range s.Options {
		style := ListItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, currentSection, incomingSection, optionList, help)
}

// renderSidePreview renders one side of the conflict: a muted marker-style
// header followed by up to resolvePreviewLines content lines in the side's
// color, with a muted count line when content is cut off.
func renderSidePreview(header string, lines []string, sideColor color.Color, contentWidth int) string {
	headerLine := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(header)

	lineStyle := lipgloss.NewStyle().Foreground(sideColor)

	shown := lines
	if len(shown) > resolvePreviewLines {
		shown = shown[:resolvePreviewLines]
	}

	parts := []string{headerLine}
	for _, line := range shown {
		parts = append(parts, lineStyle.Render("  "+TruncateString(line, contentWidth)))
	}
	if len(lines) > resolvePreviewLines {
		more := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(fmt.Sprintf("  (%d more lines)", len(lines)-resolvePreviewLines))
		parts = append(parts, more)
	}
	if len(lines) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("  (empty)")
		parts = append(parts, empty)
	}

	return lipgloss.NewStyle().MarginBottom(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *ResolveState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// SelectedAction returns the action for the currently selected option.
func (s *ResolveState) SelectedAction() ResolveAction {
	switch s.SelectedIndex {
	case 0:
		return ResolveKeepCurrent
	case 1:
		return ResolveKeepIncoming
	case 2:
		return ResolveKeepBoth
	default:
		return ResolveEditManually
	}
}

// NewResolveState creates a new ResolveState for one conflict.
func NewResolveState(conflictID string, ordinal, total int, currentLabel, incomingLabel string, currentLines, incomingLines []string) *ResolveState {
	return &ResolveState{
		ConflictID:    conflictID,
		Ordinal:       ordinal,
		Total:         total,
		CurrentLabel:  currentLabel,
		IncomingLabel: incomingLabel,
		CurrentLines:  currentLines,
		IncomingLines: incomingLines,
		Options: []string{
			fmt.Sprintf("Keep current (%s)", currentLabel),
			fmt.Sprintf("Keep incoming (%s)", incomingLabel),
			"Keep both (current first)",
			"Edit manually",
		},
		SelectedIndex: 0,
	}
}

// =============================================================================
// ManualEditState - State for the manual resolution editor modal
// =============================================================================

type ManualEditState struct {
	ConflictID    string
	CurrentLabel  string
	IncomingLabel string
	Textarea      textarea.Model
}

func (*ManualEditState) modalState() {}

func (s *ManualEditState) Title() string { return "Edit Resolution" }

func (s *ManualEditState) Help() string {
	return "Ctrl+s: apply  Esc: cancel"
}

func (s *ManualEditState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	infoStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		MarginBottom(1)
	info := infoStyle.Render(fmt.Sprintf("%s vs %s", s.CurrentLabel, s.IncomingLabel))

	textareaView := s.Textarea.View()

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, info, textareaView, help)
}

func (s *ManualEditState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Textarea, cmd = s.Textarea.Update(msg)
	return s, cmd
}

// GetContent returns the replacement text for the conflict block.
func (s *ManualEditState) GetContent() string {
	return s.Textarea.Value()
}

// NewManualEditState creates a ManualEditState seeded with initial text,
// typically both sides of the conflict joined so the user edits rather than
// retypes.
func NewManualEditState(conflictID, currentLabel, incomingLabel, seed string) *ManualEditState {
	ta := textarea.New()
	ta.Placeholder = "Replacement text for the conflict block..."
	ta.CharLimit = 0
	ta.SetHeight(10)
	ta.SetWidth(ModalInputWidth)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetValue(seed)
	ta.Focus()

	// Apply transparent background styles
	ApplyTextareaStyles(&ta)

	return &ManualEditState{
		ConflictID:    conflictID,
		CurrentLabel:  currentLabel,
		IncomingLabel: incomingLabel,
		Textarea:      ta,
	}
}

// =============================================================================
// ConfirmApplyState - State for the apply/save confirmation modal
// =============================================================================

type ConfirmApplyState struct {
	FilePath      string
	ResolvedCount int
	Total         int

	confirmed bool
	form      *huh.Form
}

func (*ConfirmApplyState) modalState() {}

func (s *ConfirmApplyState) Title() string { return "Apply Resolutions?" }

func (s *ConfirmApplyState) Help() string {
	return "left/right to choose, Enter to confirm, Esc to cancel"
}

func (s *ConfirmApplyState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	fileLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.FilePath)

	body := fmt.Sprintf("%d of %d conflicts resolved.", s.ResolvedCount, s.Total)
	if s.ResolvedCount < s.Total {
		body += " Unresolved conflicts keep their markers in the written file."
	}
	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render(wordwrap.String(body, ModalWidth-4))

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, fileLabel, message, s.form.View(), help)
}

func (s *ConfirmApplyState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether the Apply button is selected.
func (s *ConfirmApplyState) Confirmed() bool {
	return s.confirmed
}

// NewConfirmApplyState creates a ConfirmApplyState for writing filePath.
func NewConfirmApplyState(filePath string, resolvedCount, total int) *ConfirmApplyState {
	s := &ConfirmApplyState{
		FilePath:      filePath,
		ResolvedCount: resolvedCount,
		Total:         total,
		confirmed:     true,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Affirmative("Apply").
				Negative("Cancel").
				Value(&s.confirmed),
		),
	).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 4)

	initHuhForm(s.form)
	return s
}

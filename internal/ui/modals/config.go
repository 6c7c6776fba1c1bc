package modals

import (
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
)

// =============================================================================
// WelcomeState - State for the first-time user welcome modal
// =============================================================================

type WelcomeState struct{}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to Rift!" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Render(wordwrap.String(
			"Rift compares two files side by side and walks you through merge conflicts one hunk at a time, without leaving the terminal.", 50))

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  n/p Jump between changes\n  Enter Resolve the selected conflict\n  Tab Switch between file list and diff")

	issuesLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Need help or found a bug?")

	issuesLink := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Render("  github.com/zhubert/rift/issues")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		gettingStarted,
		shortcuts,
		issuesLabel,
		issuesLink,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState() *WelcomeState {
	return &WelcomeState{}
}

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	// Bound form values
	selectedTheme        string
	OriginalTheme        string // To detect if theme changed
	selectedViewMode     string
	contextLines         string
	tabWidth             string
	NotificationsEnabled bool

	// Originals for falling back when a numeric field does not parse
	originalContextLines int
	originalTabWidth     int

	// MultiSelect bindings
	generalOptions []string

	form *huh.Form

	// Size tracking
	availableWidth int
}

const optionNotifications = "notifications"

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

// syncFromMultiSelect updates boolean fields from the MultiSelect bindings.
func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetViewMode returns the selected diff view mode key.
func (s *SettingsState) GetViewMode() string {
	return s.selectedViewMode
}

// GetContextLines returns the context lines value. Input that does not parse
// as an int in 0-100 falls back to the value the modal opened with.
func (s *SettingsState) GetContextLines() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.contextLines))
	if err != nil || n < 0 || n > 100 {
		return s.originalContextLines
	}
	return n
}

// GetTabWidth returns the tab width value. Input that does not parse as an
// int in 1-16 falls back to the value the modal opened with.
func (s *SettingsState) GetTabWidth() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.tabWidth))
	if err != nil || n < 1 || n > 16 {
		return s.originalTabWidth
	}
	return n
}

// GetNotificationsEnabled returns whether notifications are enabled
func (s *SettingsState) GetNotificationsEnabled() bool {
	return s.NotificationsEnabled
}

// NewSettingsState creates a new SettingsState with the current settings values.
func NewSettingsState(themes []string, themeDisplayNames []string, currentTheme string,
	viewModes []string, viewModeDisplayNames []string, currentViewMode string,
	contextLines, tabWidth int, notificationsEnabled bool) *SettingsState {

	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		selectedViewMode:     currentViewMode,
		contextLines:         strconv.Itoa(contextLines),
		tabWidth:             strconv.Itoa(tabWidth),
		NotificationsEnabled: notificationsEnabled,
		originalContextLines: contextLines,
		originalTabWidth:     tabWidth,
		availableWidth:       ModalWidthWide,
	}

	// Build theme options
	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	// Build view mode options
	viewModeOptions := make([]huh.Option[string], len(viewModes))
	for i := range viewModes {
		viewModeOptions[i] = huh.NewOption(viewModeDisplayNames[i], viewModes[i])
	}

	// Build general options MultiSelect
	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
	}
	// Initialize the enabledOptions slice to match
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}

	appearanceGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewSelect[string]().
			Title("Diff view").
			Options(viewModeOptions...).
			Value(&s.selectedViewMode),
	)

	diffGroup := huh.NewGroup(
		huh.NewInput().
			Title("Context lines").
			Description("Unchanged lines kept around each change (0-100)").
			CharLimit(3).
			Value(&s.contextLines),
		huh.NewInput().
			Title("Tab width").
			Description("Columns per tab when rendering (1-16)").
			CharLimit(2).
			Value(&s.tabWidth),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)

	s.form = huh.NewForm(appearanceGroup, diffGroup).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}

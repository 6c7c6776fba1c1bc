// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI, allowing users
// to customize the visual appearance of Rift.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for key hints, info)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Warning string // Unresolved conflicts, cautions
	Error   string // Error messages
	Info    string // Information, prompts
	Success string // Resolved conflicts, applied files

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Diff colors
	DiffAdded    string // Added lines
	DiffRemoved  string // Removed lines
	DiffModified string // Modified line indicators
	DiffAddedBg  string // Emphasis background for changed spans in added lines
	DiffRemovedBg string // Emphasis background for changed spans in removed lines
	DiffHeader   string // File headers
	DiffHunk     string // Hunk markers, collapsed-context markers

	// Conflict colors
	ConflictCurrent  string // Lines from the current branch
	ConflictIncoming string // Lines from the incoming branch
	ConflictBase     string // Lines from the merge base

	// Text selection colors
	TextSelectionBg string // Selection background
	TextSelectionFg string // Selection foreground
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDefault    ThemeName = "default"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeCatppuccin ThemeName = "catppuccin"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDefault

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDefault: {
		Name:             "Default",
		Primary:          "#7C3AED",
		Secondary:        "#06B6D4",
		Bg:               "#1F2937",
		Text:             "#F9FAFB",
		TextMuted:        "#9CA3AF",
		TextInverse:      "#1F2937",
		Warning:          "#F59E0B",
		Error:            "#EF4444",
		Info:             "#06B6D4",
		Success:          "#10B981",
		Border:           "#374151",
		DiffAdded:        "#4ADE80",
		DiffRemoved:      "#F87171",
		DiffModified:     "#FBBF24",
		DiffAddedBg:      "#064E3B",
		DiffRemovedBg:    "#7F1D1D",
		DiffHeader:       "#60A5FA",
		DiffHunk:         "#C084FC",
		ConflictCurrent:  "#60A5FA",
		ConflictIncoming: "#34D399",
		ConflictBase:     "#9CA3AF",
		TextSelectionBg:  "#4C1D95",
		TextSelectionFg:  "#F9FAFB",
	},
	ThemeNord: {
		Name:             "Nord",
		Primary:          "#88C0D0",
		Secondary:        "#81A1C1",
		Bg:               "#2E3440",
		Text:             "#ECEFF4",
		TextMuted:        "#D8DEE9",
		TextInverse:      "#2E3440",
		Warning:          "#EBCB8B",
		Error:            "#BF616A",
		Info:             "#81A1C1",
		Success:          "#A3BE8C",
		Border:           "#4C566A",
		DiffAdded:        "#A3BE8C",
		DiffRemoved:      "#BF616A",
		DiffModified:     "#EBCB8B",
		DiffAddedBg:      "#2E4034",
		DiffRemovedBg:    "#4C2E33",
		DiffHeader:       "#81A1C1",
		DiffHunk:         "#B48EAD",
		ConflictCurrent:  "#81A1C1",
		ConflictIncoming: "#A3BE8C",
		ConflictBase:     "#D8DEE9",
		TextSelectionBg:  "#434C5E",
		TextSelectionFg:  "#ECEFF4",
	},
	ThemeDracula: {
		Name:             "Dracula",
		Primary:          "#BD93F9",
		Secondary:        "#8BE9FD",
		Bg:               "#282A36",
		Text:             "#F8F8F2",
		TextMuted:        "#6272A4",
		TextInverse:      "#282A36",
		Warning:          "#FFB86C",
		Error:            "#FF5555",
		Info:             "#8BE9FD",
		Success:          "#50FA7B",
		Border:           "#44475A",
		DiffAdded:        "#50FA7B",
		DiffRemoved:      "#FF5555",
		DiffModified:     "#F1FA8C",
		DiffAddedBg:      "#1D4428",
		DiffRemovedBg:    "#55262B",
		DiffHeader:       "#8BE9FD",
		DiffHunk:         "#BD93F9",
		ConflictCurrent:  "#8BE9FD",
		ConflictIncoming: "#50FA7B",
		ConflictBase:     "#6272A4",
		TextSelectionBg:  "#44475A",
		TextSelectionFg:  "#F8F8F2",
	},
	ThemeGruvbox: {
		Name:             "Gruvbox Dark",
		Primary:          "#FE8019",
		Secondary:        "#83A598",
		Bg:               "#282828",
		Text:             "#EBDBB2",
		TextMuted:        "#A89984",
		TextInverse:      "#282828",
		Warning:          "#FE8019",
		Error:            "#FB4934",
		Info:             "#83A598",
		Success:          "#B8BB26",
		Border:           "#504945",
		DiffAdded:        "#B8BB26",
		DiffRemoved:      "#FB4934",
		DiffModified:     "#FABD2F",
		DiffAddedBg:      "#32361A",
		DiffRemovedBg:    "#442E2D",
		DiffHeader:       "#83A598",
		DiffHunk:         "#D3869B",
		ConflictCurrent:  "#83A598",
		ConflictIncoming: "#B8BB26",
		ConflictBase:     "#A89984",
		TextSelectionBg:  "#504945",
		TextSelectionFg:  "#EBDBB2",
	},
	ThemeTokyoNight: {
		Name:             "Tokyo Night",
		Primary:          "#7AA2F7",
		Secondary:        "#BB9AF7",
		Bg:               "#1A1B26",
		Text:             "#C0CAF5",
		TextMuted:        "#565F89",
		TextInverse:      "#1A1B26",
		Warning:          "#E0AF68",
		Error:            "#F7768E",
		Info:             "#7DCFFF",
		Success:          "#9ECE6A",
		Border:           "#3B4261",
		DiffAdded:        "#9ECE6A",
		DiffRemoved:      "#F7768E",
		DiffModified:     "#E0AF68",
		DiffAddedBg:      "#20303B",
		DiffRemovedBg:    "#37222C",
		DiffHeader:       "#7AA2F7",
		DiffHunk:         "#BB9AF7",
		ConflictCurrent:  "#7AA2F7",
		ConflictIncoming: "#9ECE6A",
		ConflictBase:     "#565F89",
		TextSelectionBg:  "#283457",
		TextSelectionFg:  "#C0CAF5",
	},
	ThemeCatppuccin: {
		Name:             "Catppuccin Mocha",
		Primary:          "#CBA6F7",
		Secondary:        "#89DCEB",
		Bg:               "#1E1E2E",
		Text:             "#CDD6F4",
		TextMuted:        "#6C7086",
		TextInverse:      "#1E1E2E",
		Warning:          "#FAB387",
		Error:            "#F38BA8",
		Info:             "#89DCEB",
		Success:          "#A6E3A1",
		Border:           "#313244",
		DiffAdded:        "#A6E3A1",
		DiffRemoved:      "#F38BA8",
		DiffModified:     "#F9E2AF",
		DiffAddedBg:      "#28392F",
		DiffRemovedBg:    "#443245",
		DiffHeader:       "#89DCEB",
		DiffHunk:         "#CBA6F7",
		ConflictCurrent:  "#89DCEB",
		ConflictIncoming: "#A6E3A1",
		ConflictBase:     "#6C7086",
		TextSelectionBg:  "#45475A",
		TextSelectionFg:  "#CDD6F4",
	},
	ThemeLight: {
		Name:             "Light",
		Primary:          "#6366F1",
		Secondary:        "#0891B2",
		Bg:               "#FFFFFF",
		BgSelected:       "#E0E7FF",
		Text:             "#1F2937",
		TextMuted:        "#6B7280",
		TextInverse:      "#FFFFFF",
		Warning:          "#D97706",
		Error:            "#DC2626",
		Info:             "#0891B2",
		Success:          "#16A34A",
		Border:           "#D1D5DB",
		BorderFocus:      "#6366F1",
		DiffAdded:        "#16A34A",
		DiffRemoved:      "#DC2626",
		DiffModified:     "#D97706",
		DiffAddedBg:      "#DCFCE7",
		DiffRemovedBg:    "#FEE2E2",
		DiffHeader:       "#2563EB",
		DiffHunk:         "#7C3AED",
		ConflictCurrent:  "#2563EB",
		ConflictIncoming: "#16A34A",
		ConflictBase:     "#6B7280",
		TextSelectionBg:  "#C7D2FE",
		TextSelectionFg:  "#1F2937",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDefault,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to Default if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	// Update color variables
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorConflictCurrent = lipgloss.Color(t.ConflictCurrent)
	ColorConflictIncoming = lipgloss.Color(t.ConflictIncoming)
	ColorConflictBase = lipgloss.Color(t.ConflictBase)

	// Update header styles
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	// Update footer styles
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterFlashStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess)

	// Update panel styles
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	// Update file list styles
	FileListItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	FileListSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	FileListStatusStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	FileListResolvedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	// Update modal styles
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	// Update status styles
	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	// Update diff styles
	DiffAddedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffAdded))

	DiffRemovedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffRemoved))

	DiffModifiedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffModified))

	DiffAddedEmphStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffAdded)).
		Background(lipgloss.Color(t.DiffAddedBg))

	DiffRemovedEmphStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffRemoved)).
		Background(lipgloss.Color(t.DiffRemovedBg))

	DiffContextStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	DiffLineNumberStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	DiffHeaderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffHeader)).
		Bold(true)

	DiffHunkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DiffHunk))

	DiffCollapsedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	// Update conflict styles
	ConflictCurrentStyle = lipgloss.NewStyle().
		Foreground(ColorConflictCurrent)

	ConflictIncomingStyle = lipgloss.NewStyle().
		Foreground(ColorConflictIncoming)

	ConflictBaseStyle = lipgloss.NewStyle().
		Foreground(ColorConflictBase)

	ConflictLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextMuted)

	ConflictResolvedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	ConflictSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text))

	// Update text selection styles
	TextSelectionStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.TextSelectionBg)).
		Foreground(lipgloss.Color(t.TextSelectionFg))

	TextSelectionFlashStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.Success)).
		Foreground(lipgloss.Color(t.TextInverse))
}

package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/rift/internal/ui/modals"
)

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary          = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary        = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted            = lipgloss.Color("#6B7280") // Gray
	ColorBorder           = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus      = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg               = lipgloss.Color("#1F2937") // Dark background
	ColorText             = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted        = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse      = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorWarning          = lipgloss.Color("#F59E0B") // Amber for unresolved conflicts
	ColorInfo             = lipgloss.Color("#06B6D4") // Cyan for info/prompts
	ColorError            = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess          = lipgloss.Color("#10B981") // Green for resolved/applied
	ColorConflictCurrent  = lipgloss.Color("#60A5FA") // Blue for current-branch lines
	ColorConflictIncoming = lipgloss.Color("#34D399") // Green for incoming-branch lines
	ColorConflictBase     = lipgloss.Color("#9CA3AF") // Gray for merge-base lines
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// FooterFlashStyle renders transient status messages in the footer
	FooterFlashStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)
)

// Panel styles
var (
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
)

// File list styles
var (
	FileListItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	// FileListSelectedStyle uses theme's BgSelected color - initialized properly in regenerateStyles()
	FileListSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Text)).
				Bold(true).
				Padding(0, 1)

	FileListStatusStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	FileListResolvedStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// Modal styles
var (
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
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Diff coloring styles (updated by regenerateStyles)
var (
	DiffAddedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffAdded))

	DiffRemovedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffRemoved))

	DiffModifiedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffModified))

	// Emphasis styles highlight the changed spans within modified lines
	DiffAddedEmphStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffAdded)).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffAddedBg))

	DiffRemovedEmphStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffRemoved)).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffRemovedBg))

	DiffContextStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	DiffLineNumberStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	DiffHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffHeader)).
			Bold(true)

	DiffHunkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].DiffHunk))

	// DiffCollapsedStyle renders the marker line where unchanged context is folded
	DiffCollapsedStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)
)

// Conflict rendering styles (updated by regenerateStyles)
var (
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
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Text))
)

// Text selection style (updated by regenerateStyles)
var (
	TextSelectionStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].TextSelectionBg)).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextSelectionFg))

	// TextSelectionFlashStyle is used briefly when text is copied to indicate success
	// (updated by regenerateStyles)
	TextSelectionFlashStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].Success)).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextInverse))
)

// RefreshModalStyles pushes the current styles and colors into the modals
// package. SetTheme calls this after regenerating styles; it must run once
// before any modal is rendered.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, FileListItemStyle, FileListSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse,
		ColorConflictCurrent, ColorConflictIncoming, ColorWarning, ColorSuccess,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}

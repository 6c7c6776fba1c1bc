// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// FileListWidthRatio is the denominator for file list width (1/4 of total width)
	FileListWidthRatio = 4

	// MinTerminalWidth is the smallest width layout calculations will use
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height layout calculations will use
	MinTerminalHeight = 10

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// SeparatorHeight is the height of separators between sections
	SeparatorHeight = 1

	// GutterSeparatorWidth is the width of the separator column between
	// line numbers and diff content
	GutterSeparatorWidth = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

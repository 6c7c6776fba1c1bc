// Package ui provides the user interface components for the Rift TUI.
//
// # Overview
//
// The ui package implements the visual components of Rift using the Bubble Tea
// framework and Lipgloss styling library. It follows the Model-Update-View pattern
// established by Bubble Tea.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────┬───────────────────────────────────────┤
//	│             │                                       │
//	│  File List  │      Diff / Conflict Panel            │
//	│  (1/4 width)│      (3/4 width)                      │
//	│             │                                       │
//	├─────────────┴───────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and optionally the current session
// summary. Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts. The displayed shortcuts
// change based on focus state and whether the selected file still has
// unresolved conflicts.
//
// FileList: Lists the conflicted files of the session with their resolution
// progress. Supports selection with keyboard navigation (j/k or arrow keys).
//
// DiffView: Scrollable diff panel with inline and side-by-side modes,
// context folding, intra-line emphasis, and n/p change navigation.
//
// ConflictView: Scrollable three-way conflict panel showing marker sections
// in role colors, resolved hunks in place, and syntax-highlighted context.
//
// TextSelection: Mouse-driven text selection shared by both panels, with
// word/paragraph multi-click, clipboard copy, and a copy flash.
//
// Modal dialogs live in the modals subpackage; see its documentation for the
// resolve, edit, settings, help, and confirm states.
//
// # Focus System
//
// The application has two focus states:
//   - FocusFiles: File list is focused, keyboard controls file navigation
//   - FocusDiff: Content panel is focused, keyboard controls scrolling,
//     change navigation, and conflict resolution
//
// Tab key toggles between focus states.
//
// # Constants
//
// Layout constants are defined in constants.go:
//   - HeaderHeight, FooterHeight: Fixed at 1 line each
//   - BorderSize: 2 (1 on each side)
//   - FileListWidthRatio: 4 (file list gets 1/4 of width)
//   - DefaultWrapWidth: 80 columns when the viewport width is unknown
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss and regenerate when the
// theme changes. The default palette uses:
//   - ColorPrimary (#7C3AED): Purple, used for highlights and focused elements
//   - ColorSecondary (#06B6D4): Cyan, used for key hints
//   - ColorBg (#1F2937): Dark background
//   - ColorText (#F9FAFB): Light text
//   - ColorTextMuted (#9CA3AF): Muted text for secondary content
package ui

package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType categorizes transient footer messages
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 3 * time.Second

// FlashMessage is a transient message shown in place of the keybindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (m *FlashMessage) IsExpired() bool {
	return time.Since(m.CreatedAt) > m.Duration
}

// FlashTickMsg is sent periodically so expired flash messages get cleared
type FlashTickMsg time.Time

// FlashTick returns a command that emits a FlashTickMsg after one second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width           int
	bindings        []KeyBinding
	hasFiles        bool // Whether a session with files is loaded
	fileListFocused bool // Whether the file list has focus
	resolveMode     bool // Whether resolving conflicts (vs plain diff view)
	conflictFocused bool // Whether an unresolved conflict is selected
	allResolved     bool // Whether every conflict in the current file is resolved
	selecting       bool // Whether a mouse text selection is active
	flashMessage    *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "d", Desc: "view mode"},
			{Key: "r", Desc: "reload"},
			{Key: ",", Desc: "settings"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasFiles, fileListFocused, resolveMode, conflictFocused, allResolved, selecting bool) {
	f.hasFiles = hasFiles
	f.fileListFocused = fileListFocused
	f.resolveMode = resolveMode
	f.conflictFocused = conflictFocused
	f.allResolved = allResolved
	f.selecting = selecting
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a transient message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a transient message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the current flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is currently set
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears the flash message if it has expired.
// Returns true when a message was cleared.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// flashIcon returns the icon and style for a flash type
func flashIcon(flashType FlashType) (string, lipgloss.Style) {
	switch flashType {
	case FlashError:
		return "✕", lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	case FlashWarning:
		return "⚠", lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	case FlashSuccess:
		return "✓", FooterFlashStyle
	default:
		return "ℹ", lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	}
}

// View renders the footer
func (f *Footer) View() string {
	// Flash messages replace the keybindings until they expire
	if f.flashMessage != nil {
		icon, style := flashIcon(f.flashMessage.Type)
		content := style.Render(icon + " " + f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	var parts []string
	render := func(bindings []KeyBinding) {
		for _, b := range bindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	switch {
	case f.selecting:
		// Show selection shortcuts while a mouse selection is active
		render([]KeyBinding{
			{Key: "y", Desc: "copy"},
			{Key: "esc", Desc: "clear selection"},
		})

	case f.resolveMode && !f.fileListFocused && f.conflictFocused:
		// Diff pane focused with an unresolved conflict selected
		render([]KeyBinding{
			{Key: "c", Desc: "current"},
			{Key: "i", Desc: "incoming"},
			{Key: "b", Desc: "both"},
			{Key: "B", Desc: "both reversed"},
			{Key: "e", Desc: "edit"},
			{Key: "n/p", Desc: "conflict"},
			{Key: "tab", Desc: "files"},
		})

	case f.resolveMode && !f.fileListFocused && f.allResolved:
		// Everything in the current file is resolved
		render([]KeyBinding{
			{Key: "a", Desc: "apply"},
			{Key: "n/p", Desc: "conflict"},
			{Key: "j/k", Desc: "scroll"},
			{Key: "tab", Desc: "files"},
		})

	case !f.fileListFocused && f.hasFiles:
		// Diff pane focused for reading
		render([]KeyBinding{
			{Key: "j/k", Desc: "scroll"},
			{Key: "ctrl+d/u", Desc: "half page"},
			{Key: "g/G", Desc: "top/bottom"},
			{Key: "n/p", Desc: "change"},
			{Key: "tab", Desc: "files"},
		})

	default:
		for _, b := range f.bindings {
			// Skip tab when nothing is loaded (no pane to switch to)
			if b.Key == "tab" && !f.hasFiles {
				continue
			}
			// Skip navigation bindings when nothing is loaded
			if (b.Key == "j/k" || b.Key == "enter") && !f.hasFiles {
				continue
			}
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

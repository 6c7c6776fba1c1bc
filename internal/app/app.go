package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/rift/internal/config"
	"github.com/zhubert/rift/internal/document"
	"github.com/zhubert/rift/internal/session"
	"github.com/zhubert/rift/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusFiles Focus = iota
	FocusDiff
)

// Mode represents what the right panel shows.
// In diff mode the app compares a file pair read-only; in resolve mode it
// walks the conflicts of a session and records resolutions.
type Mode int

const (
	ModeDiff Mode = iota
	ModeResolve
)

// String returns a human-readable name for the mode
func (m Mode) String() string {
	switch m {
	case ModeDiff:
		return "Diff"
	case ModeResolve:
		return "Resolve"
	default:
		return "Unknown"
	}
}

// documentCacheTTL bounds how long cached documents and scripts stay valid.
// Reload actions invalidate explicitly; the TTL only catches stale leftovers.
const documentCacheTTL = 5 * time.Minute

// applyTimeout bounds the on-disk write plus git staging of one apply action.
const applyTimeout = 30 * time.Second

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	version   string // App version (injected at build time)
	header    *ui.Header
	footer    *ui.Footer
	files     *ui.FileList
	diffView  *ui.DiffView
	conflicts *ui.ConflictView
	modal     *ui.Modal

	width  int
	height int
	focus  Focus
	mode   Mode

	// Resolve mode state
	sess *session.Session
	// pendingApplyAll marks that the open confirm modal applies the whole
	// session rather than the selected file
	pendingApplyAll bool
	// notifiedAllResolved keeps the all-resolved notification to one per run
	notifiedAllResolved bool

	// Diff mode state
	originalPath string
	revisedPath  string

	// cache holds loaded documents and computed scripts for the diff pane.
	// Owned by the model; there is exactly one per program.
	cache *document.Cache

	// windowFocused gates desktop notifications: none are sent while the
	// terminal window has focus
	windowFocused bool
}

// StartupModalMsg is sent on app start to trigger the welcome modal and the
// initial content load
type StartupModalMsg struct{}

// ApplyResultMsg is sent when writing one resolved file completes
type ApplyResultMsg struct {
	Path string
	Err  error
}

// ApplyAllResultMsg is sent when writing every resolved file completes
type ApplyAllResultMsg struct {
	Err error
}

// New creates an app model in resolve mode over an existing session
func New(cfg *config.Config, version string, sess *session.Session) *Model {
	m := newModel(cfg, version)
	m.mode = ModeResolve
	m.sess = sess
	m.syncFileList()
	if len(sess.Files) > 0 {
		m.openFile(sess.Files[0].Path)
	}
	return m
}

// NewDiff creates an app model in diff mode comparing originalPath against
// revisedPath. The pair is loaded when the program starts.
func NewDiff(cfg *config.Config, version string, originalPath, revisedPath string) *Model {
	m := newModel(cfg, version)
	m.mode = ModeDiff
	m.originalPath = originalPath
	m.revisedPath = revisedPath
	m.files.SetItems([]ui.FileItem{
		{Path: originalPath, Display: originalPath, Role: "original"},
		{Path: revisedPath, Display: revisedPath, Role: "revised"},
	})
	return m
}

func newModel(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:        cfg,
		version:       version,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		files:         ui.NewFileList(),
		diffView:      ui.NewDiffView(),
		conflicts:     ui.NewConflictView(),
		modal:         ui.NewModal(),
		focus:         FocusFiles,
		cache:         document.NewCache(documentCacheTTL),
		windowFocused: true,
	}

	m.diffView.SetViewMode(cfg.GetViewMode())
	m.diffView.SetContextLines(cfg.GetContextLines())
	m.diffView.SetTabWidth(cfg.GetTabWidth())
	m.conflicts.SetContextLines(cfg.GetContextLines())
	m.conflicts.SetTabWidth(cfg.GetTabWidth())
	m.files.SetFocused(true)

	return m
}

// Session returns the resolve session, or nil in diff mode.
func (m *Model) Session() *session.Session {
	return m.sess
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	// Trigger startup modal check and the initial diff load
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	rifterrors "github.com/zhubert/rift/internal/errors"
)

// View modes for the diff pane.
const (
	ViewModeInline     = "inline"
	ViewModeSideBySide = "side-by-side"
)

// Defaults applied on first load and to fields missing from an older config
// file.
const (
	DefaultTheme        = "default"
	DefaultContextLines = 3
	DefaultTabWidth     = 4

	maxRecentPairs = 10
)

// Config holds the application configuration
type Config struct {
	Theme                string       `json:"theme"`
	ViewMode             string       `json:"view_mode"`
	ContextLines         int          `json:"context_lines"`
	TabWidth             int          `json:"tab_width"`
	NotificationsEnabled bool         `json:"notifications_enabled"`
	RecentPairs          []RecentPair `json:"recent_pairs,omitempty"`
	WelcomeShown         bool         `json:"welcome_shown,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// RecentPair records a compared file pair for the recents list.
type RecentPair struct {
	Original string    `json:"original"`
	Revised  string    `json:"revised"`
	OpenedAt time.Time `json:"opened_at"`
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rift"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, rifterrors.ConfigLoadFailed("", err)
	}

	cfg := &Config{
		Theme:                DefaultTheme,
		ViewMode:             ViewModeSideBySide,
		ContextLines:         DefaultContextLines,
		TabWidth:             DefaultTabWidth,
		NotificationsEnabled: true,
		RecentPairs:          []RecentPair{},
		filePath:             path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, rifterrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, rifterrors.ConfigLoadFailed(path, err)
	}

	// Ensure empty fields are initialized after unmarshaling. This must
	// happen before Validate() since Validate() only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills fields an older or hand-edited config file may
// have left empty.
func (c *Config) ensureInitialized() {
	if c.RecentPairs == nil {
		c.RecentPairs = []RecentPair{}
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.ViewMode == "" {
		c.ViewMode = ViewModeSideBySide
	}
	if c.TabWidth == 0 {
		c.TabWidth = DefaultTabWidth
	}
}

// Validate checks the config for invalid values
func (c *Config) Validate() error {
	if c.ViewMode != ViewModeInline && c.ViewMode != ViewModeSideBySide {
		return rifterrors.ConfigInvalid(fmt.Sprintf("invalid view mode %q", c.ViewMode))
	}
	if c.ContextLines < 0 || c.ContextLines > 100 {
		return rifterrors.ConfigInvalid(fmt.Sprintf("context lines %d out of range 0-100", c.ContextLines))
	}
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return rifterrors.ConfigInvalid(fmt.Sprintf("tab width %d out of range 1-16", c.TabWidth))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return rifterrors.ConfigSaveFailed("", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return rifterrors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return rifterrors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return rifterrors.ConfigSaveFailed(path, err)
	}

	return nil
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetViewMode returns the configured diff view mode
func (c *Config) GetViewMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ViewMode
}

// SetViewMode sets the diff view mode
func (c *Config) SetViewMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ViewMode = mode
}

// GetContextLines returns how many unchanged lines to keep around changes
func (c *Config) GetContextLines() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ContextLines
}

// SetContextLines sets how many unchanged lines to keep around changes
func (c *Config) SetContextLines(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ContextLines = n
}

// GetTabWidth returns the tab expansion width for rendering
func (c *Config) GetTabWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.TabWidth
}

// SetTabWidth sets the tab expansion width for rendering
func (c *Config) SetTabWidth(w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TabWidth = w
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled toggles desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// IsWelcomeShown returns whether the welcome modal has been shown
func (c *Config) IsWelcomeShown() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// SetWelcomeShown marks the welcome modal as shown
func (c *Config) SetWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// GetRecentPairs returns a copy of the recent file pairs, most recent first
func (c *Config) GetRecentPairs() []RecentPair {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pairs := make([]RecentPair, len(c.RecentPairs))
	copy(pairs, c.RecentPairs)
	return pairs
}

// AddRecentPair records a compared pair at the front of the recents list,
// dropping any earlier entry for the same pair and capping the list length.
func (c *Config) AddRecentPair(original, revised string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := make([]RecentPair, 0, len(c.RecentPairs)+1)
	filtered = append(filtered, RecentPair{
		Original: original,
		Revised:  revised,
		OpenedAt: time.Now(),
	})
	for _, p := range c.RecentPairs {
		if p.Original == original && p.Revised == revised {
			continue
		}
		filtered = append(filtered, p)
	}
	if len(filtered) > maxRecentPairs {
		filtered = filtered[:maxRecentPairs]
	}
	c.RecentPairs = filtered
}

// ClearRecentPairs empties the recents list
func (c *Config) ClearRecentPairs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RecentPairs = []RecentPair{}
}

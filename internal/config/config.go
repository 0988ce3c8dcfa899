package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/quicknotepad/internal/logger"
)

// ErrConfigNotLoaded is the panic value of Get when LoadConfig never ran.
var ErrConfigNotLoaded = errors.New("config: not loaded")

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`

	// Plugins holds one table per plugin, e.g. [plugins.autosave].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// PluginValue returns key from the named plugin's table.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	table, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth         int    `toml:"tab_width"`
	ScrollOff        int    `toml:"scroll_off"`
	SystemClipboard  bool   `toml:"system_clipboard"`
	MaxHistory       int    `toml:"max_history"`
	GroupThresholdMs int    `toml:"group_threshold_ms"`
	MaxTabs          int    `toml:"max_tabs"`
	StatusBarHeight  int    `toml:"status_bar_height"`
	MarginWidth      int    `toml:"margin_width"`
	HeaderHeight     int    `toml:"header_height"`
	SessionFile      string `toml:"session_file"`
	Theme            string `toml:"theme"`
}

// GroupThreshold returns the undo grouping window as a duration.
func (e EditorConfig) GroupThreshold() time.Duration {
	return time.Duration(e.GroupThresholdMs) * time.Millisecond
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:         DefaultTabWidth,
			ScrollOff:        DefaultScrollOff,
			SystemClipboard:  SystemClipboard,
			MaxHistory:       DefaultMaxHistory,
			GroupThresholdMs: DefaultGroupThresholdMs,
			MaxTabs:          DefaultMaxTabs,
			StatusBarHeight:  StatusBarHeight,
			MarginWidth:      DefaultMarginWidth,
			HeaderHeight:     DefaultHeaderHeight,
			SessionFile:      DefaultSessionPath(),
			Theme:            DefaultThemeName,
		},
	}
}

// ConfigDir is $XDG_CONFIG_HOME/quicknotepad (or the OS equivalent).
// Empty when the user config dir cannot be determined.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName)
}

// DefaultConfigPath is where LoadConfig looks when no -config flag is given.
func DefaultConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, DefaultConfigFileName)
}

// ThemesDir holds user TOML themes.
func ThemesDir() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "themes")
}

// DefaultSessionPath is the default location of the tab session file.
func DefaultSessionPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, DefaultSessionFileName)
}

// loadFromFile decodes filePath over cfg. A missing file leaves cfg untouched.
// Keys absent from the file keep whatever cfg already holds.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	logger.Debugf("Loaded configuration from: %s", filePath)
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.GroupThresholdMs < 0 {
		c.Editor.GroupThresholdMs = defaults.Editor.GroupThresholdMs
	}
	if c.Editor.MaxTabs <= 0 {
		c.Editor.MaxTabs = defaults.Editor.MaxTabs
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Editor.MarginWidth < 0 {
		c.Editor.MarginWidth = defaults.Editor.MarginWidth
	}
	if c.Editor.HeaderHeight < 0 {
		c.Editor.HeaderHeight = defaults.Editor.HeaderHeight
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a config from defaults, the TOML file at configFilePath (or the
// default location when empty) and flag overrides, then validates it.
// A parse error is returned together with a usable config.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultConfigPath()
	}
	var err error
	if path != "" {
		err = loadFromFile(path, cfg)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and stores the result for Get.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic(ErrConfigNotLoaded)
	}
	return loadedConfig
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/bethropolis/jsrefactor/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config             `toml:"logger"`   // [logger] table
	Refactor RefactorConfig            `toml:"refactor"` // [refactor] table
	Plugins  map[string]map[string]any `toml:"plugins"`  // [plugins.<name>] tables
}

// RefactorConfig holds the refactoring engine settings.
type RefactorConfig struct {
	// Templates is a template registry file (.toml, .yaml, .yml or .json).
	// Empty means the embedded defaults.
	Templates string `toml:"templates"`
	// Locale is the BCP 47 tag inline messages are shown in.
	Locale string `toml:"locale"`
	// Reindent prefixes generated lines with the indentation of the target line.
	Reindent   bool `toml:"reindent"`
	MaxHistory int  `toml:"max_history"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Refactor: RefactorConfig{
			Locale:     DefaultLocale,
			Reindent:   DefaultReindent,
			MaxHistory: DefaultMaxHistory,
		},
		Plugins: make(map[string]map[string]any),
	}
}

// DefaultPath returns ~/.config/jsrefactor/config.toml, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an error.
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
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	logger.Debugf("Loaded configuration from: %s", filePath)
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Refactor.Locale == "" {
		c.Refactor.Locale = defaults.Refactor.Locale
	} else if _, err := language.Parse(c.Refactor.Locale); err != nil {
		logger.Warnf("Config: invalid locale %q, using %q", c.Refactor.Locale, defaults.Refactor.Locale)
		c.Refactor.Locale = defaults.Refactor.Locale
	}
	if c.Refactor.MaxHistory <= 0 {
		c.Refactor.MaxHistory = defaults.Refactor.MaxHistory
	}
	if c.Plugins == nil {
		c.Plugins = defaults.Plugins
	}
}

// Load merges defaults, the config file and set flags, then validates.
// An empty configFilePath means DefaultPath. The returned config is usable
// even when the file could not be read.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var loadErr error
	if effectivePath != "" {
		if err := loadFromFile(effectivePath, cfg); err != nil {
			loadErr = err
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, loadErr
}

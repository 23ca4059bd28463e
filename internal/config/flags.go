// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsrefactor/internal/logger"
)

// Flags holds values parsed from command-line flags. Only flags the user
// actually set override the config file.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	EnableTags     []string
	DisableTags    []string
	EnablePkgs     []string
	DisablePkgs    []string
	Templates      string
	Locale         string
	Reindent       bool

	changed func(name string) bool
}

// Define registers the flags as persistent flags of cmd.
func (f *Flags) Define(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Tags to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Tags to disable - Overrides config file")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Packages to enable - Overrides config file")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Packages to disable - Overrides config file")
	fs.StringVar(&f.Templates, "templates", "", "Template registry file (.toml, .yaml, .json) - Overrides config file")
	fs.StringVar(&f.Locale, "locale", "", "Locale for inline messages, e.g. en or fr - Overrides config file")
	fs.BoolVar(&f.Reindent, "reindent", DefaultReindent, "Indent generated code to the target line - Overrides config file")
	f.changed = fs.Changed
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.changed == nil {
		return
	}
	set := func(name string) bool {
		if !f.changed(name) {
			return false
		}
		logger.DebugTagf("config", "Applying flag override: %s", name)
		return true
	}

	if set("loglevel") && f.LogLevel != "" {
		cfg.Logger.LogLevel = f.LogLevel
	}
	if set("logfile") {
		cfg.Logger.LogFilePath = f.LogFilePath // "-" is valid
	}
	if set("log-tags") {
		cfg.Logger.EnabledTags = f.EnableTags
	}
	if set("log-disable-tags") {
		cfg.Logger.DisabledTags = f.DisableTags
	}
	if set("log-packages") {
		cfg.Logger.EnabledPackages = f.EnablePkgs
	}
	if set("log-disable-packages") {
		cfg.Logger.DisabledPackages = f.DisablePkgs
	}
	if set("templates") {
		cfg.Refactor.Templates = f.Templates
	}
	if set("locale") && f.Locale != "" {
		cfg.Refactor.Locale = f.Locale
	}
	if set("reindent") {
		cfg.Refactor.Reindent = f.Reindent
	}
}

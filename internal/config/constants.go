package config

// Base application details
const AppName = "jsrefactor"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "jsrefactor.log"

// Refactoring defaults
const DefaultLocale = "en"
const DefaultReindent = true
const DefaultMaxHistory = 100

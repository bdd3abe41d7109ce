package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTag is the tag literal used when none is configured.
const DefaultTag = "raw"

// JournalConfig represents run journal configuration
type JournalConfig struct {
	// Enabled records every run and its actions in the journal database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the journal database (empty = $FSEQ_HOME/journal.db)
	DBPath string `yaml:"db_path"`
}

// Config represents fseq configuration options
type Config struct {
	// Tag is the literal that marks a file as tagged
	Tag string `yaml:"tag"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where per-run log files are written (empty = no file log)
	LogDir string `yaml:"log_dir"`

	// DryRun prints the plan without renaming anything
	DryRun bool `yaml:"dry_run"`

	// Verbose prints every action as it is applied
	Verbose bool `yaml:"verbose"`

	// LockDirs takes an advisory lock per directory so two fseq runs cannot
	// renumber the same directory at once
	LockDirs bool `yaml:"lock_dirs"`

	// Journal contains run journal configuration
	Journal JournalConfig `yaml:"journal"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Tag:      DefaultTag,
		LogLevel: "info",
		LogDir:   "",
		DryRun:   false,
		Verbose:  false,
		LockDirs: true,
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  "",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Booleans that default to true can only be told apart from "absent"
	// through the raw map.
	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Tag != "" {
		cfg.Tag = yamlCfg.Tag
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.DryRun {
		cfg.DryRun = true
	}
	if yamlCfg.Verbose {
		cfg.Verbose = true
	}
	if _, exists := rawMap["lock_dirs"]; exists {
		cfg.LockDirs = yamlCfg.LockDirs
	}

	if journalSection, exists := rawMap["journal"]; exists && journalSection != nil {
		journalMap, _ := journalSection.(map[string]interface{})
		if _, exists := journalMap["enabled"]; exists {
			cfg.Journal.Enabled = yamlCfg.Journal.Enabled
		}
		if _, exists := journalMap["db_path"]; exists {
			cfg.Journal.DBPath = yamlCfg.Journal.DBPath
		}
	}

	return cfg, nil
}

// LoadConfigFromHome loads configuration from config.yaml in the fseq home directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromHome(home string) (*Config, error) {
	return LoadConfig(filepath.Join(home, "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(tag *string, logLevel *string, logDir *string, dryRun *bool, verbose *bool) {
	if tag != nil {
		c.Tag = *tag
	}
	if logLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if dryRun != nil {
		c.DryRun = *dryRun
	}
	if verbose != nil {
		c.Verbose = *verbose
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	if strings.ContainsAny(c.Tag, "./"+string(filepath.Separator)) {
		return fmt.Errorf("invalid tag %q: must not contain '.' or path separators", c.Tag)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// JournalPath returns the journal database path, defaulting into home.
func (c *Config) JournalPath(home string) string {
	if c.Journal.DBPath != "" {
		return c.Journal.DBPath
	}
	return filepath.Join(home, "journal.db")
}

// Package config loads ptt settings from a TOML file, an optional .env
// file and PTT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/xolan/ptt/internal/app"
	"github.com/xolan/ptt/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvFile is the optional dotenv file read from the working directory
	EnvFile = ".env"
)

// Duplicate entry policies
const (
	DuplicateAllow  = "allow"
	DuplicateReject = "reject"
	DuplicateMerge  = "merge"
)

// Environment variable names
const (
	EnvRecordsFile      = app.EnvPrefix + "RECORDS_FILE"
	EnvProjectsFile     = app.EnvPrefix + "PROJECTS_FILE"
	EnvDuplicateEntries = app.EnvPrefix + "DUPLICATE_ENTRIES"
	EnvLogLevel         = app.EnvPrefix + "LOG_LEVEL"
	EnvBackups          = app.EnvPrefix + "BACKUPS"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the application configuration
type Config struct {
	// RecordsFile is the time record file, relative to the working directory
	RecordsFile string `toml:"records_file"`
	// ProjectsFile is the project file, relative to the working directory
	ProjectsFile string `toml:"projects_file"`
	// DuplicateEntries decides what happens when a project is booked twice on one day
	DuplicateEntries string `toml:"duplicate_entries"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// Backups enables .bak.N copies before destructive operations
	Backups bool `toml:"backups"`
}

// DefaultConfig returns a Config with the default settings:
// - records_file: "data.json"
// - projects_file: "projects.json"
// - duplicate_entries: "allow"
// - log_level: "warn"
// - backups: true
func DefaultConfig() Config {
	return Config{
		RecordsFile:      "data.json",
		ProjectsFile:     "projects.json",
		DuplicateEntries: DuplicateAllow,
		LogLevel:         "warn",
		Backups:          true,
	}
}

// Normalize lowercases and trims the enumerated fields and trims file names.
func (c *Config) Normalize() {
	c.RecordsFile = strings.TrimSpace(c.RecordsFile)
	c.ProjectsFile = strings.TrimSpace(c.ProjectsFile)
	c.DuplicateEntries = strings.ToLower(strings.TrimSpace(c.DuplicateEntries))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
}

// Validate checks the values of a normalized config.
func (c *Config) Validate() error {
	if c.RecordsFile == "" {
		return errors.New("invalid records_file: must not be empty")
	}
	if c.ProjectsFile == "" {
		return errors.New("invalid projects_file: must not be empty")
	}
	if c.RecordsFile == c.ProjectsFile {
		return fmt.Errorf("invalid projects_file: %q is also the records_file", c.ProjectsFile)
	}

	switch c.DuplicateEntries {
	case DuplicateAllow, DuplicateReject, DuplicateMerge:
	default:
		return fmt.Errorf("invalid duplicate_entries %q: must be %q, %q or %q",
			c.DuplicateEntries, DuplicateAllow, DuplicateReject, DuplicateMerge)
	}

	for _, level := range validLogLevels {
		if c.LogLevel == level {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
}

// Load reads the TOML file at path over the defaults, then normalizes and
// validates the result. A missing file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns DefaultConfig when no file
// exists at path. Any other stat failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. Variables already set are not overwritten and a missing file
// is ignored.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from PTT_* variables found through lookup, then
// normalizes and validates the result.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRecordsFile); ok {
		c.RecordsFile = v
	}
	if v, ok := lookup(EnvProjectsFile); ok {
		c.ProjectsFile = v
	}
	if v, ok := lookup(EnvDuplicateEntries); ok {
		c.DuplicateEntries = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvBackups); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvBackups, v, err)
		}
		c.Backups = b
	}

	c.Normalize()
	return c.Validate()
}

// Resolve loads the effective configuration: the config file (or defaults),
// then .env in the working directory, then the process environment.
func Resolve() (Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return Config{}, fmt.Errorf("failed to locate config file: %w", err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, err
	}

	envPath, err := osutil.ResolveInWorkDir(EnvFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to locate %s: %w", EnvFile, err)
	}
	if err := LoadEnvFile(envPath); err != nil {
		return Config{}, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, app.Name)

	// Create config directory if it doesn't exist
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// GenerateSampleConfig returns a commented config file listing every key
// with its default.
func GenerateSampleConfig() string {
	return `# ptt configuration file
#
# Every setting is optional; the commented values are the defaults.
# Environment variables (PTT_RECORDS_FILE, PTT_PROJECTS_FILE,
# PTT_DUPLICATE_ENTRIES, PTT_LOG_LEVEL, PTT_BACKUPS) and a .env file in the
# working directory override this file.

# Time record file, resolved against the working directory
# records_file = "data.json"

# Project file, resolved against the working directory
# projects_file = "projects.json"

# What to do when a project is booked twice on the same day:
#   "allow"  - keep both entries
#   "reject" - refuse the second entry
#   "merge"  - add the hours to the existing entry and join the activities
# duplicate_entries = "allow"

# Diagnostics on stderr: "debug", "info", "warn" or "error"
# log_level = "warn"

# Keep up to 3 .bak.N copies of each file before deletes and overwrites
# backups = true
`
}

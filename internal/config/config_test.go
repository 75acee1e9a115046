package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/ptt/internal/app"
	"github.com/xolan/ptt/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	// Always write the file, even if content is empty
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

// lookupFrom returns an environment lookup backed by vars
func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RecordsFile != "data.json" {
		t.Errorf("DefaultConfig().RecordsFile = %q, expected %q", cfg.RecordsFile, "data.json")
	}
	if cfg.ProjectsFile != "projects.json" {
		t.Errorf("DefaultConfig().ProjectsFile = %q, expected %q", cfg.ProjectsFile, "projects.json")
	}
	if cfg.DuplicateEntries != DuplicateAllow {
		t.Errorf("DefaultConfig().DuplicateEntries = %q, expected %q", cfg.DuplicateEntries, DuplicateAllow)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("DefaultConfig().LogLevel = %q, expected %q", cfg.LogLevel, "warn")
	}
	if !cfg.Backups {
		t.Error("DefaultConfig().Backups = false, expected true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expected      Config
	}{
		{
			name: "all fields set",
			configContent: `records_file = "ledger/data.json"
projects_file = "ledger/projects.json"
duplicate_entries = "merge"
log_level = "debug"
backups = false`,
			expected: Config{
				RecordsFile:      "ledger/data.json",
				ProjectsFile:     "ledger/projects.json",
				DuplicateEntries: DuplicateMerge,
				LogLevel:         "debug",
				Backups:          false,
			},
		},
		{
			name:          "only policy set",
			configContent: `duplicate_entries = "reject"`,
			expected: Config{
				RecordsFile:      "data.json",
				ProjectsFile:     "projects.json",
				DuplicateEntries: DuplicateReject,
				LogLevel:         "warn",
				Backups:          true,
			},
		},
		{
			name: "mixed case values normalized",
			configContent: `duplicate_entries = " Merge "
log_level = "WARNING"`,
			expected: Config{
				RecordsFile:      "data.json",
				ProjectsFile:     "projects.json",
				DuplicateEntries: DuplicateMerge,
				LogLevel:         "warn",
				Backups:          true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			cfg, err := Load(tmpFile)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("Load() = %+v, expected %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, "")

	// Empty file merges with defaults
	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistentFile := filepath.Join(tmpDir, "does_not_exist.toml")

	_, err := Load(nonExistentFile)
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed TOML", `records_file = "data.json`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `duplicate_entries = merge`},
		{"wrong type", `backups = "yes"`},
		{"unclosed brackets", "[section\nrecords_file = \"data.json\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error message should mention parsing failure, got: %v", err)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name           string
		configContent  string
		errorSubstring string
	}{
		{"unknown policy", `duplicate_entries = "ignore"`, "invalid duplicate_entries"},
		{"empty policy", `duplicate_entries = ""`, "invalid duplicate_entries"},
		{"unknown level", `log_level = "verbose"`, "invalid log_level"},
		{"blank records file", `records_file = "  "`, "invalid records_file"},
		{"blank projects file", `projects_file = ""`, "invalid projects_file"},
		{"same file twice", `projects_file = "data.json"`, "invalid projects_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error")
			}
			if !strings.Contains(err.Error(), tt.errorSubstring) {
				t.Errorf("error = %v, expected substring %q", err, tt.errorSubstring)
			}
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrDefault(nonExistentFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for non-existent file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}
	if _, err := os.Stat(nonExistentFile); !os.IsNotExist(err) {
		t.Error("LoadOrDefault() must not create the config file")
	}
}

func TestLoadOrDefault_ExistingValidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `log_level = "error"`)

	cfg, err := LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, expected %q", cfg.LogLevel, "error")
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, `duplicate_entries = "sometimes"`)

	if _, err := LoadOrDefault(tmpFile); err == nil {
		t.Error("LoadOrDefault() should return error for invalid config file")
	}
}

func TestLoadOrDefault_StatError(t *testing.T) {
	// A regular file used as a directory makes stat fail with ENOTDIR
	parent := createTempConfigFile(t, "")
	configPath := filepath.Join(parent, "config.toml")

	if _, err := LoadOrDefault(configPath); err == nil {
		t.Error("LoadOrDefault() should return error when stat fails for a reason other than absence")
	}
}

func TestValidate_NormalizesFields(t *testing.T) {
	tests := []struct {
		name           string
		policy         string
		level          string
		expectedPolicy string
		expectedLevel  string
	}{
		{"lowercase unchanged", "allow", "info", "allow", "info"},
		{"uppercase", "REJECT", "ERROR", "reject", "error"},
		{"mixed case", "MeRgE", "Debug", "merge", "debug"},
		{"with spaces", "  allow ", " warn ", "allow", "warn"},
		{"warning alias", "allow", "Warning", "allow", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DuplicateEntries = tt.policy
			cfg.LogLevel = tt.level

			cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Normalize()+Validate() returned unexpected error: %v", err)
			}
			if cfg.DuplicateEntries != tt.expectedPolicy {
				t.Errorf("DuplicateEntries = %q, expected %q", cfg.DuplicateEntries, tt.expectedPolicy)
			}
			if cfg.LogLevel != tt.expectedLevel {
				t.Errorf("LogLevel = %q, expected %q", cfg.LogLevel, tt.expectedLevel)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		EnvRecordsFile:      "/srv/ptt/data.json",
		EnvProjectsFile:     "/srv/ptt/projects.json",
		EnvDuplicateEntries: "REJECT",
		EnvLogLevel:         "info",
		EnvBackups:          "false",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() returned unexpected error: %v", err)
	}

	expected := Config{
		RecordsFile:      "/srv/ptt/data.json",
		ProjectsFile:     "/srv/ptt/projects.json",
		DuplicateEntries: DuplicateReject,
		LogLevel:         "info",
		Backups:          false,
	}
	if cfg != expected {
		t.Errorf("ApplyEnv() = %+v, expected %+v", cfg, expected)
	}
}

func TestApplyEnv_NoVariablesKeepsConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DuplicateEntries = DuplicateMerge

	if err := cfg.ApplyEnv(lookupFrom(nil)); err != nil {
		t.Fatalf("ApplyEnv() returned unexpected error: %v", err)
	}
	if cfg.DuplicateEntries != DuplicateMerge {
		t.Errorf("DuplicateEntries = %q, expected %q", cfg.DuplicateEntries, DuplicateMerge)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad backups flag", map[string]string{EnvBackups: "sometimes"}},
		{"bad policy", map[string]string{EnvDuplicateEntries: "never"}},
		{"bad level", map[string]string{EnvLogLevel: "trace"}},
		{"empty records file", map[string]string{EnvRecordsFile: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.ApplyEnv(lookupFrom(tt.vars)); err == nil {
				t.Error("ApplyEnv() expected error, got nil")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("LoadEnvFile() returned unexpected error: %v", err)
		}
	})

	t.Run("sets unset variables only", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "error")
		// t.Setenv registers a restore; unset afterwards so godotenv can set it
		t.Setenv(EnvDuplicateEntries, "")
		if err := os.Unsetenv(EnvDuplicateEntries); err != nil {
			t.Fatalf("Unsetenv failed: %v", err)
		}

		path := filepath.Join(t.TempDir(), ".env")
		content := EnvLogLevel + "=debug\n" + EnvDuplicateEntries + "=merge\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile() returned unexpected error: %v", err)
		}
		if got := os.Getenv(EnvLogLevel); got != "error" {
			t.Errorf("%s = %q, expected existing value %q", EnvLogLevel, got, "error")
		}
		if got := os.Getenv(EnvDuplicateEntries); got != "merge" {
			t.Errorf("%s = %q, expected %q", EnvDuplicateEntries, got, "merge")
		}
	})
}

func TestResolve(t *testing.T) {
	defer osutil.ResetProvider()

	configDir := t.TempDir()
	workDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return configDir, nil },
		mkdirAllFn:      os.MkdirAll,
		getwdFn:         func() (string, error) { return workDir, nil },
	})

	configPath := filepath.Join(configDir, app.Name, ConfigFile)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(`duplicate_entries = "reject"`+"\n"+`log_level = "info"`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvRecordsFile, "")
	if err := os.Unsetenv(EnvRecordsFile); err != nil {
		t.Fatalf("Unsetenv failed: %v", err)
	}
	t.Setenv(EnvProjectsFile, "")
	t.Setenv(EnvDuplicateEntries, "")
	t.Setenv(EnvBackups, "")
	for _, key := range []string{EnvProjectsFile, EnvDuplicateEntries, EnvBackups} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("Unsetenv failed: %v", err)
		}
	}

	envContent := EnvRecordsFile + "=hours.json\n"
	if err := os.WriteFile(filepath.Join(workDir, EnvFile), []byte(envContent), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() returned unexpected error: %v", err)
	}

	expected := Config{
		RecordsFile:      "hours.json",    // from .env
		ProjectsFile:     "projects.json", // default
		DuplicateEntries: DuplicateReject, // from config file
		LogLevel:         "error",         // environment beats config file
		Backups:          true,
	}
	if cfg != expected {
		t.Errorf("Resolve() = %+v, expected %+v", cfg, expected)
	}
}

func TestResolve_ConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrPermission },
	})

	if _, err := Resolve(); err == nil {
		t.Error("Resolve() should return error when the config directory is unavailable")
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned unexpected error: %v", err)
	}

	if !filepath.IsAbs(configPath) {
		t.Errorf("GetConfigPath() should return absolute path, got %q", configPath)
	}
	if filepath.Base(configPath) != ConfigFile {
		t.Errorf("GetConfigPath() should end with %q, got %q", ConfigFile, filepath.Base(configPath))
	}
	parentDir := filepath.Dir(configPath)
	if filepath.Base(parentDir) != app.Name {
		t.Errorf("GetConfigPath() parent directory should be %q, got %q", app.Name, parentDir)
	}
}

func TestConstants(t *testing.T) {
	if app.Name != "ptt" {
		t.Errorf("app.Name = %q, expected %q", app.Name, "ptt")
	}
	if ConfigFile != "config.toml" {
		t.Errorf("ConfigFile = %q, expected %q", ConfigFile, "config.toml")
	}
	if EnvLogLevel != "PTT_LOG_LEVEL" {
		t.Errorf("EnvLogLevel = %q, expected %q", EnvLogLevel, "PTT_LOG_LEVEL")
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	content := GenerateSampleConfig()

	expectedStrings := []string{
		"# ptt configuration file",
		"# records_file = \"data.json\"",
		"# projects_file = \"projects.json\"",
		"# duplicate_entries = \"allow\"",
		"# log_level = \"warn\"",
		"# backups = true",
		"reject",
		"merge",
		EnvDuplicateEntries,
	}
	for _, expected := range expectedStrings {
		if !strings.Contains(content, expected) {
			t.Errorf("GenerateSampleConfig() missing expected content: %q", expected)
		}
	}

	// The sample must be a valid config that yields the defaults
	tmpFile := createTempConfigFile(t, content)
	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load(sample) returned unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(sample) = %+v, expected defaults", cfg)
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()

	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return "", os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()

	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) {
			return tmpDir, nil
		},
		mkdirAllFn: func(path string, perm os.FileMode) error {
			return os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
	getwdFn         func() (string, error)
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}

func (m *mockPathProvider) Getwd() (string, error) {
	if m.getwdFn != nil {
		return m.getwdFn()
	}
	return "", nil
}

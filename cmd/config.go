package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or create the configuration file",
	Long: `Display the effective configuration settings for ptt.

Settings come from the config file, then a .env file in the working
directory, then PTT_* environment variables; later sources win.

By default, ptt works without any configuration file. All settings have defaults:
  - records_file: data.json
  - projects_file: projects.json
  - duplicate_entries: allow
  - log_level: warn
  - backups: true

Examples:
  ptt config           Show all current settings
  ptt config --init    Write a commented config file with the defaults

Configuration file location:
  ~/.config/ptt/config.toml          Linux
  %APPDATA%\ptt\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if create, _ := cmd.Flags().GetBool("init"); create {
			initConfig()
			return
		}
		showConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "Write a sample config file if none exists")
}

// showConfig displays the current effective configuration
func showConfig() {
	configPath, err := config.GetConfigPath()
	if err != nil {
		exitWithError("Failed to determine config file location", err, "Check that your home directory is accessible")
		return
	}

	fileExists := false
	if _, err := os.Stat(configPath); err == nil {
		fileExists = true
	}

	cfg := deps.Config

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for ptt")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:       %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:            File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:            No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Records file:      %s\n", cfg.RecordsFile)
	_, _ = fmt.Fprintf(deps.Stdout, "Projects file:     %s\n", cfg.ProjectsFile)
	_, _ = fmt.Fprintf(deps.Stdout, "Duplicate entries: %s\n", cfg.DuplicateEntries)
	_, _ = fmt.Fprintf(deps.Stdout, "Log level:         %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(deps.Stdout, "Backups:           %t\n", cfg.Backups)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'ptt config --init' to create a config file with every option.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file unless one exists
func initConfig() {
	configPath, err := config.GetConfigPath()
	if err != nil {
		exitWithError("Failed to determine config file location", err, "Check that your home directory is accessible")
		return
	}

	if _, err := os.Stat(configPath); err == nil {
		exitWithError(fmt.Sprintf("Config file already exists: %s", configPath), nil, "Edit it directly or remove it first")
		return
	}

	if err := os.WriteFile(configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		exitWithError("Failed to write config file", err, fmt.Sprintf("Check that the directory is writable: %s", configPath))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", configPath)
}

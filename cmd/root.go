package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
	"github.com/xolan/ptt/internal/ledger"
	"github.com/xolan/ptt/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "ptt",
	Short: "A personal project time tracker",
	Long: `ptt records workdays and books their hours against projects.

Usage:
  ptt                                           Show today's record
  ptt day <date> --start 08:00 --end 17:00 --pause 0.5
                                                Record a workday
  ptt log <date> <code> <hours> <activity...>   Book hours against a project
  ptt edit <date> <n> --hours 2 --activity text Edit project entry n of a day
  ptt show [date]                               Show one day or every day
  ptt delete <date>                             Delete a day (with confirmation)
  ptt project add|list|delete                   Manage projects
  ptt report [year [month]]                     Summarize hours per project
  ptt validate                                  Check data file health
  ptt restore [n]                               Restore from backup (default: most recent)

Dates: YYYY-MM-DD, DD/MM/YYYY, today, yesterday
Hours: 2, 1.5, 0,75, 2h, 30m, 1h30m`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showToday()
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check data file health",
	Long: `Inspect the time record and project files without loading or repairing
them, and report the first content problem of each file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"ptt version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// showToday prints today's record, if there is one.
func showToday() {
	l, ok := openLedger()
	if !ok {
		return
	}

	today := deps.Today()
	rec, found := l.Record(today)
	if !found {
		_, _ = fmt.Fprintf(deps.Stdout, "No record for today (%s)\n", today)
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: ptt day today --start HH:MM --end HH:MM --pause H")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(rec))
}

// validateStorage checks both data files and reports their status
func validateStorage() {
	cfg := deps.Config
	paths, err := ledger.ResolvePaths(cfg.RecordsFile, cfg.ProjectsFile)
	if err != nil {
		exitWithError("Failed to determine data file locations", err, "Check that the working directory is accessible")
		return
	}

	records, projects, err := ledger.Check(paths)
	if err != nil {
		exitWithError("Failed to validate data files", err, "")
		return
	}

	unhealthy := 0
	for _, h := range []struct {
		label  string
		health storage.FileHealth
	}{
		{"Records", records},
		{"Projects", projects},
	} {
		printHealth(h.label, h.health)
		if !h.health.Healthy() {
			unhealthy++
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if unhealthy == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Data files are healthy")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ %d data %s could not be read\n", unhealthy, cli.Pluralize("file", unhealthy))
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'ptt restore' to recover the records file from a backup, or 'ptt restore --projects' for the projects file")
	deps.Exit(1)
}

func printHealth(label string, h storage.FileHealth) {
	_, _ = fmt.Fprintf(deps.Stdout, "%s file: %s\n", label, h.Path)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	switch {
	case !h.Exists:
		_, _ = fmt.Fprintln(deps.Stdout, "Status:   not created yet")
	case h.Healthy():
		_, _ = fmt.Fprintf(deps.Stdout, "Size:     %d bytes\n", h.Size)
		_, _ = fmt.Fprintf(deps.Stdout, "Elements: %d\n", h.Elements)
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "Size:     %d bytes\n", h.Size)
		_, _ = fmt.Fprintln(deps.Stdout, "Problem:")
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatParseProblem(h.Problem))
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
	"github.com/xolan/ptt/internal/timeutil"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log <date> <code> <hours> [activity...]",
	Short: "Book hours against a project",
	Long: `Book hours of a recorded day against a project.

The hours must fit into the day's remaining hours. A second entry for the
same project on the same day follows the duplicate_entries setting:
allow, reject or merge.

Examples:
  ptt log today INEK 3.5 I ran a test
  ptt log 2025-11-09 B 1h30m review`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		logActivity(args)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}

// logActivity books a project entry and prints the day's remaining hours
func logActivity(args []string) {
	date, ok := parseDateArg(args[0])
	if !ok {
		return
	}
	code := strings.TrimSpace(args[1])
	hours, err := timeutil.ParseHours(args[2])
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid hours '%s'", args[2]), err, "Use a number like 1.5 or a duration like 1h30m")
		return
	}
	activity := strings.TrimSpace(strings.Join(args[3:], " "))

	l, ok := openLedger()
	if !ok {
		return
	}

	entry, err := l.RecordActivity(date, code, hours, activity)
	if err != nil {
		reportLedgerError("Failed to book the hours", err)
		return
	}

	rec, _ := l.Record(date)
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s %s on %s\n", entry.Project.Code, cli.FormatHours(entry.Hours), date)
	_, _ = fmt.Fprintf(deps.Stdout, "%s: %s\n", date, cli.FormatBudget(rec))
}

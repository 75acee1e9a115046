package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
	"github.com/xolan/ptt/internal/report"
	"github.com/xolan/ptt/internal/timeutil"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [year [month]]",
	Short: "Summarize booked hours per project",
	Long: `Summarize the recorded hours.

Usage:
  ptt report                  List every recorded year with its totals
  ptt report 2025             List the months of 2025 and the hours per project
  ptt report 2025 11          Show November 2025 with the hours per project

Months may be given as a number (1-12) or a name (nov, November).`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runReport(args)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(args []string) {
	var year int
	var month time.Month
	if len(args) > 0 {
		y, err := timeutil.ParseYear(args[0])
		if err != nil {
			exitWithError(fmt.Sprintf("Invalid year '%s'", args[0]), err, "")
			return
		}
		year = y
	}
	if len(args) > 1 {
		m, err := timeutil.ParseMonth(args[1])
		if err != nil {
			exitWithError(fmt.Sprintf("Invalid month '%s'", args[1]), err, "Use 1-12 or a month name, e.g. nov")
			return
		}
		month = m
	}

	l, ok := openLedger()
	if !ok {
		return
	}

	switch len(args) {
	case 0:
		reportYears(l)
	case 1:
		reportYear(l, year)
	default:
		reportMonth(l, year, month)
	}
}

// reportYears lists every recorded year, newest first
func reportYears(src report.Source) {
	years := report.DistinctYears(src)
	if len(years) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No records yet")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Recorded years:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, year := range years {
		_, _ = fmt.Fprintf(deps.Stdout, "%d  %s\n", year, formatSummaryLine(report.YearSummary(src, year)))
	}
}

// reportYear lists the months of year and the hours per project
func reportYear(src report.Source, year int) {
	months := report.DistinctMonthsInYear(src, year)
	if len(months) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No records in %d\n", year)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Report for %d:\n", year)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, month := range months {
		_, _ = fmt.Fprintf(deps.Stdout, "%-10s %s\n", month, formatSummaryLine(report.MonthSummary(src, year, month)))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	printBreakdown(report.Breakdown(report.TotalsForYear(src, year)))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", formatSummaryLine(report.YearSummary(src, year)))
}

// reportMonth shows one month with the hours per project
func reportMonth(src report.Source, year int, month time.Month) {
	summary := report.MonthSummary(src, year, month)
	if summary.Days == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No records in %s %d\n", month, year)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Report for %s %d:\n", month, year)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	printBreakdown(summary.Projects)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", formatSummaryLine(summary))
	_, _ = fmt.Fprintf(deps.Stdout, "Average: %s net per day\n", cli.FormatHours(summary.AverageNetHoursPerDay()))
}

func printBreakdown(breakdown []report.ProjectBreakdown) {
	if len(breakdown) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "  no project entries")
		return
	}
	for _, line := range cli.FormatBreakdown(breakdown) {
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
}

// formatSummaryLine formats the totals of a summary on one line.
// Example: "net 19h  booked 12.5h  remaining 6.5h  (2 days)"
func formatSummaryLine(s report.Summary) string {
	return fmt.Sprintf("net %s  booked %s  remaining %s  (%d %s)",
		cli.FormatHours(s.NetHours), cli.FormatHours(s.AllocatedHours),
		cli.FormatHours(s.RemainingHours), s.Days, cli.Pluralize("day", s.Days))
}

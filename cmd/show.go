package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show recorded days",
	Long: `Show one day with its project entries, or every recorded day with the
most recent first.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showRecords(args)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showRecords(args []string) {
	l, ok := openLedger()
	if !ok {
		return
	}

	if len(args) == 1 {
		date, ok := parseDateArg(args[0])
		if !ok {
			return
		}
		rec, found := l.Record(date)
		if !found {
			_, _ = fmt.Fprintf(deps.Stdout, "No record for %s\n", date)
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(rec))
		return
	}

	dates := l.Dates()
	if len(dates) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No records yet")
		return
	}
	for i, date := range dates {
		if i > 0 {
			_, _ = fmt.Fprintln(deps.Stdout)
		}
		rec, _ := l.Record(date)
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(rec))
	}
}

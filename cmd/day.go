package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
	"github.com/xolan/ptt/internal/ledger"
	"github.com/xolan/ptt/internal/record"
	"github.com/xolan/ptt/internal/timeutil"
)

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Record a workday",
	Long: `Record the start, end and pause of a workday.

If the day is already recorded you are asked before it is replaced; the
replacement discards the project entries of the old record.

Examples:
  ptt day today --start 08:00 --end 17:00 --pause 0.5
  ptt day 2025-11-09 --start 08:00 --end 18:00 --pause 30m --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		recordDay(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)

	dayCmd.Flags().String("start", "", "Start of the workday (HH:MM)")
	dayCmd.Flags().String("end", "", "End of the workday (HH:MM)")
	dayCmd.Flags().String("pause", "0", "Length of the break in hours (quarter hours)")
	dayCmd.Flags().BoolP("yes", "y", false, "Replace an existing record without asking")
}

// recordDay parses the workday flags and stores the record
func recordDay(cmd *cobra.Command, args []string) {
	date, ok := parseDateArg(args[0])
	if !ok {
		return
	}

	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	pauseStr, _ := cmd.Flags().GetString("pause")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	if startStr == "" || endStr == "" {
		exitWithError("Both --start and --end are required", nil, "Example: ptt day today --start 08:00 --end 17:00 --pause 0.5")
		return
	}
	start, err := timeutil.ParseClock(startStr)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid start time '%s'", startStr), err, "")
		return
	}
	end, err := timeutil.ParseClock(endStr)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid end time '%s'", endStr), err, "")
		return
	}
	pause, err := timeutil.ParsePause(pauseStr)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid pause '%s'", pauseStr), err, "Use quarter hours, e.g. 0, 0.25, 0.5, 45m")
		return
	}

	l, ok := openLedger()
	if !ok {
		return
	}

	rec := record.NewTimeRecord(date, start, end, pause)
	overwrite := false
	if existing, found := l.Record(date); found {
		if !skipConfirm {
			_, _ = fmt.Fprintln(deps.Stdout, "Existing record:")
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(existing))
			_, _ = fmt.Fprintln(deps.Stdout)
			if !promptConfirmation("Replace it and discard its project entries?") {
				_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
				return
			}
		}
		overwrite = true
	}

	if err := l.RecordWorkday(rec, overwrite); err != nil {
		if errors.Is(err, ledger.ErrRecordExists) {
			exitWithError(fmt.Sprintf("%s is already recorded", date), err, "Pass --yes to replace it")
			return
		}
		reportLedgerError("Failed to record the workday", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Recorded: %s\n", cli.FormatRecordHeader(rec))
}

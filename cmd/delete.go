package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete the record of a day",
	Long: `Delete the time record of a day together with its project entries.
A confirmation prompt will be shown unless --yes is specified.

Example:
  ptt delete 2025-11-09
  ptt delete yesterday --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteRecord(args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
}

// deleteRecord handles the deletion of a day's record
func deleteRecord(dateStr string) {
	date, ok := parseDateArg(dateStr)
	if !ok {
		return
	}

	l, ok := openLedger()
	if !ok {
		return
	}

	rec, found := l.Record(date)
	if !found {
		exitWithError(fmt.Sprintf("No record for %s", date), nil, "Run 'ptt show' to list the recorded days")
		return
	}

	if !yesFlag {
		_, _ = fmt.Fprintln(deps.Stdout, "Record to delete:")
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(rec))
		_, _ = fmt.Fprintln(deps.Stdout)
		if !promptConfirmation("Delete this record?") {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	if err := l.DeleteTimeRecord(date); err != nil {
		reportLedgerError("Failed to delete the record", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", cli.FormatRecordHeader(rec))
}

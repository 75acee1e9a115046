package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
	"github.com/xolan/ptt/internal/timeutil"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <date> <n>",
	Short: "Edit a project entry",
	Long: `Edit the hours or activity of a project entry.

Usage:
  ptt edit <date> <n> --hours 2                Update entry hours
  ptt edit <date> <n> --activity 'new text'    Update entry activity
  ptt edit <date> <n> --hours 2 --activity 'text'    Update both

The number refers to the entry number shown by 'ptt show <date>' (starting from 1).
At least one flag (--hours or --activity) is required.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		editEntry(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("hours", "", "New hours for the entry (e.g., 2, 1h30m)")
	editCmd.Flags().String("activity", "", "New activity for the entry")
}

// editEntry modifies an existing project entry
func editEntry(cmd *cobra.Command, args []string) {
	date, ok := parseDateArg(args[0])
	if !ok {
		return
	}

	// Parse the entry number (1-based from user)
	userIndex, err := strconv.Atoi(args[1])
	if err != nil || userIndex < 1 {
		exitWithError(fmt.Sprintf("Invalid entry number '%s'", args[1]), nil, "Run 'ptt show <date>' to see the entry numbers")
		return
	}

	hoursStr, _ := cmd.Flags().GetString("hours")
	activity, _ := cmd.Flags().GetString("activity")
	activityChanged := cmd.Flags().Changed("activity")

	if hoursStr == "" && !activityChanged {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--hours or --activity) is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  ptt edit <date> <n> --hours 2")
		_, _ = fmt.Fprintln(deps.Stderr, "  ptt edit <date> <n> --activity 'new text'")
		deps.Exit(1)
		return
	}

	l, ok := openLedger()
	if !ok {
		return
	}

	rec, found := l.Record(date)
	if !found || userIndex > len(rec.ProjectEntries) {
		count := len(rec.ProjectEntries)
		exitWithError(fmt.Sprintf("Entry %d not found on %s", userIndex, date), nil,
			fmt.Sprintf("%s has %d project %s", date, count, cli.Pluralize("entry", count)))
		return
	}
	current := rec.ProjectEntries[userIndex-1]

	hours := current.Hours
	if hoursStr != "" {
		h, err := timeutil.ParseHours(hoursStr)
		if err != nil {
			exitWithError(fmt.Sprintf("Invalid hours '%s'", hoursStr), err, "Use a number like 1.5 or a duration like 1h30m")
			return
		}
		hours = h
	}
	if !activityChanged {
		activity = current.Activity
	}

	updated, err := l.EditProjectEntry(date, userIndex-1, hours, activity)
	if err != nil {
		reportLedgerError("Failed to edit the entry", err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Updated:")
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntry(userIndex, updated))
}

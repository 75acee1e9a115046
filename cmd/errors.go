package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/ptt/internal/ledger"
	"github.com/xolan/ptt/internal/log"
	"github.com/xolan/ptt/internal/record"
	"github.com/xolan/ptt/internal/storage"
	"github.com/xolan/ptt/internal/timeutil"
)

// exitWithError prints an error block to stderr and exits with status 1.
// Empty details or hint lines are omitted.
func exitWithError(message string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", message)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}

// openLedger opens the ledger described by the configuration. On failure it
// reports the error and returns false.
func openLedger() (*ledger.Ledger, bool) {
	cfg := deps.Config

	policy, err := ledger.ParseDuplicatePolicy(cfg.DuplicateEntries)
	if err != nil {
		exitWithError("Invalid configuration", err, "Run 'ptt config' to see the effective settings")
		return nil, false
	}
	logger, ok := newLogger()
	if !ok {
		return nil, false
	}

	l, err := ledger.Open(cfg.RecordsFile, cfg.ProjectsFile,
		ledger.WithLogger(logger),
		ledger.WithDuplicatePolicy(policy),
		ledger.WithBackups(cfg.Backups))
	if err != nil {
		reportLoadError(err)
		return nil, false
	}
	return l, true
}

// newLogger builds the stderr logger at the configured level. On an invalid
// level it reports the error and returns false.
func newLogger() (*log.Logger, bool) {
	level, err := log.ParseLevel(deps.Config.LogLevel)
	if err != nil {
		exitWithError("Invalid configuration", err, "Run 'ptt config' to see the effective settings")
		return nil, false
	}
	return log.New(log.Config{Level: level, Component: log.ComponentCLI, Output: deps.Stderr}), true
}

// reportLoadError explains why the ledger files could not be loaded.
func reportLoadError(err error) {
	var perr *storage.ParseError
	if errors.As(err, &perr) {
		exitWithError("Stored data is not valid", err,
			fmt.Sprintf("Run 'ptt validate' for details or 'ptt restore' to recover %s from a backup", perr.Path))
		return
	}
	exitWithError("Failed to load the ledger", err, "Check that the working directory is writable")
}

// reportLedgerError prints a failed ledger operation with a hint matching
// the error.
func reportLedgerError(message string, err error) {
	var hint string
	switch {
	case errors.Is(err, ledger.ErrRecordNotFound):
		hint = "Record the day first: ptt day <date> --start HH:MM --end HH:MM --pause H"
	case errors.Is(err, ledger.ErrProjectNotFound):
		hint = "Create the project first: ptt project add <code> <allocation>"
	case errors.Is(err, ledger.ErrProjectExists):
		hint = "Run 'ptt project list' to see existing projects"
	case errors.Is(err, ledger.ErrExceedsRemaining):
		hint = "Run 'ptt show <date>' to see the remaining hours"
	case errors.Is(err, ledger.ErrDuplicateEntry):
		hint = "Edit the existing entry with 'ptt edit <date> <n>' or set duplicate_entries in the config"
	case errors.Is(err, ledger.ErrEntryNotFound):
		hint = "Run 'ptt show <date>' to see the entry numbers"
	case errors.Is(err, record.ErrInvalidPause):
		hint = "Use quarter hours, e.g. 0, 0.25, 0.5, 45m"
	case errors.Is(err, record.ErrPauseExceedsDuration):
		hint = "The pause must be shorter than the time between start and end"
	case errors.Is(err, record.ErrInvalidProjectCode):
		hint = fmt.Sprintf("Use 1-%d characters, e.g. INEK", record.MaxProjectCodeLength)
	case errors.Is(err, record.ErrActivityTooLong):
		hint = fmt.Sprintf("Shorten the activity to %d characters", record.MaxActivityLength)
	}
	exitWithError(message, err, hint)
}

// parseDateArg parses a date argument or reports it and returns false.
func parseDateArg(input string) (record.Date, bool) {
	date, err := timeutil.ParseDate(input, deps.Today())
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid date '%s'", input), err, "Use YYYY-MM-DD, DD/MM/YYYY, today or yesterday")
		return record.Date{}, false
	}
	return date, true
}

// promptConfirmation asks a yes/no question on stdout.
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation(question string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

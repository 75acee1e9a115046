package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/ledger"
	"github.com/xolan/ptt/internal/log"
	"github.com/xolan/ptt/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore a data file from a backup",
	Long: `Restore the time record file, or the project file with --projects, from
a backup.

By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3). The current
file becomes the newest backup, so a restore can itself be undone.

Examples:
  ptt restore               Restore records from most recent backup
  ptt restore 2             Restore records from backup #2
  ptt restore --projects    Restore projects from most recent backup`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().Bool("projects", false, "Restore the project file instead of the record file")
}

// restoreFromBackup handles the restore command logic. It works on the
// files directly so a file that no longer parses can be recovered.
func restoreFromBackup(cmd *cobra.Command, args []string) {
	collection := ledger.Records
	if projects, _ := cmd.Flags().GetBool("projects"); projects {
		collection = ledger.Projects
	}

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			exitWithError(fmt.Sprintf("Invalid backup number '%s'", args[0]), nil, "")
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			exitWithError(fmt.Sprintf("Backup number must be between 1 and %d (got %d)", storage.MaxBackupCount, num), nil, "")
			return
		}
		backupNum = num
	}

	logger, ok := newLogger()
	if !ok {
		return
	}

	cfg := deps.Config
	paths, err := ledger.ResolvePaths(cfg.RecordsFile, cfg.ProjectsFile)
	if err != nil {
		exitWithError("Failed to determine data file locations", err, "Check that the working directory is accessible")
		return
	}

	backups := ledger.Backups(paths, collection)
	if len(backups) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No %s backups available\n", collection)
		deps.Exit(1)
		return
	}

	// Display available backups
	_, _ = fmt.Fprintf(deps.Stdout, "Available %s backups:\n", collection)
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if err := ledger.Restore(paths, collection, backupNum); err != nil {
		if errors.Is(err, storage.ErrBackupNotFound) {
			exitWithError(fmt.Sprintf("Backup %d does not exist", backupNum), nil, "")
			return
		}
		exitWithError("Failed to restore backup", err, "")
		return
	}

	logger.Info("backup restored",
		log.FieldOperation, log.OpRestore,
		log.FieldPath, paths.For(collection),
		log.FieldBackup, backupNum)
	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored %s from backup %d\n", collection, backupNum)
}

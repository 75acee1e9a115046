package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path of backup n for the file at storagePath.
// Backup files are named <file>.bak.N; lower numbers are more recent.
func BackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It deletes the oldest .bak.3, then renames .bak.2 -> .bak.3 and .bak.1 -> .bak.2.
// Missing files are skipped.
func rotateBackups(storagePath string) error {
	oldestPath := BackupPath(storagePath, MaxBackupCount)
	if err := os.Remove(oldestPath); err != nil && !os.IsNotExist(err) {
		return ioError("remove", oldestPath, err)
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		currentPath := BackupPath(storagePath, i)
		nextPath := BackupPath(storagePath, i+1)
		if err := os.Rename(currentPath, nextPath); err != nil && !os.IsNotExist(err) {
			return ioError("rename", currentPath, err)
		}
	}

	return nil
}

// CreateBackup copies the file at storagePath to .bak.1 after rotating the
// older backups. A missing storage file is not an error and creates nothing.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ioError("stat", storagePath, err)
	}

	if err := rotateBackups(storagePath); err != nil {
		return err
	}

	return copyFile(storagePath, BackupPath(storagePath, 1))
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1, 2, or 3)
	Path   string // The full path to the backup file
}

// ListBackups returns the backups of storagePath, most recent first.
func ListBackups(storagePath string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		backupPath := BackupPath(storagePath, i)
		if _, err := os.Stat(backupPath); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: backupPath})
		}
	}
	return backups
}

// Backup errors
var (
	ErrInvalidBackupNumber = fmt.Errorf("backup number must be between 1 and %d", MaxBackupCount)
	ErrBackupNotFound      = errors.New("backup does not exist")
)

// RestoreBackup copies backup backupNum over the file at storagePath.
// The current file is backed up first, so a restore can itself be undone.
func RestoreBackup(storagePath string, backupNum int) error {
	if backupNum < 1 || backupNum > MaxBackupCount {
		return fmt.Errorf("%w: got %d", ErrInvalidBackupNumber, backupNum)
	}

	backupPath := BackupPath(storagePath, backupNum)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, backupPath)
		}
		return ioError("stat", backupPath, err)
	}

	// Read the backup before rotation renames it
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return ioError("read", backupPath, err)
	}

	if err := CreateBackup(storagePath); err != nil {
		return err
	}

	if err := os.WriteFile(storagePath, data, filePerm); err != nil {
		return ioError("write", storagePath, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return ioError("open", src, err)
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(dst)
	if err != nil {
		return ioError("create", dst, err)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return ioError("write", dst, err)
	}
	if err := destFile.Close(); err != nil {
		return ioError("write", dst, err)
	}
	return nil
}

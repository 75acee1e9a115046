package ledger

import (
	"fmt"

	"github.com/xolan/ptt/internal/osutil"
	"github.com/xolan/ptt/internal/record"
	"github.com/xolan/ptt/internal/storage"
)

// Collection names one of the two stored files.
type Collection int

const (
	// Records is the time record file
	Records Collection = iota
	// Projects is the project file
	Projects
)

func (c Collection) String() string {
	if c == Projects {
		return "projects"
	}
	return "records"
}

// Paths holds the resolved locations of both files.
type Paths struct {
	Records  string
	Projects string
}

// For returns the path of collection c.
func (p Paths) For(c Collection) string {
	if c == Projects {
		return p.Projects
	}
	return p.Records
}

// ResolvePaths resolves both file names against the working directory.
func ResolvePaths(recordsName, projectsName string) (Paths, error) {
	recordsPath, err := osutil.ResolveInWorkDir(recordsName)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve %s: %w", recordsName, err)
	}
	projectsPath, err := osutil.ResolveInWorkDir(projectsName)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve %s: %w", projectsName, err)
	}
	return Paths{Records: recordsPath, Projects: projectsPath}, nil
}

// Check inspects both files without creating, loading or repairing them.
func Check(paths Paths) (records, projects storage.FileHealth, err error) {
	records, err = storage.Inspect[record.TimeRecord](paths.Records)
	if err != nil {
		return records, projects, err
	}
	projects, err = storage.Inspect[record.Project](paths.Projects)
	return records, projects, err
}

// Restore copies backup n of collection c over its file. The ledger is not
// involved so a corrupt file can be restored; reopen or Reload afterwards.
func Restore(paths Paths, c Collection, n int) error {
	if err := storage.RestoreBackup(paths.For(c), n); err != nil {
		return fmt.Errorf("failed to restore %s: %w", c, err)
	}
	return nil
}

// Backups lists the backups of collection c, most recent first.
func Backups(paths Paths, c Collection) []storage.BackupInfo {
	return storage.ListBackups(paths.For(c))
}

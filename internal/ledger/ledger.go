// Package ledger owns the time records and projects of one working
// directory. Every mutating operation changes the in-memory collections
// and then writes a full snapshot of both files.
package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xolan/ptt/internal/log"
	"github.com/xolan/ptt/internal/record"
	"github.com/xolan/ptt/internal/storage"
)

// remainingTolerance absorbs float noise when comparing booked hours
// against the remaining hours of a day.
const remainingTolerance = 1e-9

// Ledger is the single owner of both collections and their file paths.
// It is not safe for concurrent use.
type Ledger struct {
	records  []record.TimeRecord
	projects []record.Project
	paths    Paths

	logger  *log.Logger
	policy  DuplicatePolicy
	backups bool
}

// Option configures a Ledger in Open.
type Option func(*Ledger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger.WithComponent(log.ComponentLedger)
		}
	}
}

// WithDuplicatePolicy sets how RecordActivity treats a second entry for the
// same project on the same day.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(l *Ledger) {
		l.policy = p
	}
}

// WithBackups enables .bak.N copies of both files before deletes and
// overwrites.
func WithBackups(enabled bool) Option {
	return func(l *Ledger) {
		l.backups = enabled
	}
}

// Open resolves both file names against the working directory and loads
// them. Missing files are created empty.
func Open(recordsName, projectsName string, opts ...Option) (*Ledger, error) {
	paths, err := ResolvePaths(recordsName, projectsName)
	if err != nil {
		return nil, err
	}

	l := &Ledger{
		paths:  paths,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.load(); err != nil {
		return nil, err
	}

	l.logger.Debug("ledger opened",
		log.FieldOperation, log.OpOpen,
		"records", len(l.records),
		"projects", len(l.projects),
		"policy", l.policy.String())
	return l, nil
}

func (l *Ledger) load() error {
	records, err := storage.Load[record.TimeRecord](l.paths.Records)
	if err != nil {
		return fmt.Errorf("failed to load time records: %w", err)
	}
	projects, err := storage.Load[record.Project](l.paths.Projects)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	l.records = records
	l.projects = projects
	return nil
}

// Reload replaces the in-memory state with the files on disk. On error the
// previous state is kept.
func (l *Ledger) Reload() error {
	if err := l.load(); err != nil {
		return err
	}
	l.logger.Debug("ledger reloaded", log.FieldOperation, log.OpReload)
	return nil
}

// Paths returns the resolved file locations.
func (l *Ledger) Paths() Paths {
	return l.paths
}

// Policy returns the duplicate entry policy in effect.
func (l *Ledger) Policy() DuplicatePolicy {
	return l.policy
}

// Records returns a copy of all time records in stored order.
func (l *Ledger) Records() []record.TimeRecord {
	out := make([]record.TimeRecord, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out
}

// TimeRecords returns the same as Records.
func (l *Ledger) TimeRecords() []record.TimeRecord {
	return l.Records()
}

// Projects returns a copy of all projects in stored order.
func (l *Ledger) Projects() []record.Project {
	return slices.Clone(l.projects)
}

// Record returns the first record for date.
func (l *Ledger) Record(date record.Date) (record.TimeRecord, bool) {
	i := l.recordIndex(date)
	if i < 0 {
		return record.TimeRecord{}, false
	}
	return l.records[i].Clone(), true
}

// HasRecord reports whether a record exists for date.
func (l *Ledger) HasRecord(date record.Date) bool {
	return l.recordIndex(date) >= 0
}

// Project returns the project with code.
func (l *Ledger) Project(code string) (record.Project, bool) {
	for _, p := range l.projects {
		if p.Code == code {
			return p, true
		}
	}
	return record.Project{}, false
}

// HasProject reports whether a project with code exists.
func (l *Ledger) HasProject(code string) bool {
	_, ok := l.Project(code)
	return ok
}

// Dates returns the distinct record dates, newest first.
func (l *Ledger) Dates() []record.Date {
	dates := make([]record.Date, 0, len(l.records))
	for _, r := range l.records {
		if !slices.Contains(dates, r.Date) {
			dates = append(dates, r.Date)
		}
	}
	slices.SortFunc(dates, func(a, b record.Date) int {
		return b.Compare(a)
	})
	return dates
}

func (l *Ledger) recordIndex(date record.Date) int {
	return slices.IndexFunc(l.records, func(r record.TimeRecord) bool {
		return r.Date == date
	})
}

// AddTimeRecord appends rec and saves. Uniqueness of the date is the
// caller's concern; RecordWorkday enforces it.
func (l *Ledger) AddTimeRecord(rec record.TimeRecord) error {
	l.records = append(l.records, rec.Clone())
	if err := l.Save(); err != nil {
		return err
	}
	l.logger.Debug("time record added",
		log.FieldOperation, log.OpAddRecord,
		log.FieldDate, rec.Date.String())
	return nil
}

// AddProject appends p and saves. Uniqueness of the code is the caller's
// concern; CreateProject enforces it.
func (l *Ledger) AddProject(p record.Project) error {
	l.projects = append(l.projects, p)
	if err := l.Save(); err != nil {
		return err
	}
	l.logger.Debug("project added",
		log.FieldOperation, log.OpAddProject,
		log.FieldCode, p.Code)
	return nil
}

// AddProjectEntry appends entry to the record for date and saves.
// When no record exists for date the entry is dropped, nothing is written
// and nil is returned.
func (l *Ledger) AddProjectEntry(date record.Date, entry record.ProjectEntry) error {
	i := l.recordIndex(date)
	if i < 0 {
		l.logger.Debug("no time record for entry, dropped",
			log.FieldOperation, log.OpAddEntry,
			log.FieldDate, date.String(),
			log.FieldCode, entry.Project.Code)
		return nil
	}

	l.records[i].ProjectEntries = append(l.records[i].ProjectEntries, entry)
	if err := l.Save(); err != nil {
		return err
	}
	l.logger.Debug("project entry added",
		log.FieldOperation, log.OpAddEntry,
		log.FieldDate, date.String(),
		log.FieldCode, entry.Project.Code,
		log.FieldHours, entry.Hours)
	return nil
}

// DeleteProject removes every project with code and saves. With no stored
// projects it returns nil without writing. Recorded entries keep their copy
// of the project.
func (l *Ledger) DeleteProject(code string) error {
	if len(l.projects) == 0 {
		return nil
	}

	if err := l.backup(); err != nil {
		return err
	}
	before := len(l.projects)
	l.projects = slices.DeleteFunc(l.projects, func(p record.Project) bool {
		return p.Code == code
	})
	if err := l.Save(); err != nil {
		return err
	}
	l.logger.Debug("project deleted",
		log.FieldOperation, log.OpDeleteProject,
		log.FieldCode, code,
		log.FieldCount, before-len(l.projects))
	return nil
}

// DeleteTimeRecord removes every record for date and saves.
func (l *Ledger) DeleteTimeRecord(date record.Date) error {
	if err := l.backup(); err != nil {
		return err
	}
	before := len(l.records)
	l.records = slices.DeleteFunc(l.records, func(r record.TimeRecord) bool {
		return r.Date == date
	})
	if err := l.Save(); err != nil {
		return err
	}
	l.logger.Debug("time record deleted",
		log.FieldOperation, log.OpDeleteRecord,
		log.FieldDate, date.String(),
		log.FieldCount, before-len(l.records))
	return nil
}

// Save writes both collections. Both snapshots are staged before either
// file is replaced, time records first. A failed staging leaves both files
// as they were; the in-memory state is never rolled back.
func (l *Ledger) Save() error {
	recordsFile, err := storage.Stage(l.paths.Records, l.records)
	if err != nil {
		return l.saveFailed(err)
	}
	projectsFile, err := storage.Stage(l.paths.Projects, l.projects)
	if err != nil {
		recordsFile.Discard()
		return l.saveFailed(err)
	}

	if err := recordsFile.Commit(); err != nil {
		projectsFile.Discard()
		return l.saveFailed(err)
	}
	if err := projectsFile.Commit(); err != nil {
		return l.saveFailed(err)
	}
	return nil
}

func (l *Ledger) saveFailed(err error) error {
	l.logger.Error("failed to save ledger",
		log.FieldOperation, log.OpSave,
		log.FieldError, err)
	return fmt.Errorf("failed to save ledger: %w", err)
}

// backup copies both files to their next .bak.1 when backups are enabled.
func (l *Ledger) backup() error {
	if !l.backups {
		return nil
	}
	for _, path := range []string{l.paths.Records, l.paths.Projects} {
		if err := storage.CreateBackup(path); err != nil {
			l.logger.Error("failed to back up file",
				log.FieldOperation, log.OpBackup,
				log.FieldPath, path,
				log.FieldError, err)
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}
	return nil
}

// RecordWorkday stores the workday rec after validating its pause. If a
// record for the date exists, overwrite must be true; the first record for
// the date is then replaced in place, any further records for it are
// removed, and their project entries are discarded.
func (l *Ledger) RecordWorkday(rec record.TimeRecord, overwrite bool) error {
	if err := record.ValidateWorkday(rec); err != nil {
		return err
	}
	rec = record.NewTimeRecord(rec.Date, rec.StartTime, rec.EndTime, rec.PauseMinutes)

	i := l.recordIndex(rec.Date)
	if i < 0 {
		return l.AddTimeRecord(rec)
	}
	if !overwrite {
		return fmt.Errorf("%w: %s", ErrRecordExists, rec.Date)
	}

	if err := l.backup(); err != nil {
		return err
	}
	l.records[i] = rec
	kept := l.records[:i+1]
	for _, r := range l.records[i+1:] {
		if r.Date != rec.Date {
			kept = append(kept, r)
		}
	}
	l.records = kept
	if err := l.Save(); err != nil {
		return err
	}
	l.logger.Debug("time record replaced",
		log.FieldOperation, log.OpReplaceRecord,
		log.FieldDate, rec.Date.String())
	return nil
}

// CreateProject validates code and allocation, rejects an existing code
// and adds the project.
func (l *Ledger) CreateProject(code string, allocation float64) (record.Project, error) {
	code = strings.TrimSpace(code)
	if err := record.ValidateProjectCode(code); err != nil {
		return record.Project{}, err
	}
	if err := record.ValidateAllocation(allocation); err != nil {
		return record.Project{}, err
	}
	if l.HasProject(code) {
		return record.Project{}, fmt.Errorf("%w: %s", ErrProjectExists, code)
	}

	p := record.Project{Code: code, Allocation: allocation}
	if err := l.AddProject(p); err != nil {
		return record.Project{}, err
	}
	return p, nil
}

// RecordActivity books hours of date against the project code. The record
// and the project must exist and hours must fit into the remaining hours.
// A second entry for the same project follows the duplicate policy.
func (l *Ledger) RecordActivity(date record.Date, code string, hours float64, activity string) (record.ProjectEntry, error) {
	i := l.recordIndex(date)
	if i < 0 {
		return record.ProjectEntry{}, fmt.Errorf("%w: %s", ErrRecordNotFound, date)
	}
	project, ok := l.Project(code)
	if !ok {
		return record.ProjectEntry{}, fmt.Errorf("%w: %s", ErrProjectNotFound, code)
	}
	if err := record.ValidateHours(hours); err != nil {
		return record.ProjectEntry{}, err
	}
	if err := record.ValidateActivity(activity); err != nil {
		return record.ProjectEntry{}, err
	}
	if remaining := l.records[i].RemainingHours(); hours > remaining+remainingTolerance {
		return record.ProjectEntry{}, fmt.Errorf("%w: %v h requested, %v h remaining", ErrExceedsRemaining, hours, remaining)
	}

	if j := l.records[i].EntryIndex(code); j >= 0 {
		switch l.policy {
		case DuplicateReject:
			return record.ProjectEntry{}, fmt.Errorf("%w: %s on %s", ErrDuplicateEntry, code, date)
		case DuplicateMerge:
			return l.mergeEntry(i, j, hours, activity)
		}
	}

	entry := record.ProjectEntry{Project: project, Hours: hours, Activity: activity}
	if err := l.AddProjectEntry(date, entry); err != nil {
		return record.ProjectEntry{}, err
	}
	return entry, nil
}

func (l *Ledger) mergeEntry(recordIdx, entryIdx int, hours float64, activity string) (record.ProjectEntry, error) {
	merged := l.records[recordIdx].ProjectEntries[entryIdx]
	merged.Hours += hours
	switch {
	case merged.Activity == "":
		merged.Activity = activity
	case activity != "":
		merged.Activity += ActivitySeparator + activity
	}
	if err := record.ValidateActivity(merged.Activity); err != nil {
		return record.ProjectEntry{}, err
	}

	l.records[recordIdx].ProjectEntries[entryIdx] = merged
	if err := l.Save(); err != nil {
		return record.ProjectEntry{}, err
	}
	l.logger.Debug("project entry merged",
		log.FieldOperation, log.OpMergeEntry,
		log.FieldDate, l.records[recordIdx].Date.String(),
		log.FieldCode, merged.Project.Code,
		log.FieldHours, merged.Hours)
	return merged, nil
}

// EditProjectEntry replaces hours and activity of entry index (0-based) of
// the record for date. The remaining hours are not re-checked.
func (l *Ledger) EditProjectEntry(date record.Date, index int, hours float64, activity string) (record.ProjectEntry, error) {
	i := l.recordIndex(date)
	if i < 0 {
		return record.ProjectEntry{}, fmt.Errorf("%w: %s", ErrRecordNotFound, date)
	}
	entries := l.records[i].ProjectEntries
	if index < 0 || index >= len(entries) {
		return record.ProjectEntry{}, fmt.Errorf("%w: %s has %d entries, got index %d", ErrEntryNotFound, date, len(entries), index)
	}
	if err := record.ValidateHours(hours); err != nil {
		return record.ProjectEntry{}, err
	}
	if err := record.ValidateActivity(activity); err != nil {
		return record.ProjectEntry{}, err
	}

	entries[index].Hours = hours
	entries[index].Activity = activity
	if err := l.Save(); err != nil {
		return record.ProjectEntry{}, err
	}
	l.logger.Debug("project entry edited",
		log.FieldOperation, log.OpEditEntry,
		log.FieldDate, date.String(),
		log.FieldCode, entries[index].Project.Code,
		log.FieldHours, hours)
	return entries[index], nil
}

// Package record holds the ledger's entity types and the pure hour
// arithmetic over them. Nothing in this package performs I/O.
package record

import "math"

// Project is a project a worker can book hours against
type Project struct {
	Code       string
	Allocation float64 // full-time-equivalent share, e.g. 0.5
}

// ProjectEntry books hours of one day against a project.
// Project is a copy taken when the entry was recorded, so later changes to
// the stored project list never rewrite history.
type ProjectEntry struct {
	Project  Project
	Hours    float64
	Activity string
}

// TimeRecord is the workday of one calendar date
type TimeRecord struct {
	Date      Date
	StartTime Clock
	EndTime   Clock
	// PauseMinutes is the break length in hours (0.25 steps). The name is
	// kept from the stored format.
	PauseMinutes   float64
	ProjectEntries []ProjectEntry
}

// NewTimeRecord returns a record for date with no project entries.
func NewTimeRecord(date Date, start, end Clock, pause float64) TimeRecord {
	return TimeRecord{
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		PauseMinutes: pause,
	}
}

// RoundQuarter rounds h to the nearest quarter hour.
func RoundQuarter(h float64) float64 {
	return math.Round(h*4) / 4
}

// WorkedHours returns end-start in hours, floored at zero and rounded to a
// quarter hour. An end before the start counts as zero worked time.
func (r TimeRecord) WorkedHours() float64 {
	hours := r.EndTime.Sub(r.StartTime).Hours()
	return RoundQuarter(math.Max(hours, 0))
}

// NetHours returns the worked hours minus the pause. The result is negative
// when the pause exceeds the worked time.
func (r TimeRecord) NetHours() float64 {
	return r.WorkedHours() - r.PauseMinutes
}

// AllocatedHours returns the hours already booked to projects.
func (r TimeRecord) AllocatedHours() float64 {
	total := 0.0
	for _, e := range r.ProjectEntries {
		total += e.Hours
	}
	return total
}

// RemainingHours returns the net hours not yet booked to a project.
func (r TimeRecord) RemainingHours() float64 {
	return r.NetHours() - r.AllocatedHours()
}

// HasEntryFor reports whether any entry books hours against code.
func (r TimeRecord) HasEntryFor(code string) bool {
	return r.EntryIndex(code) >= 0
}

// EntryIndex returns the index of the first entry for code, or -1.
func (r TimeRecord) EntryIndex(code string) int {
	for i, e := range r.ProjectEntries {
		if e.Project.Code == code {
			return i
		}
	}
	return -1
}

// Clone returns a copy of r that shares no memory with it.
func (r TimeRecord) Clone() TimeRecord {
	c := r
	if r.ProjectEntries != nil {
		c.ProjectEntries = make([]ProjectEntry, len(r.ProjectEntries))
		copy(c.ProjectEntries, r.ProjectEntries)
	}
	return c
}

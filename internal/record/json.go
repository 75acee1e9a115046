package record

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire shapes. Field names follow the stored file format. Pointer fields
// mark required keys; nil after decoding means the key was absent or null.

type projectJSON struct {
	Code       string   `json:"code"`
	Allocation *float64 `json:"allocation"`
}

type projectEntryJSON struct {
	Project *projectJSON `json:"project,omitempty"`
	// ProjectName is the key older data files use for the project copy.
	ProjectName *projectJSON `json:"project_name,omitempty"`
	Hours       *float64     `json:"hours"`
	Activity    *string      `json:"activity"`
}

type timeRecordJSON struct {
	Date           *Date           `json:"date"`
	StartTime      *Clock          `json:"start_time"`
	EndTime        *Clock          `json:"end_time"`
	PauseMinutes   *float64        `json:"pause_minutes"`
	ProjectEntries *[]ProjectEntry `json:"project_entries"`
}

func missingField(kind, field string) error {
	return fmt.Errorf("%s: missing %s", kind, field)
}

// MarshalJSON encodes p as {"code": ..., "allocation": ...}.
func (p Project) MarshalJSON() ([]byte, error) {
	allocation := p.Allocation
	return json.Marshal(projectJSON{Code: p.Code, Allocation: &allocation})
}

// UnmarshalJSON decodes a stored project. Code and allocation must be present.
func (p *Project) UnmarshalJSON(data []byte) error {
	var raw projectJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	project, err := raw.project()
	if err != nil {
		return err
	}
	*p = project
	return nil
}

func (raw projectJSON) project() (Project, error) {
	if raw.Code == "" {
		return Project{}, missingField("project", "code")
	}
	if raw.Allocation == nil {
		return Project{}, missingField("project", "allocation")
	}
	return Project{Code: raw.Code, Allocation: *raw.Allocation}, nil
}

// MarshalJSON encodes e with its project copy under "project".
func (e ProjectEntry) MarshalJSON() ([]byte, error) {
	allocation, hours, activity := e.Project.Allocation, e.Hours, e.Activity
	return json.Marshal(projectEntryJSON{
		Project:  &projectJSON{Code: e.Project.Code, Allocation: &allocation},
		Hours:    &hours,
		Activity: &activity,
	})
}

// UnmarshalJSON decodes a stored entry, accepting either "project" or the
// older "project_name" key for the project copy. Hours and activity must be
// present; the activity may be empty.
func (e *ProjectEntry) UnmarshalJSON(data []byte) error {
	var raw projectEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p := raw.Project
	if p == nil {
		p = raw.ProjectName
	}
	switch {
	case p == nil:
		return missingField("project entry", "project")
	case raw.Hours == nil:
		return missingField("project entry", "hours")
	case raw.Activity == nil:
		return missingField("project entry", "activity")
	}
	project, err := p.project()
	if err != nil {
		return fmt.Errorf("project entry: %w", err)
	}
	*e = ProjectEntry{
		Project:  project,
		Hours:    *raw.Hours,
		Activity: *raw.Activity,
	}
	return nil
}

// MarshalJSON encodes r. A record without entries is written with an empty list.
func (r TimeRecord) MarshalJSON() ([]byte, error) {
	if r.Date.IsZero() {
		return nil, errors.New("time record: missing date")
	}
	entries := r.ProjectEntries
	if entries == nil {
		entries = []ProjectEntry{}
	}
	date, start, end, pause := r.Date, r.StartTime, r.EndTime, r.PauseMinutes
	return json.Marshal(timeRecordJSON{
		Date:           &date,
		StartTime:      &start,
		EndTime:        &end,
		PauseMinutes:   &pause,
		ProjectEntries: &entries,
	})
}

// UnmarshalJSON decodes a stored record. Every field must be present; an
// empty entry list decodes to nil.
func (r *TimeRecord) UnmarshalJSON(data []byte) error {
	var raw timeRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Date == nil:
		return missingField("time record", "date")
	case raw.StartTime == nil:
		return missingField("time record", "start_time")
	case raw.EndTime == nil:
		return missingField("time record", "end_time")
	case raw.PauseMinutes == nil:
		return missingField("time record", "pause_minutes")
	case raw.ProjectEntries == nil:
		return missingField("time record", "project_entries")
	}
	rec := TimeRecord{
		Date:         *raw.Date,
		StartTime:    *raw.StartTime,
		EndTime:      *raw.EndTime,
		PauseMinutes: *raw.PauseMinutes,
	}
	if len(*raw.ProjectEntries) > 0 {
		rec.ProjectEntries = *raw.ProjectEntries
	}
	*r = rec
	return nil
}

// String renders p for error messages and logs.
func (p Project) String() string {
	return fmt.Sprintf("%s (%.2f)", p.Code, p.Allocation)
}

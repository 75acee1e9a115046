package ledger

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what RecordActivity does when the day already
// has an entry for the project.
type DuplicatePolicy int

const (
	// DuplicateAllow appends a second entry
	DuplicateAllow DuplicatePolicy = iota
	// DuplicateReject fails with ErrDuplicateEntry
	DuplicateReject
	// DuplicateMerge adds the hours to the existing entry and joins the activities
	DuplicateMerge
)

// ActivitySeparator joins activities of merged entries
const ActivitySeparator = "; "

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateAllow:
		return "allow"
	case DuplicateReject:
		return "reject"
	case DuplicateMerge:
		return "merge"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParseDuplicatePolicy converts a configured policy name.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "allow", "":
		return DuplicateAllow, nil
	case "reject":
		return DuplicateReject, nil
	case "merge":
		return DuplicateMerge, nil
	}
	return DuplicateAllow, fmt.Errorf("unknown duplicate entry policy %q", name)
}

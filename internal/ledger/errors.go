package ledger

import "errors"

// Lookup errors
var (
	ErrRecordNotFound  = errors.New("no time record for that date")
	ErrProjectNotFound = errors.New("project does not exist")
	ErrEntryNotFound   = errors.New("project entry does not exist")
)

// Guard errors returned by the checked operations
var (
	ErrRecordExists     = errors.New("a time record for that date already exists")
	ErrProjectExists    = errors.New("a project with that code already exists")
	ErrExceedsRemaining = errors.New("hours exceed the remaining hours of the day")
	ErrDuplicateEntry   = errors.New("project already has an entry on that day")
)

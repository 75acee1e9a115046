package record

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// MaxActivityLength is the maximum number of characters in an activity
	MaxActivityLength = 500
	// MaxProjectCodeLength is the maximum number of characters in a project code
	MaxProjectCodeLength = 5
)

// Validation errors for the guarded input paths
var (
	ErrInvalidPause         = errors.New("pause must be a non-negative multiple of 0.25 hours")
	ErrPauseExceedsDuration = errors.New("pause exceeds the worked time")
	ErrActivityTooLong      = fmt.Errorf("activity must be no longer than %d characters", MaxActivityLength)
	ErrInvalidProjectCode   = fmt.Errorf("project code must be 1-%d characters", MaxProjectCodeLength)
	ErrInvalidHours         = errors.New("hours must be greater than zero")
	ErrInvalidAllocation    = errors.New("allocation must be a non-negative number")
)

// ValidatePause checks that pause is a non-negative quarter-hour multiple.
func ValidatePause(pause float64) error {
	if math.IsNaN(pause) || math.IsInf(pause, 0) || pause < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidPause, pause)
	}
	if q := pause * 4; q != math.Trunc(q) {
		return fmt.Errorf("%w: got %v", ErrInvalidPause, pause)
	}
	return nil
}

// ValidateWorkday checks a record before it is stored through the guarded
// path: the pause must be valid and must not exceed the worked time, so a
// stored workday never starts with negative net hours.
func ValidateWorkday(r TimeRecord) error {
	if r.Date.IsZero() {
		return errors.New("workday needs a date")
	}
	if err := ValidatePause(r.PauseMinutes); err != nil {
		return err
	}
	if worked := r.WorkedHours(); r.PauseMinutes > worked {
		return fmt.Errorf("%w: pause %v h, worked %v h", ErrPauseExceedsDuration, r.PauseMinutes, worked)
	}
	return nil
}

// ValidateActivity checks the activity length in characters.
func ValidateActivity(activity string) error {
	if n := utf8.RuneCountInString(activity); n > MaxActivityLength {
		return fmt.Errorf("%w: got %d", ErrActivityTooLong, n)
	}
	return nil
}

// ValidateProjectCode checks that code is non-blank and short enough.
func ValidateProjectCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrInvalidProjectCode
	}
	if n := utf8.RuneCountInString(code); n > MaxProjectCodeLength {
		return fmt.Errorf("%w: %q has %d", ErrInvalidProjectCode, code, n)
	}
	return nil
}

// ValidateAllocation checks a project's FTE share.
func ValidateAllocation(allocation float64) error {
	if math.IsNaN(allocation) || math.IsInf(allocation, 0) || allocation < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAllocation, allocation)
	}
	return nil
}

// ValidateHours checks that hours is a positive finite number.
func ValidateHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidHours, hours)
	}
	return nil
}

// Package timeutil parses the dates, clock times, hours and periods typed
// on the command line.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xolan/ptt/internal/record"
)

// ParseDate parses a date in YYYY-MM-DD or DD/MM/YYYY format, or one of the
// words "today" and "yesterday" relative to today.
// For ambiguous dates (like 05/06/2024), ISO format (YYYY-MM-DD) is preferred.
//
// Valid inputs:
//   - "2024-01-15" (ISO format)
//   - "15/01/2024" (European format)
//   - "today", "yesterday" (case-insensitive)
//
// Invalid inputs return an error with suggested formats.
func ParseDate(input string, today record.Date) (record.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return record.Date{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	switch strings.ToLower(input) {
	case "today":
		return today, nil
	case "yesterday":
		return record.DateOf(today.Time().AddDate(0, 0, -1)), nil
	}

	// Try ISO format first (YYYY-MM-DD) - preferred for ambiguous dates
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return record.DateOf(t), nil
	}

	// Try European format (DD/MM/YYYY)
	if t, err := time.Parse("02/01/2006", input); err == nil {
		return record.DateOf(t), nil
	}

	// Neither format worked - provide specific error based on input pattern
	return record.Date{}, buildDateParseError(input)
}

// Today returns the current local date.
func Today() record.Date {
	return record.DateOf(time.Now())
}

var (
	isoPartialRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)        // YYYY-MM (missing day)
	yearOnlyRe      = regexp.MustCompile(`^\d{4}$`)                // YYYY (year only)
	isoPartialDayRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)      // MM-DD or DD-MM (missing year)
	euroPartialRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)      // DD/MM (missing year)
	tooManyPartsRe  = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`) // Too many separators
)

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case isoPartialDayRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case euroPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024, or today/yesterday)", input)
	}
}

// ParseClock parses a time of day in HH:MM or HH:MM:SS format.
func ParseClock(input string) (record.Clock, error) {
	c, err := record.ParseClock(strings.TrimSpace(input))
	if err != nil {
		return record.Clock{}, fmt.Errorf("invalid time '%s' (use HH:MM, e.g., 08:30 or 17:45)", input)
	}
	return c, nil
}

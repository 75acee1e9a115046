package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseYear parses a four-digit year.
func ParseYear(input string) (int, error) {
	input = strings.TrimSpace(input)
	year, err := strconv.Atoi(input)
	if err != nil || len(input) != 4 || year < 1 {
		return 0, fmt.Errorf("invalid year '%s' (use four digits, e.g., 2025)", input)
	}
	return year, nil
}

// ParseMonth parses a month number (1-12) or an English month name or its
// three-letter abbreviation, case-insensitively.
func ParseMonth(input string) (time.Month, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("invalid month '%s': must be between 1 and 12", input)
		}
		return time.Month(n), nil
	}

	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if input == name || (len(input) == 3 && strings.HasPrefix(name, input)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month '%s' (use 1-12 or a month name, e.g., 11 or november)", input)
}

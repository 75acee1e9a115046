package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// combinedTimePattern matches combined durations in XhYm format (e.g., "1h30m", "2h15m")
var combinedTimePattern = regexp.MustCompile(`^(\d+)h(\d+)m$`)

// timePattern matches durations in Yh (hours) or Ym (minutes) format
var timePattern = regexp.MustCompile(`^(\d+)(h|m)$`)

// MaxHours is the largest amount accepted for one day
const MaxHours = 24

// ParseHours parses an amount of hours as a decimal number ("3.5", "0,75")
// or in Yh, Ym or XhYm format ("3h", "30m", "3h30m").
// Invalid inputs: "invalid", "0", "0h", "-1", values exceeding 24 hours
func ParseHours(input string) (float64, error) {
	hours, err := parseHours(input)
	if err != nil {
		return 0, err
	}
	if hours <= 0 {
		return 0, fmt.Errorf("invalid hours '%s': must be greater than zero", input)
	}
	return hours, nil
}

// ParsePause parses a break length in the same formats as ParseHours.
// Zero is allowed.
func ParsePause(input string) (float64, error) {
	hours, err := parseHours(input)
	if err != nil {
		return 0, fmt.Errorf("invalid pause: %w", err)
	}
	if hours < 0 {
		return 0, fmt.Errorf("invalid pause '%s': must not be negative", input)
	}
	return hours, nil
}

func parseHours(input string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(input))

	var hours float64
	if matches := combinedTimePattern.FindStringSubmatch(s); matches != nil {
		h, _ := strconv.Atoi(matches[1])
		m, _ := strconv.Atoi(matches[2])
		hours = float64(h*60+m) / 60
	} else if matches := timePattern.FindStringSubmatch(s); matches != nil {
		value, _ := strconv.Atoi(matches[1])
		if matches[2] == "h" {
			hours = float64(value)
		} else {
			hours = float64(value) / 60
		}
	} else {
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid hours '%s': expected a number like 3.5 or Xh, Xm, XhYm", input)
		}
		hours = f
	}

	if hours > MaxHours {
		return 0, fmt.Errorf("invalid hours '%s': exceeds maximum of %d hours", input, MaxHours)
	}
	return hours, nil
}

// Package cli provides the CLI presentation layer for the ptt application.
// It formats records, hours and file diagnostics as plain text lines.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xolan/ptt/internal/record"
	"github.com/xolan/ptt/internal/report"
	"github.com/xolan/ptt/internal/storage"
)

// FormatHours formats an amount of hours with the fewest decimals needed.
// Examples: "8h", "9.5h", "0.25h", "-1.5h"
func FormatHours(hours float64) string {
	// Two decimals so summed floats print cleanly
	rounded := math.Round(hours*100) / 100
	if rounded == 0 {
		rounded = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "h"
}

// FormatRecordHeader formats the workday part of a record on one line.
// Example: "2025-11-09  08:00-18:00  pause 0.5h  net 9.5h"
func FormatRecordHeader(r record.TimeRecord) string {
	return fmt.Sprintf("%s  %s-%s  pause %s  net %s",
		r.Date, r.StartTime.Short(), r.EndTime.Short(),
		FormatHours(r.PauseMinutes), FormatHours(r.NetHours()))
}

// FormatBudget formats the allocated and remaining hours of a record.
// Example: "allocated 3.5h, remaining 6h"
func FormatBudget(r record.TimeRecord) string {
	return fmt.Sprintf("allocated %s, remaining %s", FormatHours(r.AllocatedHours()), FormatHours(r.RemainingHours()))
}

// FormatEntry formats a project entry with its 1-based number.
// Example: "  1. INEK    3.5h  I ran a test"
func FormatEntry(n int, e record.ProjectEntry) string {
	line := fmt.Sprintf("  %d. %-5s %6s", n, e.Project.Code, FormatHours(e.Hours))
	if e.Activity != "" {
		line += "  " + e.Activity
	}
	return line
}

// FormatRecord formats a record header, its entries and its budget.
func FormatRecord(r record.TimeRecord) string {
	var b strings.Builder
	b.WriteString(FormatRecordHeader(r))
	b.WriteString("\n")
	for i, e := range r.ProjectEntries {
		b.WriteString(FormatEntry(i+1, e))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(FormatBudget(r))
	return b.String()
}

// FormatProject formats a project for listing.
// Example: "INEK   allocation 0.5"
func FormatProject(p record.Project) string {
	return fmt.Sprintf("%-5s  allocation %s", p.Code, strconv.FormatFloat(p.Allocation, 'f', -1, 64))
}

// FormatBreakdown formats per-project totals, one project per line.
func FormatBreakdown(breakdown []report.ProjectBreakdown) []string {
	lines := make([]string, 0, len(breakdown))
	for _, b := range breakdown {
		line := fmt.Sprintf("  %-5s %8s", b.Code, FormatHours(b.Hours))
		if b.EntryCount > 0 {
			line += fmt.Sprintf("  (%d %s)", b.EntryCount, Pluralize("entry", b.EntryCount))
		}
		lines = append(lines, line)
	}
	return lines
}

// FormatParseProblem formats a file content problem into a human-readable string
func FormatParseProblem(problem *storage.ParseError) string {
	if problem == nil {
		return ""
	}
	detail := Truncate(problem.Err.Error(), 80)
	if problem.Index < 0 {
		return fmt.Sprintf("  File content: %s", detail)
	}
	return fmt.Sprintf("  Element %d: %s", problem.Index+1, detail)
}

// Truncate shortens s to at most max characters, ending in "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}

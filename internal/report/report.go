// Package report aggregates booked hours per project over months and years.
// It only reads the records it is given.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/xolan/ptt/internal/record"
)

// Source provides the time records to aggregate. *ledger.Ledger satisfies it.
type Source interface {
	TimeRecords() []record.TimeRecord
}

// ProjectBreakdown contains the hours booked to a single project
type ProjectBreakdown struct {
	Code       string
	Hours      float64
	EntryCount int
}

// Summary contains aggregated hours of the records in a period
type Summary struct {
	Days           int
	EntryCount     int
	NetHours       float64
	AllocatedHours float64
	RemainingHours float64
	Projects       []ProjectBreakdown
}

// AverageNetHoursPerDay returns NetHours spread over the recorded days.
func (s Summary) AverageNetHoursPerDay() float64 {
	if s.Days == 0 {
		return 0
	}
	return s.NetHours / float64(s.Days)
}

// TotalsForMonth sums the entry hours per project code for the records
// dated in year/month. Projects without entries are absent.
func TotalsForMonth(src Source, year int, month time.Month) map[string]float64 {
	return totals(src.TimeRecords(), func(d record.Date) bool {
		return d.InMonth(year, month)
	})
}

// TotalsForYear sums the entry hours per project code for the records
// dated in year.
func TotalsForYear(src Source, year int) map[string]float64 {
	return totals(src.TimeRecords(), func(d record.Date) bool {
		return d.Year == year
	})
}

func totals(records []record.TimeRecord, match func(record.Date) bool) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		if !match(r.Date) {
			continue
		}
		for _, e := range r.ProjectEntries {
			out[e.Project.Code] += e.Hours
		}
	}
	return out
}

// DistinctYears returns every year with a record, newest first.
func DistinctYears(src Source) []int {
	var years []int
	for _, r := range src.TimeRecords() {
		if !slices.Contains(years, r.Date.Year) {
			years = append(years, r.Date.Year)
		}
	}
	slices.SortFunc(years, func(a, b int) int {
		return cmp.Compare(b, a)
	})
	return years
}

// DistinctMonthsInYear returns every month of year with a record, latest
// first.
func DistinctMonthsInYear(src Source, year int) []time.Month {
	var months []time.Month
	for _, r := range src.TimeRecords() {
		if r.Date.Year == year && !slices.Contains(months, r.Date.Month) {
			months = append(months, r.Date.Month)
		}
	}
	slices.SortFunc(months, func(a, b time.Month) int {
		return cmp.Compare(b, a)
	})
	return months
}

// MonthSummary aggregates the records dated in year/month.
func MonthSummary(src Source, year int, month time.Month) Summary {
	return summarize(src.TimeRecords(), func(d record.Date) bool {
		return d.InMonth(year, month)
	})
}

// YearSummary aggregates the records dated in year.
func YearSummary(src Source, year int) Summary {
	return summarize(src.TimeRecords(), func(d record.Date) bool {
		return d.Year == year
	})
}

func summarize(records []record.TimeRecord, match func(record.Date) bool) Summary {
	var s Summary
	days := make(map[record.Date]bool)
	byCode := make(map[string]*ProjectBreakdown)

	for _, r := range records {
		if !match(r.Date) {
			continue
		}
		days[r.Date] = true
		s.NetHours += r.NetHours()
		s.AllocatedHours += r.AllocatedHours()

		for _, e := range r.ProjectEntries {
			b, ok := byCode[e.Project.Code]
			if !ok {
				b = &ProjectBreakdown{Code: e.Project.Code}
				byCode[e.Project.Code] = b
			}
			b.Hours += e.Hours
			b.EntryCount++
			s.EntryCount++
		}
	}

	s.Days = len(days)
	s.RemainingHours = s.NetHours - s.AllocatedHours
	s.Projects = make([]ProjectBreakdown, 0, len(byCode))
	for _, b := range byCode {
		s.Projects = append(s.Projects, *b)
	}
	SortBreakdown(s.Projects)
	return s
}

// Breakdown converts per-code totals into a sorted breakdown.
// EntryCount is left at zero.
func Breakdown(totals map[string]float64) []ProjectBreakdown {
	out := make([]ProjectBreakdown, 0, len(totals))
	for code, hours := range totals {
		out = append(out, ProjectBreakdown{Code: code, Hours: hours})
	}
	SortBreakdown(out)
	return out
}

// SortBreakdown orders by hours descending, then by code.
func SortBreakdown(b []ProjectBreakdown) {
	slices.SortFunc(b, func(x, y ProjectBreakdown) int {
		if c := cmp.Compare(y.Hours, x.Hours); c != 0 {
			return c
		}
		return cmp.Compare(x.Code, y.Code)
	})
}

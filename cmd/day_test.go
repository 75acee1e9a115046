package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/record"
)

// dayTestCmd returns a command carrying the day flags set to flags.
func dayTestCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "day"}
	c.Flags().String("start", "", "")
	c.Flags().String("end", "", "")
	c.Flags().String("pause", "0", "")
	c.Flags().BoolP("yes", "y", false, "")
	for name, value := range flags {
		if err := c.Flags().Set(name, value); err != nil {
			t.Fatalf("Failed to set --%s: %v", name, err)
		}
	}
	return c
}

func TestRecordDay_New(t *testing.T) {
	d, stdout, stderr := testDeps(t.TempDir())
	SetDeps(d)
	defer ResetDeps()

	cmd := dayTestCmd(t, map[string]string{"start": "08:00", "end": "18:00", "pause": "30m"})
	recordDay(cmd, []string{"2025-11-09"})

	if stderr.Len() > 0 {
		t.Fatalf("Unexpected stderr: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Recorded: 2025-11-09  08:00-18:00  pause 0.5h  net 9.5h") {
		t.Errorf("Expected recorded message, got: %s", stdout.String())
	}

	rec, ok := openTestLedger(t, d).Record(nov9)
	if !ok {
		t.Fatal("record was not stored")
	}
	if rec.PauseMinutes != 0.5 || rec.StartTime != record.NewClock(8, 0) || rec.EndTime != record.NewClock(18, 0) {
		t.Errorf("stored record = %+v", rec)
	}
}

func TestRecordDay_RelativeDate(t *testing.T) {
	d, _, _ := testDeps(t.TempDir())
	SetDeps(d)
	defer ResetDeps()

	recordDay(dayTestCmd(t, map[string]string{"start": "09:00", "end": "17:00"}), []string{"yesterday"})

	if !openTestLedger(t, d).HasRecord(nov9) {
		t.Error("'yesterday' did not resolve to 2025-11-09")
	}
}

func TestRecordDay_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		date        string
		flags       map[string]string
		expectedErr string
	}{
		{"missing end", "today", map[string]string{"start": "08:00"}, "Both --start and --end are required"},
		{"bad date", "11-09", map[string]string{"start": "08:00", "end": "17:00"}, "Invalid date '11-09'"},
		{"bad start", "today", map[string]string{"start": "eight", "end": "17:00"}, "Invalid start time 'eight'"},
		{"bad end", "today", map[string]string{"start": "08:00", "end": "25:00"}, "Invalid end time '25:00'"},
		{"bad pause", "today", map[string]string{"start": "08:00", "end": "17:00", "pause": "soon"}, "Invalid pause 'soon'"},
		{"pause not a quarter hour", "today", map[string]string{"start": "08:00", "end": "17:00", "pause": "0.3"}, "quarter hours"},
		{"pause longer than day", "today", map[string]string{"start": "08:00", "end": "09:00", "pause": "2"}, "Failed to record the workday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, stderr := testDeps(t.TempDir())
			exitCalled := false
			d.Exit = func(code int) { exitCalled = true }
			SetDeps(d)
			defer ResetDeps()

			recordDay(dayTestCmd(t, tt.flags), []string{tt.date})

			if !exitCalled {
				t.Error("Expected exit to be called")
			}
			if !strings.Contains(stderr.String(), tt.expectedErr) {
				t.Errorf("Expected %q, got: %s", tt.expectedErr, stderr.String())
			}
			if openTestLedger(t, d).HasRecord(nov10) {
				t.Error("invalid input stored a record")
			}
		})
	}
}

func TestRecordDay_ExistingCancelled(t *testing.T) {
	d, stdout, _ := testDeps(t.TempDir())
	seedDay(t, d, nov9)
	seedProject(t, d, "INEK", 1)
	seedEntry(t, d, nov9, "INEK", 2, "kept")
	d.Stdin = strings.NewReader("n\n")
	SetDeps(d)
	defer ResetDeps()

	recordDay(dayTestCmd(t, map[string]string{"start": "07:00", "end": "15:00"}), []string{"2025-11-09"})

	output := stdout.String()
	if !strings.Contains(output, "Existing record:") || !strings.Contains(output, "Cancelled") {
		t.Errorf("Expected existing record and cancellation, got: %s", output)
	}
	rec, _ := openTestLedger(t, d).Record(nov9)
	if rec.StartTime != record.NewClock(8, 0) || len(rec.ProjectEntries) != 1 {
		t.Errorf("record changed after cancellation: %+v", rec)
	}
}

func TestRecordDay_ExistingConfirmed(t *testing.T) {
	d, stdout, _ := testDeps(t.TempDir())
	seedDay(t, d, nov9)
	seedProject(t, d, "INEK", 1)
	seedEntry(t, d, nov9, "INEK", 2, "dropped")
	d.Stdin = strings.NewReader("y\n")
	SetDeps(d)
	defer ResetDeps()

	recordDay(dayTestCmd(t, map[string]string{"start": "07:00", "end": "15:00"}), []string{"2025-11-09"})

	if !strings.Contains(stdout.String(), "Recorded:") {
		t.Errorf("Expected recorded message, got: %s", stdout.String())
	}
	l := openTestLedger(t, d)
	rec, _ := l.Record(nov9)
	if rec.StartTime != record.NewClock(7, 0) {
		t.Errorf("StartTime = %v, expected 07:00", rec.StartTime)
	}
	if len(rec.ProjectEntries) != 0 {
		t.Errorf("replacement kept %d entries", len(rec.ProjectEntries))
	}
	if n := len(l.Records()); n != 1 {
		t.Errorf("ledger holds %d records, expected 1", n)
	}
}

func TestRecordDay_ExistingWithYes(t *testing.T) {
	d, stdout, _ := testDeps(t.TempDir())
	seedDay(t, d, nov9)
	SetDeps(d)
	defer ResetDeps()

	cmd := dayTestCmd(t, map[string]string{"start": "10:00", "end": "12:00", "yes": "true"})
	recordDay(cmd, []string{"2025-11-09"})

	if strings.Contains(stdout.String(), "[y/N]") {
		t.Errorf("--yes still prompted: %s", stdout.String())
	}
	rec, _ := openTestLedger(t, d).Record(nov9)
	if rec.StartTime != record.NewClock(10, 0) {
		t.Errorf("StartTime = %v, expected 10:00", rec.StartTime)
	}
}

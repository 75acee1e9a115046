package cmd

import (
	"strings"
	"testing"

	"github.com/xolan/ptt/internal/config"
)

func TestLogActivity_Success(t *testing.T) {
	d, stdout, stderr := testDeps(t.TempDir())
	seedDay(t, d, nov9)
	seedProject(t, d, "INEK", 1)
	SetDeps(d)
	defer ResetDeps()

	logActivity([]string{"2025-11-09", "INEK", "3.5", "I", "ran", "a", "test"})

	if stderr.Len() > 0 {
		t.Fatalf("Unexpected stderr: %s", stderr.String())
	}
	output := stdout.String()
	if !strings.Contains(output, "Logged: INEK 3.5h on 2025-11-09") {
		t.Errorf("Expected logged message, got: %s", output)
	}
	if !strings.Contains(output, "allocated 3.5h, remaining 5h") {
		t.Errorf("Expected remaining hours, got: %s", output)
	}

	rec, _ := openTestLedger(t, d).Record(nov9)
	if len(rec.ProjectEntries) != 1 {
		t.Fatalf("record has %d entries, expected 1", len(rec.ProjectEntries))
	}
	if got := rec.ProjectEntries[0].Activity; got != "I ran a test" {
		t.Errorf("Activity = %q, expected %q", got, "I ran a test")
	}
}

func TestLogActivity_DurationAndNoActivity(t *testing.T) {
	d, stdout, _ := testDeps(t.TempDir())
	seedDay(t, d, nov10)
	seedProject(t, d, "B", 0.5)
	SetDeps(d)
	defer ResetDeps()

	logActivity([]string{"today", "B", "1h30m"})

	if !strings.Contains(stdout.String(), "Logged: B 1.5h on 2025-11-10") {
		t.Errorf("Expected logged message, got: %s", stdout.String())
	}
	rec, _ := openTestLedger(t, d).Record(nov10)
	if len(rec.ProjectEntries) != 1 || rec.ProjectEntries[0].Activity != "" {
		t.Errorf("entries = %+v", rec.ProjectEntries)
	}
}

func TestLogActivity_Errors(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		expectedErr  string
		expectedHint string
	}{
		{"no record", []string{"2025-11-08", "INEK", "1"}, "Failed to book the hours", "ptt day"},
		{"no project", []string{"2025-11-09", "NOPE", "1"}, "project does not exist", "ptt project add"},
		{"exceeds remaining", []string{"2025-11-09", "INEK", "9"}, "exceed the remaining hours", "ptt show"},
		{"invalid hours", []string{"2025-11-09", "INEK", "lots"}, "Invalid hours 'lots'", "1h30m"},
		{"zero hours", []string{"2025-11-09", "INEK", "0"}, "Invalid hours '0'", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, stderr := testDeps(t.TempDir())
			seedDay(t, d, nov9)
			seedProject(t, d, "INEK", 1)
			exitCalled := false
			d.Exit = func(code int) { exitCalled = true }
			SetDeps(d)
			defer ResetDeps()

			logActivity(tt.args)

			if !exitCalled {
				t.Error("Expected exit to be called")
			}
			if !strings.Contains(stderr.String(), tt.expectedErr) {
				t.Errorf("Expected %q, got: %s", tt.expectedErr, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.expectedHint) {
				t.Errorf("Expected hint %q, got: %s", tt.expectedHint, stderr.String())
			}
			rec, _ := openTestLedger(t, d).Record(nov9)
			if len(rec.ProjectEntries) != 0 {
				t.Errorf("failed log stored %d entries", len(rec.ProjectEntries))
			}
		})
	}
}

func TestLogActivity_DuplicatePolicies(t *testing.T) {
	tests := []struct {
		policy          string
		expectExit      bool
		expectedEntries int
		expectedHours   float64
		expectedText    string
	}{
		{config.DuplicateAllow, false, 2, 1, "first"},
		{config.DuplicateReject, true, 1, 1, "first"},
		{config.DuplicateMerge, false, 1, 3, "first; second"},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			d, _, stderr := testDeps(t.TempDir())
			d.Config.DuplicateEntries = tt.policy
			seedDay(t, d, nov9)
			seedProject(t, d, "INEK", 1)
			seedEntry(t, d, nov9, "INEK", 1, "first")
			exitCalled := false
			d.Exit = func(code int) { exitCalled = true }
			SetDeps(d)
			defer ResetDeps()

			logActivity([]string{"2025-11-09", "INEK", "2", "second"})

			if exitCalled != tt.expectExit {
				t.Errorf("exit called = %v, expected %v (stderr: %s)", exitCalled, tt.expectExit, stderr.String())
			}
			rec, _ := openTestLedger(t, d).Record(nov9)
			if len(rec.ProjectEntries) != tt.expectedEntries {
				t.Fatalf("record has %d entries, expected %d", len(rec.ProjectEntries), tt.expectedEntries)
			}
			first := rec.ProjectEntries[0]
			if first.Hours != tt.expectedHours || first.Activity != tt.expectedText {
				t.Errorf("first entry = %+v, expected %vh %q", first, tt.expectedHours, tt.expectedText)
			}
		})
	}
}

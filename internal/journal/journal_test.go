package journal

import (
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(filepath.Join(t.TempDir(), "journal", "preswitch.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordTransition(t *testing.T) {
	j := openTestJournal(t)

	if err := j.RecordTransition("idle", "presenting", "auto", "CLASS = Firefox"); err != nil {
		t.Fatalf("RecordTransition failed: %v", err)
	}
	if err := j.RecordTransition("presenting", "idle", "auto", ""); err != nil {
		t.Fatalf("RecordTransition failed: %v", err)
	}

	transitions, err := j.RecentTransitions(10)
	if err != nil {
		t.Fatalf("RecentTransitions failed: %v", err)
	}
	if len(transitions) != 2 {
		t.Fatalf("transitions = %d, want 2", len(transitions))
	}

	// Newest first.
	if transitions[0].To != "idle" || transitions[1].To != "presenting" {
		t.Errorf("unexpected order: %v -> %v", transitions[0].To, transitions[1].To)
	}
	if transitions[1].Reason != "CLASS = Firefox" {
		t.Errorf("reason = %q", transitions[1].Reason)
	}
}

func TestRecentTransitionsLimit(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 7; i++ {
		if err := j.RecordTransition("idle", "presenting", "manual", "toggle"); err != nil {
			t.Fatalf("RecordTransition failed: %v", err)
		}
	}

	transitions, err := j.RecentTransitions(5)
	if err != nil {
		t.Fatalf("RecentTransitions failed: %v", err)
	}
	if len(transitions) != 5 {
		t.Errorf("transitions = %d, want 5", len(transitions))
	}
}

func TestRecordProbeError(t *testing.T) {
	j := openTestJournal(t)

	if err := j.RecordProbeError("no active window found"); err != nil {
		t.Fatalf("RecordProbeError failed: %v", err)
	}
}

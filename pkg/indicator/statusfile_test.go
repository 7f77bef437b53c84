package indicator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatusFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "status.json")
	s := NewStatusFile(path)

	s.SetState(AutoActive)
	s.SetDetail("Interval 9 minutes")

	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	if snap.State != "auto-active" {
		t.Errorf("state = %q, want auto-active", snap.State)
	}
	if snap.Color != "blue" {
		t.Errorf("color = %q, want blue", snap.Color)
	}
	if snap.Detail != "Interval 9 minutes" {
		t.Errorf("detail = %q", snap.Detail)
	}
	if snap.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestStatusFileRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	s := NewStatusFile(path)
	s.SetState(ManualOn)

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("status file still exists")
	}

	// Removing twice is fine.
	if err := s.Remove(); err != nil {
		t.Errorf("second Remove failed: %v", err)
	}
}

func TestStateColors(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{ManualOff, "gray"},
		{ManualOn, "green"},
		{AutoIdle, "gray"},
		{AutoActive, "blue"},
	}

	for _, tt := range tests {
		if got := tt.state.Color(); got != tt.want {
			t.Errorf("%v.Color() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

package mode

import (
	"errors"
	"testing"

	"github.com/skontar/presentation-switch/pkg/indicator"
)

type fakeBackend struct {
	enables   int
	disables  int
	state     bool
	failCalls int // fail this many upcoming Enable/Disable calls
}

func (f *fakeBackend) Enable() error {
	if f.failCalls > 0 {
		f.failCalls--
		return errors.New("xfconf-query exploded")
	}
	f.enables++
	f.state = true
	return nil
}

func (f *fakeBackend) Disable() error {
	if f.failCalls > 0 {
		f.failCalls--
		return errors.New("xfconf-query exploded")
	}
	f.disables++
	f.state = false
	return nil
}

func (f *fakeBackend) State() (bool, error) { return f.state, nil }

type fakeIndicator struct {
	states  []indicator.State
	details []string
}

func (f *fakeIndicator) SetState(state indicator.State) { f.states = append(f.states, state) }
func (f *fakeIndicator) SetDetail(detail string)        { f.details = append(f.details, detail) }

func (f *fakeIndicator) last() indicator.State {
	if len(f.states) == 0 {
		return indicator.State(-1)
	}
	return f.states[len(f.states)-1]
}

func TestToggleManualRoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	ind := &fakeIndicator{}
	c := New(backend, ind)

	enabled, err := c.ToggleManual()
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !enabled {
		t.Fatal("first toggle should enable")
	}
	if ind.last() != indicator.ManualOn {
		t.Errorf("indicator = %v, want manual-on", ind.last())
	}

	enabled, err = c.ToggleManual()
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if enabled {
		t.Fatal("second toggle should disable")
	}
	if ind.last() != indicator.ManualOff {
		t.Errorf("indicator = %v, want manual-off", ind.last())
	}

	// One enable and one disable, never duplicated.
	if backend.enables != 1 || backend.disables != 1 {
		t.Errorf("backend calls = %d enables / %d disables, want 1/1", backend.enables, backend.disables)
	}
}

func TestSetAutomaticIsIdempotentForBackend(t *testing.T) {
	backend := &fakeBackend{}
	ind := &fakeIndicator{}
	c := New(backend, ind)

	if err := c.SetAutomatic(true); err != nil {
		t.Fatalf("SetAutomatic failed: %v", err)
	}
	if err := c.SetAutomatic(true); err != nil {
		t.Fatalf("repeated SetAutomatic failed: %v", err)
	}

	if backend.enables != 1 {
		t.Errorf("enables = %d, want exactly 1", backend.enables)
	}

	// The indicator is still refreshed on the no-op call.
	if len(ind.states) != 2 {
		t.Errorf("indicator updates = %d, want 2", len(ind.states))
	}
	for _, s := range ind.states {
		if s != indicator.AutoActive {
			t.Errorf("indicator state = %v, want auto-active", s)
		}
	}
}

func TestSetAutomaticRetriesAfterBackendFailure(t *testing.T) {
	backend := &fakeBackend{failCalls: 1}
	c := New(backend, &fakeIndicator{})

	if err := c.SetAutomatic(true); err == nil {
		t.Fatal("expected error from failing backend")
	}

	// State still advanced; the next attempt retries the backend call
	// instead of treating it as already applied.
	if !c.AutomaticActive() {
		t.Error("controller state should track the requested value")
	}

	if err := c.SetAutomatic(true); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if backend.enables != 1 {
		t.Errorf("enables = %d, want 1 after retry", backend.enables)
	}
}

func TestInitManualReadsBackendState(t *testing.T) {
	backend := &fakeBackend{state: true}
	ind := &fakeIndicator{}
	c := New(backend, ind)

	if err := c.InitManual(); err != nil {
		t.Fatalf("InitManual failed: %v", err)
	}
	if !c.ManualEnabled() {
		t.Error("controller should pick up the enabled backend state")
	}
	if ind.last() != indicator.ManualOn {
		t.Errorf("indicator = %v, want manual-on", ind.last())
	}

	// Toggling now disables, without a redundant enable first.
	enabled, err := c.ToggleManual()
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if enabled {
		t.Error("toggle from enabled state should disable")
	}
	if backend.enables != 0 || backend.disables != 1 {
		t.Errorf("backend calls = %d/%d, want 0 enables and 1 disable", backend.enables, backend.disables)
	}
}

func TestInitAutomaticOnlyTouchesIndicator(t *testing.T) {
	backend := &fakeBackend{}
	ind := &fakeIndicator{}
	c := New(backend, ind)

	c.InitAutomatic()

	if ind.last() != indicator.AutoIdle {
		t.Errorf("indicator = %v, want auto-idle", ind.last())
	}
	if backend.enables != 0 || backend.disables != 0 {
		t.Error("InitAutomatic must not call the backend")
	}
}

// Package mode owns the presentation-mode state. The controller is the only
// component that talks to the power backend and the status indicator, so
// backend calls stay paired with recorded state no matter who requests a
// change.
package mode

import (
	"fmt"
	"log"

	"github.com/skontar/presentation-switch/pkg/indicator"
	"github.com/skontar/presentation-switch/pkg/power"
)

// Controller tracks the desired presentation-mode state and keeps the
// backend in sync with it. All methods must be called from a single
// goroutine; the monitoring loop owns the controller by construction.
type Controller struct {
	backend power.Backend
	ind     indicator.Indicator

	manualOn bool
	autoOn   bool

	// applied is the state last acknowledged by the backend; nil when
	// unknown (startup, or after a failed call) so the next change retries
	// instead of silently desynchronizing.
	applied *bool
}

// New returns a controller in the disabled state.
func New(backend power.Backend, ind indicator.Indicator) *Controller {
	return &Controller{backend: backend, ind: ind}
}

// InitManual seeds the controller with the backend's actual state, so a
// manual toggle acts on reality rather than assuming "off".
func (c *Controller) InitManual() error {
	state, err := c.backend.State()
	if err != nil {
		return fmt.Errorf("failed to read backend state: %w", err)
	}

	c.manualOn = state
	c.applied = &state
	if state {
		c.ind.SetState(indicator.ManualOn)
	} else {
		c.ind.SetState(indicator.ManualOff)
	}
	return nil
}

// InitAutomatic shows the idle indicator without touching the backend.
func (c *Controller) InitAutomatic() {
	c.ind.SetState(indicator.AutoIdle)
}

// ToggleManual flips the manual presentation-mode state and returns the new
// value. The backend error, if any, is returned after the internal state
// and indicator have been updated.
func (c *Controller) ToggleManual() (bool, error) {
	c.manualOn = !c.manualOn

	if c.manualOn {
		c.ind.SetState(indicator.ManualOn)
	} else {
		c.ind.SetState(indicator.ManualOff)
	}

	return c.manualOn, c.apply(c.manualOn)
}

// SetAutomatic is called by the decision engine on its state transitions.
// Calling it with the current value is a no-op for the backend but still
// refreshes the indicator.
func (c *Controller) SetAutomatic(enabled bool) error {
	c.autoOn = enabled

	if enabled {
		c.ind.SetState(indicator.AutoActive)
	} else {
		c.ind.SetState(indicator.AutoIdle)
	}

	return c.apply(enabled)
}

// SetDetail forwards a detail line to the indicator.
func (c *Controller) SetDetail(detail string) {
	c.ind.SetDetail(detail)
}

// ManualEnabled reports the manual presentation-mode state.
func (c *Controller) ManualEnabled() bool {
	return c.manualOn
}

// AutomaticActive reports whether automatic evaluation has the mode on.
func (c *Controller) AutomaticActive() bool {
	return c.autoOn
}

// apply drives the backend toward target, skipping the call when the
// backend already acknowledged that state. On failure the applied state is
// forgotten so the next attempt retries.
func (c *Controller) apply(target bool) error {
	if c.applied != nil && *c.applied == target {
		return nil
	}

	var err error
	if target {
		err = c.backend.Enable()
	} else {
		err = c.backend.Disable()
	}

	if err != nil {
		c.applied = nil
		log.Printf("Backend call failed (target=%v): %v", target, err)
		return fmt.Errorf("failed to apply presentation mode %v: %w", target, err)
	}

	state := target
	c.applied = &state
	return nil
}

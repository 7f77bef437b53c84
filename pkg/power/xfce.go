package power

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

const (
	xfconfChannelPower    = "xfce4-power-manager"
	xfconfPropertyPresent = "/xfce4-power-manager/presentation-mode"
	xfconfChannelNotifyd  = "xfce4-notifyd"
	xfconfPropertyDND     = "/do-not-disturb"

	commandTimeout = 5 * time.Second
)

// XFCE drives the XFCE presentation-mode property through xfconf-query,
// plus xautolock and (for manual sessions) the notification do-not-disturb
// flag. Missing optional tools are skipped; xfconf-query itself is required.
type XFCE struct {
	// ManageNotifications also toggles do-not-disturb. The automatic mode
	// leaves notifications alone so an unattended activation does not
	// silence the desktop.
	ManageNotifications bool

	hasXautolock bool
}

// NewXFCE returns an XFCE backend. It fails when xfconf-query is not on
// PATH, which callers should treat as an unrecoverable startup error.
func NewXFCE(manageNotifications bool) (*XFCE, error) {
	if _, err := exec.LookPath("xfconf-query"); err != nil {
		return nil, fmt.Errorf("xfconf-query not found: %w", err)
	}

	b := &XFCE{ManageNotifications: manageNotifications}
	if _, err := exec.LookPath("xautolock"); err == nil {
		b.hasXautolock = true
	}
	return b, nil
}

// Enable turns on everything needed for true presentation mode.
func (b *XFCE) Enable() error {
	return b.apply(true)
}

// Disable reverts everything Enable touched.
func (b *XFCE) Disable() error {
	return b.apply(false)
}

func (b *XFCE) apply(state bool) error {
	b.setXautolock(!state)
	if b.ManageNotifications {
		b.setDoNotDisturb(state)
	}
	return b.setPresentationMode(state)
}

// State reads the current presentation-mode property.
func (b *XFCE) State() (bool, error) {
	out, err := b.run("xfconf-query", "-c", xfconfChannelPower, "-p", xfconfPropertyPresent)
	if err != nil {
		return false, fmt.Errorf("failed to read presentation mode: %w", err)
	}

	switch strings.TrimSpace(out) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("unexpected xfconf output %q", strings.TrimSpace(out))
}

func (b *XFCE) setPresentationMode(state bool) error {
	_, err := b.run("xfconf-query",
		"-c", xfconfChannelPower,
		"-p", xfconfPropertyPresent,
		"-s", fmt.Sprintf("%t", state))
	if err != nil {
		return fmt.Errorf("failed to set presentation mode: %w", err)
	}
	return nil
}

// setXautolock enables or disables the automatic screen locker. Best
// effort: systems without xautolock still get presentation mode.
func (b *XFCE) setXautolock(enabled bool) {
	if !b.hasXautolock {
		return
	}

	arg := "-disable"
	if enabled {
		arg = "-enable"
	}
	if _, err := b.run("xautolock", arg); err != nil {
		log.Printf("xautolock %s failed: %v", arg, err)
	}
}

// setDoNotDisturb toggles the xfce4-notifyd do-not-disturb flag. Best
// effort as well: not every setup runs xfce4-notifyd.
func (b *XFCE) setDoNotDisturb(state bool) {
	_, err := b.run("xfconf-query",
		"-c", xfconfChannelNotifyd,
		"-p", xfconfPropertyDND,
		"-s", fmt.Sprintf("%t", state))
	if err != nil {
		log.Printf("do-not-disturb update failed: %v", err)
	}
}

// run executes a command with a bounded timeout so a wedged helper tool
// cannot stall the sampling loop.
func (b *XFCE) run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Package engine implements the automatic-mode decision loop: sample the
// focused window, match it against the configured conditions, accumulate
// evidence, and flip presentation mode once the threshold holds.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/skontar/presentation-switch/internal/config"
	"github.com/skontar/presentation-switch/internal/journal"
	"github.com/skontar/presentation-switch/internal/mode"
	"github.com/skontar/presentation-switch/pkg/probe"
)

// State is the engine's automatic-mode state.
type State int

const (
	// StateIdle: conditions are not holding; presentation mode is off.
	StateIdle State = iota
	// StatePresenting: conditions held often enough; presentation mode is on.
	StatePresenting
)

func (s State) String() string {
	if s == StatePresenting {
		return "presenting"
	}
	return "idle"
}

// Engine runs the sampling loop. All decision state lives on the loop
// goroutine; the only cross-goroutine entry point is Stop.
type Engine struct {
	cfg      *config.Config
	probe    probe.Probe
	ctrl     *mode.Controller
	journal  *journal.Journal // may be nil
	evidence *Evidence
	state    State
	stopChan chan struct{}
	stopOnce sync.Once
}

// New builds an engine from a validated configuration. The journal is
// optional.
func New(cfg *config.Config, pr probe.Probe, ctrl *mode.Controller, jr *journal.Journal) *Engine {
	return &Engine{
		cfg:      cfg,
		probe:    pr,
		ctrl:     ctrl,
		journal:  jr,
		evidence: NewEvidence(cfg.WindowCapacity()),
		state:    StateIdle,
		stopChan: make(chan struct{}),
	}
}

// Run drives the sampling loop until the context is cancelled or Stop is
// called. The first sample is taken one period after start.
func (e *Engine) Run(ctx context.Context) error {
	log.Printf("Starting monitor: %s", e.cfg)
	e.ctrl.InitAutomatic()
	e.ctrl.SetDetail(e.detail(nil))

	ticker := time.NewTicker(e.cfg.SamplePeriod())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Monitor stopped by context")
			return ctx.Err()

		case <-e.stopChan:
			log.Println("Monitor stopped")
			return nil

		case <-ticker.C:
			e.tick()
		}
	}
}

// Stop ends the loop after the current tick. It is safe to call from any
// goroutine, any number of times.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopChan) })
}

// State returns the engine's current automatic-mode state.
func (e *Engine) State() State {
	return e.state
}

// tick performs one sample-match-decide cycle. A failed sample counts as a
// non-match; nothing in here may abort the loop.
func (e *Engine) tick() {
	matched := false
	var reasons []string

	info, err := e.probe.ActiveWindow()
	if err != nil {
		e.debugf("probe: %v", err)
		e.journalProbeError(err)
	} else if info != nil {
		matched, reasons = e.cfg.Conditions.Match(*info)
		if matched && info.Title != "" {
			reasons = append([]string{info.Title}, reasons...)
		}
	}

	e.evidence.Record(matched)
	e.debugf("sample matched=%v hits=%d/%d", matched, e.evidence.Hits(), e.cfg.Monitor.Checks)
	e.ctrl.SetDetail(e.detail(reasons))

	e.transition(strings.Join(reasons, " | "))
}

// transition applies the threshold rule. The disable threshold is the
// inverse of the enable threshold; internal state always advances even when
// the backend call fails, and the controller retries on the next change.
func (e *Engine) transition(reason string) {
	hits := e.evidence.Hits()

	switch e.state {
	case StateIdle:
		if hits >= e.cfg.Monitor.Checks {
			e.state = StatePresenting
			log.Printf("Conditions held %d times within interval, enabling presentation mode", hits)
			if err := e.ctrl.SetAutomatic(true); err != nil {
				log.Printf("Enable failed: %v", err)
			}
			e.journalTransition(StateIdle, StatePresenting, reason)
		}

	case StatePresenting:
		if hits < e.cfg.Monitor.Checks {
			e.state = StateIdle
			log.Printf("Conditions no longer hold (%d/%d), disabling presentation mode", hits, e.cfg.Monitor.Checks)
			if err := e.ctrl.SetAutomatic(false); err != nil {
				log.Printf("Disable failed: %v", err)
			}
			e.journalTransition(StatePresenting, StateIdle, reason)
		}
	}
}

// detail builds the indicator tooltip line: the interval plus the current
// match evidence.
func (e *Engine) detail(reasons []string) string {
	detail := fmt.Sprintf("Interval %d minutes", e.cfg.Monitor.IntervalMinutes)
	if len(reasons) > 0 {
		detail += "\n" + strings.Join(reasons, " | ")
	}
	detail += fmt.Sprintf(" => %d/%d", e.evidence.Hits(), e.cfg.Monitor.Checks)
	return detail
}

func (e *Engine) journalTransition(from, to State, reason string) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordTransition(from.String(), to.String(), "auto", reason); err != nil {
		log.Printf("Failed to journal transition: %v", err)
	}
}

func (e *Engine) journalProbeError(probeErr error) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordProbeError(probeErr.Error()); err != nil {
		log.Printf("Failed to journal probe error: %v", err)
	}
}

func (e *Engine) debugf(format string, args ...interface{}) {
	if e.cfg.Verbose {
		log.Printf(format, args...)
	}
}

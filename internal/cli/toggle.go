package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skontar/presentation-switch/internal/journal"
	"github.com/skontar/presentation-switch/internal/mode"
	"github.com/skontar/presentation-switch/pkg/indicator"
	"github.com/skontar/presentation-switch/pkg/power"
)

// runToggle implements the manual mode: flip presentation mode based on the
// backend's actual state. When the toggle enables the mode, the process
// stays resident until the mode is disabled again, either externally or by
// a signal.
func runToggle() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Manual sessions also silence notifications.
	backend, err := power.NewXFCE(true)
	if err != nil {
		return fmt.Errorf("power backend unavailable: %w", err)
	}

	status := indicator.NewStatusFile(cfg.StatusFilePath())
	ctrl := mode.New(backend, indicator.Multi{indicator.NewLog(), status})

	if err := ctrl.InitManual(); err != nil {
		return err
	}

	var jr *journal.Journal
	if cfg.Journal.Enabled {
		if jr, err = journal.Open(cfg.JournalPath()); err != nil {
			log.Printf("Journal disabled: %v", err)
			jr = nil
		} else {
			defer jr.Close()
		}
	}

	wasOn := ctrl.ManualEnabled()
	enabled, err := ctrl.ToggleManual()
	if err != nil {
		return err
	}
	recordManualTransition(jr, wasOn, enabled)

	if !enabled {
		notify("Presentation mode OFF")
		fmt.Println("Presentation mode OFF")
		return status.Remove()
	}

	notify("Presentation mode ON")
	fmt.Println("Presentation mode ON")

	watchExternalDisable(ctrl, backend)

	// Leaving the resident session always reverts presentation mode.
	if ctrl.ManualEnabled() {
		wasOn = true
		if _, err := ctrl.ToggleManual(); err != nil {
			log.Printf("Failed to disable presentation mode on exit: %v", err)
		}
		recordManualTransition(jr, wasOn, false)
		notify("Presentation mode OFF")
	}
	return status.Remove()
}

// watchExternalDisable blocks while presentation mode stays on, polling the
// backend once per second so an external disable (power manager settings,
// another preswitch run) ends this session too.
func watchExternalDisable(ctrl *mode.Controller, backend power.Backend) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			log.Println("Received shutdown signal")
			return

		case <-ticker.C:
			state, err := backend.State()
			if err != nil {
				log.Printf("Failed to read backend state: %v", err)
				continue
			}
			if !state {
				log.Println("Presentation mode disabled externally")
				ctrl.SetDetail("disabled externally")
				return
			}
		}
	}
}

func recordManualTransition(jr *journal.Journal, from, to bool) {
	if jr == nil {
		return
	}

	name := func(on bool) string {
		if on {
			return "enabled"
		}
		return "disabled"
	}
	if err := jr.RecordTransition(name(from), name(to), "manual", "toggle"); err != nil {
		log.Printf("Failed to journal transition: %v", err)
	}
}

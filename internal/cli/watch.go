package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skontar/presentation-switch/internal/daemon"
	"github.com/skontar/presentation-switch/internal/engine"
	"github.com/skontar/presentation-switch/internal/journal"
	"github.com/skontar/presentation-switch/internal/mode"
	"github.com/skontar/presentation-switch/pkg/indicator"
	"github.com/skontar/presentation-switch/pkg/power"
	"github.com/skontar/presentation-switch/pkg/probe/x11"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the automatic presentation-mode monitor",
	Long: `Watch the focused window and enable presentation mode whenever the
configured conditions hold often enough within the check interval.
Equivalent to running preswitch --auto.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pidFile := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := pidFile.Running()
	if err != nil {
		return fmt.Errorf("failed to check monitor status: %w", err)
	}
	if running {
		return fmt.Errorf("monitor is already running (PID %d)", pid)
	}

	// Automatic mode leaves notifications alone.
	backend, err := power.NewXFCE(false)
	if err != nil {
		return fmt.Errorf("power backend unavailable: %w", err)
	}
	if _, err := backend.State(); err != nil {
		return fmt.Errorf("power backend unavailable: %w", err)
	}

	pr, err := x11.New()
	if err != nil {
		return fmt.Errorf("failed to initialize window probe: %w", err)
	}
	defer pr.Close()

	var jr *journal.Journal
	if cfg.Journal.Enabled {
		if jr, err = journal.Open(cfg.JournalPath()); err != nil {
			log.Printf("Journal disabled: %v", err)
			jr = nil
		} else {
			defer jr.Close()
		}
	}

	status := indicator.NewStatusFile(cfg.StatusFilePath())
	ctrl := mode.New(backend, indicator.Multi{indicator.NewLog(), status})
	eng := engine.New(cfg, pr, ctrl, jr)

	if err := pidFile.Write(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer pidFile.Remove()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
		eng.Stop()
	}()

	if err := eng.Run(ctx); err != nil && err != context.Canceled {
		return err
	}

	// Never leave presentation mode stuck on after the monitor exits.
	if err := ctrl.SetAutomatic(false); err != nil {
		log.Printf("Failed to disable presentation mode on exit: %v", err)
	}
	if err := status.Remove(); err != nil {
		log.Printf("Failed to remove status file: %v", err)
	}

	log.Println("Monitor stopped successfully")
	return nil
}

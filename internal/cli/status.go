package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skontar/presentation-switch/internal/daemon"
	"github.com/skontar/presentation-switch/internal/journal"
	"github.com/skontar/presentation-switch/pkg/power"
	"github.com/skontar/presentation-switch/pkg/probe/x11"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show monitor state, backend state and the focused window",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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
		fmt.Printf("Monitor: running (PID %d)\n", pid)
		fmt.Printf("  Interval: %d minutes, checks: %d, sample period: %v\n",
			cfg.Monitor.IntervalMinutes, cfg.Monitor.Checks, cfg.SamplePeriod())
	} else {
		fmt.Println("Monitor: not running")
	}

	if backend, err := power.NewXFCE(false); err != nil {
		fmt.Printf("Presentation mode: unavailable (%v)\n", err)
	} else if state, err := backend.State(); err != nil {
		fmt.Printf("Presentation mode: unavailable (%v)\n", err)
	} else if state {
		fmt.Println("Presentation mode: ON")
	} else {
		fmt.Println("Presentation mode: OFF")
	}

	printActiveWindow()
	printRecentTransitions(cfg.Journal.Enabled, cfg.JournalPath())

	return nil
}

func printActiveWindow() {
	pr, err := x11.New()
	if err != nil {
		fmt.Printf("\nCould not query windows: %v\n", err)
		return
	}
	defer pr.Close()

	info, err := pr.ActiveWindow()
	if err != nil || info == nil {
		fmt.Println("\nNo active window")
		return
	}

	fmt.Println("\nActive window:")
	fmt.Printf("  Title: %s\n", info.Title)
	fmt.Printf("  Class: %s (%s)\n", info.Class, info.Instance)
	if info.FullscreenKnown {
		fmt.Printf("  Fullscreen: %v\n", info.Fullscreen)
	}
	if info.CPUKnown {
		fmt.Printf("  CPU: %.1f%%\n", info.CPU)
	}
}

func printRecentTransitions(enabled bool, path string) {
	if !enabled {
		return
	}

	jr, err := journal.Open(path)
	if err != nil {
		return
	}
	defer jr.Close()

	transitions, err := jr.RecentTransitions(5)
	if err != nil || len(transitions) == 0 {
		return
	}

	fmt.Println("\nRecent transitions:")
	for _, t := range transitions {
		fmt.Printf("  %s  %s -> %s (%s)\n",
			t.Timestamp.Format("2006-01-02 15:04:05"), t.From, t.To, t.Source)
	}
}

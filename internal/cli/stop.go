package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skontar/presentation-switch/internal/daemon"
)

func init() {
	rootCmd.AddCommand(stopCmd)
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running monitor",
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pidFile := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := pidFile.Running()
	if err != nil {
		return fmt.Errorf("failed to check monitor status: %w", err)
	}
	if !running {
		fmt.Println("Monitor is not running")
		return nil
	}

	fmt.Printf("Stopping monitor (PID %d)...\n", pid)
	if err := pidFile.Stop(); err != nil {
		return err
	}

	fmt.Println("Monitor stopped")
	return nil
}

// Package cli implements the preswitch command-line interface using Cobra.
// Running without arguments toggles presentation mode; --auto (or the watch
// subcommand) starts the automatic monitor instead.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skontar/presentation-switch/internal/config"
)

var (
	configPath string
	autoMode   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "preswitch",
	Short: "Toggle and automatically manage XFCE presentation mode",
	Long: `preswitch controls XFCE presentation mode: it disables the screensaver
and all monitor energy saving utilities.

Without flags it toggles presentation mode for the current session.
With --auto it watches the focused window and enables presentation mode
whenever the configured conditions hold often enough within the check
interval.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/preswitch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&autoMode, "auto", "a", false, "enable automatic mode")
}

// Execute runs the root command. Called from main.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if autoMode {
		return runWatch(cmd, args)
	}
	return runToggle()
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

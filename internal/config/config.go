// Package config loads and validates the presentation-switch configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration. It is loaded once at startup
// and stays fixed for the lifetime of the process.
type Config struct {
	// Monitor configuration
	Monitor MonitorConfig `toml:"monitor"`

	// Conditions that activate presentation mode in automatic mode
	Conditions ConditionSet `toml:"conditions"`

	// Journal configuration
	Journal JournalConfig `toml:"journal"`

	// Daemon process configuration
	Daemon DaemonConfig `toml:"daemon"`

	// StatusFile is where the current indicator state is published
	StatusFile string `toml:"status_file"`

	// Verbose enables per-tick debug logging
	Verbose bool `toml:"verbose"`
}

// MonitorConfig controls the automatic-mode sampling loop.
type MonitorConfig struct {
	IntervalMinutes     int `toml:"interval_minutes"`      // sliding evidence window span
	Checks              int `toml:"checks"`                // matches within the window required to activate
	SamplePeriodSeconds int `toml:"sample_period_seconds"` // 0 means interval*60/checks
}

// JournalConfig controls the transition/diagnostic journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty means the default under ~/.config
}

// DaemonConfig holds daemon process configuration.
type DaemonConfig struct {
	PIDFile string `toml:"pid_file"`
}

// Default returns a Config with the stock rule set: Firefox playing video
// (high CPU) keeps the screen awake.
func Default() *Config {
	firefox := "Firefox"
	cpu := 15.0
	return &Config{
		Monitor: MonitorConfig{
			IntervalMinutes: 9,
			Checks:          3,
		},
		Conditions: ConditionSet{
			{WMClass: &firefox, CPU: &cpu},
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/preswitch-%d.pid", os.Getuid()),
		},
		StatusFile: "",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "preswitch", "config.toml")
}

// Load reads the config file at path (or the default location when path is
// empty) over the defaults. A missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, cfg.Validate()
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// A misspelled key would otherwise be dropped silently; worst case a
	// condition loses all its fields and matches every window.
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SamplePeriod returns the time between samples. Unless overridden it is
// interval/checks, so a full evidence window holds exactly `checks` samples.
func (c *Config) SamplePeriod() time.Duration {
	if c.Monitor.SamplePeriodSeconds > 0 {
		return time.Duration(c.Monitor.SamplePeriodSeconds) * time.Second
	}
	return time.Duration(c.Monitor.IntervalMinutes) * time.Minute / time.Duration(c.Monitor.Checks)
}

// WindowCapacity returns how many samples fit in one interval, which is the
// evidence window size.
func (c *Config) WindowCapacity() int {
	interval := time.Duration(c.Monitor.IntervalMinutes) * time.Minute
	return int(interval / c.SamplePeriod())
}

// Validate checks the configuration. Failures here are fatal at startup,
// before the monitoring loop is entered.
func (c *Config) Validate() error {
	if c.Monitor.IntervalMinutes < 1 {
		return fmt.Errorf("interval_minutes must be at least 1, got %d", c.Monitor.IntervalMinutes)
	}

	if c.Monitor.Checks < 1 {
		return fmt.Errorf("checks must be at least 1, got %d", c.Monitor.Checks)
	}

	if c.Monitor.SamplePeriodSeconds < 0 {
		return fmt.Errorf("sample_period_seconds cannot be negative")
	}

	if c.SamplePeriod() < time.Second {
		return fmt.Errorf("sample period %v is below 1s", c.SamplePeriod())
	}

	if capacity := c.WindowCapacity(); c.Monitor.Checks > capacity {
		return fmt.Errorf("checks (%d) exceeds samples per interval (%d)", c.Monitor.Checks, capacity)
	}

	for i, cond := range c.Conditions {
		if cond.CPU != nil && *cond.CPU < 0 {
			return fmt.Errorf("condition %d: cpu threshold cannot be negative", i)
		}
		if cond.WMClass != nil && *cond.WMClass == "" {
			return fmt.Errorf("condition %d: wm_class cannot be empty", i)
		}
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("pid_file cannot be empty")
	}

	return nil
}

// JournalPath resolves the journal location, defaulting next to the config.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "preswitch", "preswitch.db")
}

// StatusFilePath resolves the indicator status file location.
func (c *Config) StatusFilePath() string {
	if c.StatusFile != "" {
		return c.StatusFile
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "preswitch", "status.json")
}

// String returns a short, loggable summary of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("interval=%dm checks=%d period=%v conditions=%d journal=%v",
		c.Monitor.IntervalMinutes,
		c.Monitor.Checks,
		c.SamplePeriod(),
		len(c.Conditions),
		c.Journal.Enabled,
	)
}

// Package daemon manages the watch daemon's PID file so a second invocation
// can detect or stop a running monitor.
package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile tracks the monitor process identity on disk.
type PIDFile struct {
	path string
}

// New returns a PIDFile at the given path.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Write records the current process PID.
func (p *PIDFile) Write() error {
	return os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// Read returns the recorded PID, or 0 when no PID file exists.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in %s: %w", p.path, err)
	}
	return pid, nil
}

// Remove deletes the PID file. Missing files are not an error.
func (p *PIDFile) Remove() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Running reports whether the recorded process is still alive. A stale PID
// file is cleaned up along the way.
func (p *PIDFile) Running() (bool, int, error) {
	pid, err := p.Read()
	if err != nil {
		return false, 0, err
	}
	if pid == 0 {
		return false, 0, nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0, nil
	}

	if err := process.Signal(syscall.Signal(0)); err != nil {
		p.Remove()
		return false, 0, nil
	}

	return true, pid, nil
}

// Stop sends SIGTERM to the recorded process and removes the PID file.
func (p *PIDFile) Stop() error {
	running, pid, err := p.Running()
	if err != nil {
		return fmt.Errorf("error checking monitor status: %w", err)
	}
	if !running {
		return fmt.Errorf("monitor is not running")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err.Error() == "os: process already finished" {
			_ = p.Remove()
			return fmt.Errorf("monitor process already terminated")
		}
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	return p.Remove()
}

// Package power abstracts the system facilities that implement
// presentation mode: screensaver suppression and monitor power saving.
package power

// Backend toggles the platform's presentation mode. Calls are synchronous,
// expected to be fast, and idempotent at the OS level.
type Backend interface {
	// Enable turns presentation mode on: screensaver and power saving
	// are suppressed until Disable is called.
	Enable() error

	// Disable turns presentation mode off.
	Disable() error

	// State reads the backend's current presentation-mode setting.
	State() (bool, error)
}

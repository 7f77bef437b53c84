package probe

// WindowInfo is a snapshot of the focused window taken on one sample tick.
// Fields the probe could not determine are marked unknown: an empty Class
// and Instance mean WM_CLASS was unreadable, PID 0 means the window did not
// advertise its process, and the *Known flags qualify Fullscreen and CPU.
type WindowInfo struct {
	Title    string
	Instance string // first WM_CLASS string
	Class    string // second WM_CLASS string
	PID      uint32

	Fullscreen      bool
	FullscreenKnown bool

	CPU      float64 // percent of a single core since the previous sample
	CPUKnown bool
}

// Probe reports the currently focused window. Implementations must treat
// the transient absence of a focused window as an error return, never as a
// panic or a fatal condition.
type Probe interface {
	// ActiveWindow returns a snapshot of the focused window, or an error
	// if there is none or the window system could not be queried.
	ActiveWindow() (*WindowInfo, error)

	// Close releases any resources held by the probe.
	Close() error
}

// Package indicator abstracts the visual presentation-mode indicator. The
// engine only deals in abstract states; rendering (tray icon, colors) is
// left to whatever consumes them.
package indicator

// State enumerates what the indicator can show.
type State int

const (
	// ManualOff: process ran as a manual toggle and presentation mode is off.
	ManualOff State = iota
	// ManualOn: presentation mode was enabled by a manual toggle.
	ManualOn
	// AutoIdle: automatic mode is watching but has not activated.
	AutoIdle
	// AutoActive: automatic mode has enabled presentation mode.
	AutoActive
)

func (s State) String() string {
	switch s {
	case ManualOff:
		return "manual-off"
	case ManualOn:
		return "manual-on"
	case AutoIdle:
		return "auto-idle"
	case AutoActive:
		return "auto-active"
	default:
		return "unknown"
	}
}

// Color returns the conventional icon color for a state. Kept here so every
// renderer agrees: green for a manual session, gray while idle, blue when
// automatic mode has activated.
func (s State) Color() string {
	switch s {
	case ManualOn:
		return "green"
	case AutoActive:
		return "blue"
	default:
		return "gray"
	}
}

// Indicator renders the presentation-mode state. Implementations receive no
// feedback from the engine and must never block it.
type Indicator interface {
	// SetState updates the displayed state.
	SetState(state State)

	// SetDetail updates the free-form detail line (tooltip text).
	SetDetail(detail string)
}

// Multi fans updates out to several indicators.
type Multi []Indicator

func (m Multi) SetState(state State) {
	for _, ind := range m {
		ind.SetState(state)
	}
}

func (m Multi) SetDetail(detail string) {
	for _, ind := range m {
		ind.SetDetail(detail)
	}
}

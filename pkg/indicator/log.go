package indicator

import "log"

// Log writes state changes to the process log. Repeated updates with the
// same state are not logged again.
type Log struct {
	last    State
	started bool
}

// NewLog returns a logging indicator.
func NewLog() *Log {
	return &Log{}
}

func (l *Log) SetState(state State) {
	if l.started && state == l.last {
		return
	}
	l.last = state
	l.started = true
	log.Printf("Indicator: %s (%s)", state, state.Color())
}

func (l *Log) SetDetail(detail string) {
	if detail != "" {
		log.Printf("Indicator detail: %s", detail)
	}
}

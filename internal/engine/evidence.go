package engine

// Evidence is a fixed-capacity ring of recent match results spanning one
// check interval. It answers the threshold question in O(1) by keeping a
// running hit count.
type Evidence struct {
	slots  []bool
	head   int // next slot to overwrite
	length int
	hits   int
}

// NewEvidence returns an empty evidence window. Capacity must be positive;
// config validation guarantees that before an engine is built.
func NewEvidence(capacity int) *Evidence {
	if capacity < 1 {
		capacity = 1
	}
	return &Evidence{slots: make([]bool, capacity)}
}

// Record appends one match result, evicting the oldest entry when the
// window is full.
func (e *Evidence) Record(matched bool) {
	if e.length == len(e.slots) {
		if e.slots[e.head] {
			e.hits--
		}
	} else {
		e.length++
	}

	e.slots[e.head] = matched
	if matched {
		e.hits++
	}
	e.head = (e.head + 1) % len(e.slots)
}

// Hits returns how many of the recorded samples matched.
func (e *Evidence) Hits() int {
	return e.hits
}

// Len returns how many samples the window currently holds.
func (e *Evidence) Len() int {
	return e.length
}

// Cap returns the window capacity.
func (e *Evidence) Cap() int {
	return len(e.slots)
}

// Reset discards all recorded samples.
func (e *Evidence) Reset() {
	for i := range e.slots {
		e.slots[i] = false
	}
	e.head = 0
	e.length = 0
	e.hits = 0
}

package engine

import "testing"

func TestEvidenceThresholdOnPartialWindow(t *testing.T) {
	// Threshold is an absolute count, reachable before the window fills.
	const checks = 3
	e := NewEvidence(10)

	for i := 0; i < checks-1; i++ {
		e.Record(true)
	}
	if e.Hits() >= checks {
		t.Errorf("hits = %d after %d true samples, threshold should not hold", e.Hits(), checks-1)
	}

	e.Record(true)
	if e.Hits() < checks {
		t.Errorf("hits = %d after %d true samples, threshold should hold", e.Hits(), checks)
	}
	if e.Len() != checks {
		t.Errorf("Len() = %d, want %d", e.Len(), checks)
	}
}

func TestEvidenceEviction(t *testing.T) {
	e := NewEvidence(3)

	// Fill with matches, then push them out with misses one by one.
	for i := 0; i < 3; i++ {
		e.Record(true)
	}
	if e.Hits() != 3 {
		t.Fatalf("hits = %d, want 3", e.Hits())
	}

	e.Record(false)
	if e.Hits() != 2 {
		t.Errorf("hits after one miss = %d, want 2", e.Hits())
	}
	e.Record(false)
	e.Record(false)
	if e.Hits() != 0 {
		t.Errorf("hits after three misses = %d, want 0", e.Hits())
	}

	if e.Len() != e.Cap() {
		t.Errorf("Len() = %d, want capacity %d", e.Len(), e.Cap())
	}
}

func TestEvidenceLengthNeverExceedsCapacity(t *testing.T) {
	e := NewEvidence(4)

	for i := 0; i < 100; i++ {
		e.Record(i%3 == 0)
		if e.Len() > e.Cap() {
			t.Fatalf("Len() = %d exceeds capacity %d", e.Len(), e.Cap())
		}
		if e.Hits() > e.Len() {
			t.Fatalf("Hits() = %d exceeds Len() %d", e.Hits(), e.Len())
		}
	}
}

func TestEvidenceOldestEvictedFirst(t *testing.T) {
	e := NewEvidence(3)

	e.Record(true)
	e.Record(false)
	e.Record(false)
	// Window: [true false false]. Recording a miss evicts the true.
	e.Record(false)
	if e.Hits() != 0 {
		t.Errorf("hits = %d, want 0 after the match was evicted", e.Hits())
	}

	// Window: [false false false]. A match replaces the oldest miss.
	e.Record(true)
	if e.Hits() != 1 {
		t.Errorf("hits = %d, want 1", e.Hits())
	}
}

func TestEvidenceReset(t *testing.T) {
	e := NewEvidence(3)
	e.Record(true)
	e.Record(true)

	e.Reset()
	if e.Hits() != 0 || e.Len() != 0 {
		t.Errorf("after Reset: hits=%d len=%d, want 0/0", e.Hits(), e.Len())
	}
	if e.Cap() != 3 {
		t.Errorf("Reset changed capacity: %d", e.Cap())
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/skontar/presentation-switch/pkg/probe"
)

// Condition is one activation rule. All present fields must hold for the
// rule to match; absent fields are ignored. A condition with no fields set
// matches every window.
type Condition struct {
	WMClass    *string  `toml:"wm_class"`   // matched against either WM_CLASS string, case sensitive
	Fullscreen *bool    `toml:"fullscreen"` // _NET_WM_STATE_FULLSCREEN presence
	CPU        *float64 `toml:"cpu"`        // minimum CPU percentage
}

// Matches reports whether every present field of the condition holds for w.
// A field the probe could not determine never satisfies a requirement.
func (c Condition) Matches(w probe.WindowInfo) bool {
	ok, _ := c.match(w)
	return ok
}

func (c Condition) match(w probe.WindowInfo) (bool, []string) {
	var reasons []string

	if c.WMClass != nil {
		if w.Class == "" && w.Instance == "" {
			return false, nil
		}
		if w.Class != *c.WMClass && w.Instance != *c.WMClass {
			return false, nil
		}
		reasons = append(reasons, "CLASS = "+*c.WMClass)
	}

	if c.Fullscreen != nil {
		if !w.FullscreenKnown || w.Fullscreen != *c.Fullscreen {
			return false, nil
		}
		if *c.Fullscreen {
			reasons = append(reasons, "FULLSCREEN")
		} else {
			reasons = append(reasons, "NOT FULLSCREEN")
		}
	}

	if c.CPU != nil {
		if !w.CPUKnown || w.CPU < *c.CPU {
			return false, nil
		}
		reasons = append(reasons, fmt.Sprintf("CPU = %.1f", w.CPU))
	}

	return true, reasons
}

// String describes the rule for log and status output.
func (c Condition) String() string {
	var parts []string
	if c.WMClass != nil {
		parts = append(parts, "wm_class="+*c.WMClass)
	}
	if c.Fullscreen != nil {
		parts = append(parts, fmt.Sprintf("fullscreen=%v", *c.Fullscreen))
	}
	if c.CPU != nil {
		parts = append(parts, fmt.Sprintf("cpu>=%.1f", *c.CPU))
	}
	if len(parts) == 0 {
		return "{any}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ConditionSet matches when at least one of its conditions matches.
// The empty set matches nothing.
type ConditionSet []Condition

// Matches reports whether any condition in the set holds for w.
func (s ConditionSet) Matches(w probe.WindowInfo) bool {
	ok, _ := s.Match(w)
	return ok
}

// Match additionally returns the satisfied-field descriptions of the first
// matching condition, for the indicator detail and the journal.
func (s ConditionSet) Match(w probe.WindowInfo) (bool, []string) {
	for _, c := range s {
		if ok, reasons := c.match(w); ok {
			return true, reasons
		}
	}
	return false, nil
}

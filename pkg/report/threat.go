package report

import (
	"fmt"
	"strings"
)

// ThreatLevel is the overall threat assessment printed on the report gauge.
type ThreatLevel string

const (
	ThreatGuarded  ThreatLevel = "Guarded"
	ThreatElevated ThreatLevel = "Elevated"
	ThreatHigh     ThreatLevel = "High"
	ThreatSevere   ThreatLevel = "Severe"
)

var threatLevels = []ThreatLevel{ThreatGuarded, ThreatElevated, ThreatHigh, ThreatSevere}

// ThreatLevels returns the accepted levels ordered from lowest to highest.
func ThreatLevels() []ThreatLevel {
	out := make([]ThreatLevel, len(threatLevels))
	copy(out, threatLevels)
	return out
}

// ThreatLevelNames returns ThreatLevels as plain strings, handy for select
// widgets and prompts.
func ThreatLevelNames() []string {
	out := make([]string, 0, len(threatLevels))
	for _, level := range threatLevels {
		out = append(out, string(level))
	}
	return out
}

// ParseThreatLevel accepts one of the four level names. Matching is exact
// apart from surrounding whitespace; the names are shown verbatim in the
// report so "high" is not silently promoted to "High".
func ParseThreatLevel(raw string) (ThreatLevel, error) {
	candidate := ThreatLevel(strings.TrimSpace(raw))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrInvalidThreatLevel, raw, strings.Join(ThreatLevelNames(), ", "))
}

// Valid reports whether t is one of the enumerated levels.
func (t ThreatLevel) Valid() bool {
	for _, level := range threatLevels {
		if t == level {
			return true
		}
	}
	return false
}

// Index returns the zero based position of t on the gauge, or -1.
func (t ThreatLevel) Index() int {
	for i, level := range threatLevels {
		if t == level {
			return i
		}
	}
	return -1
}

func (t ThreatLevel) String() string { return string(t) }

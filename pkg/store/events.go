package store

import (
	"fmt"

	"github.com/goliatone/go-socreport/pkg/report"
)

// Event describes one change to the session report.
type Event interface {
	apply(report.Report) (report.Report, error)
	Name() string
}

// FieldChanged is emitted by an input widget when its value changes.
type FieldChanged struct {
	Field report.Field
	Value any
}

func (e FieldChanged) Name() string { return "field_changed" }

func (e FieldChanged) apply(current report.Report) (report.Report, error) {
	return current.Set(e.Field.String(), e.Value)
}

// Replaced swaps the whole document, e.g. after a JSON import.
type Replaced struct {
	Report report.Report
}

func (e Replaced) Name() string { return "replaced" }

func (e Replaced) apply(current report.Report) (report.Report, error) {
	if err := e.Report.Validate(); err != nil {
		return current, err
	}
	return e.Report, nil
}

// Reset restores the session start document.
type Reset struct{}

func (Reset) Name() string { return "reset" }

func (Reset) apply(report.Report) (report.Report, error) {
	return report.Default(), nil
}

// Reduce computes the report that results from applying ev to state. It is a
// pure function; state is returned unchanged alongside any error.
func Reduce(state report.Report, ev Event) (report.Report, error) {
	if ev == nil {
		return state, fmt.Errorf("store: event is required")
	}
	next, err := ev.apply(state)
	if err != nil {
		return state, err
	}
	return next, nil
}

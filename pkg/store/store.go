package store

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-socreport/pkg/report"
)

// Listener observes successful changes.
type Listener func(ev Event, next report.Report)

// Store owns one live Report.
type Store struct {
	mu        sync.RWMutex
	current   report.Report
	listeners []Listener
}

// New seeds a store with the default report.
func New() *Store {
	return NewWith(report.Default())
}

// NewWith seeds a store with initial. An invalid initial value falls back to
// the default report.
func NewWith(initial report.Report) *Store {
	if initial.Validate() != nil {
		initial = report.Default()
	}
	return &Store{current: initial}
}

// Subscribe registers fn to run after every successful dispatch.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Dispatch reduces ev into the current report.
func (s *Store) Dispatch(ev Event) error {
	s.mu.Lock()
	next, err := Reduce(s.current, ev)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev, next)
	}
	return nil
}

// Snapshot returns a copy of the current report.
func (s *Store) Snapshot() report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get reads the value at a dotted path.
func (s *Store) Get(path string) (any, error) {
	return s.Snapshot().Get(path)
}

// Set assigns the value at a dotted path.
func (s *Store) Set(path string, value any) error {
	return s.Dispatch(FieldChanged{Field: report.Field(path), Value: value})
}

// ReplaceAll swaps in a whole document.
func (s *Store) ReplaceAll(doc report.Report) error {
	return s.Dispatch(Replaced{Report: doc})
}

// Reset restores the default document.
func (s *Store) Reset() error {
	return s.Dispatch(Reset{})
}

// Import parses an exported JSON document and replaces the current report.
// On error the current report is left as it was.
func (s *Store) Import(data []byte) error {
	doc, err := report.Unmarshal(data)
	if err != nil {
		return err
	}
	return s.ReplaceAll(doc)
}

// Export serialises the current report.
func (s *Store) Export() ([]byte, error) {
	data, err := report.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("store: export: %w", err)
	}
	return data, nil
}

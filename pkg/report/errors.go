package report

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned when a dotted path does not address a field.
	ErrKeyNotFound = errors.New("report: key not found")
	// ErrInvalidValue is returned when a value cannot be bound to a field.
	ErrInvalidValue = errors.New("report: invalid value")
	// ErrInvalidThreatLevel is returned for levels outside the enumeration.
	ErrInvalidThreatLevel = errors.New("report: invalid threat level")
	// ErrJSONParse marks import failures; see ParseError.
	ErrJSONParse = errors.New("report: json parse error")
)

// PathError describes a failed lookup or assignment through a dotted path.
type PathError struct {
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Segment != "" && e.Segment != e.Path {
		return fmt.Sprintf("%v: %q (segment %q)", e.Err, e.Path, e.Segment)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

// ParseError wraps any failure to turn an imported payload into a Report.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return ErrJSONParse.Error()
	}
	return fmt.Sprintf("%v: %v", ErrJSONParse, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrJSONParse, e.Err} }

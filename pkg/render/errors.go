package render

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateLoad marks a report template that could not be read or
	// parsed. Callers treat it as fatal.
	ErrTemplateLoad = errors.New("render: template load failed")
	// ErrRender marks a document that could not be rendered.
	ErrRender = errors.New("render: render failed")
)

// TemplateLoadError reports a missing or invalid template at startup.
type TemplateLoadError struct {
	Template string
	Err      error
}

func (e *TemplateLoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v: %s: %v", ErrTemplateLoad, e.Template, e.Err)
}

func (e *TemplateLoadError) Unwrap() []error { return []error{ErrTemplateLoad, e.Err} }

// RenderError reports a document the template could not be applied to.
// Placeholder is set when the template references a field the document lacks.
type RenderError struct {
	Placeholder string
	Err         error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Placeholder != "" {
		return fmt.Sprintf("%v: placeholder %q: %v", ErrRender, e.Placeholder, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrRender, e.Err)
}

func (e *RenderError) Unwrap() []error { return []error{ErrRender, e.Err} }

var errMissingField = errors.New("document has no such field")

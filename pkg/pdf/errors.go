package pdf

import (
	"errors"
	"fmt"
)

// ErrRenderEngine marks any failure of the PDF engine: launch, load, print or
// output validation. Failures are never retried.
var ErrRenderEngine = errors.New("pdf: render engine error")

// EngineError carries the engine name and the step that failed.
type EngineError struct {
	Engine string
	Op     string
	Err    error
}

func (e *EngineError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v: %s %s: %v", ErrRenderEngine, e.Engine, e.Op, e.Err)
}

func (e *EngineError) Unwrap() []error { return []error{ErrRenderEngine, e.Err} }

func engineError(engine, op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *EngineError
	if errors.As(err, &existing) {
		return err
	}
	return &EngineError{Engine: engine, Op: op, Err: err}
}

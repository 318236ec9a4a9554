package server

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-socreport/pkg/pdf"
	"github.com/goliatone/go-socreport/pkg/render"
	"github.com/goliatone/go-socreport/pkg/report"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, report.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, report.ErrInvalidValue), errors.Is(err, report.ErrInvalidThreatLevel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, report.ErrJSONParse):
		return http.StatusBadRequest
	case errors.Is(err, pdf.ErrUnknownEngine):
		return http.StatusBadRequest
	case errors.Is(err, pdf.ErrRenderEngine):
		return http.StatusBadGateway
	case errors.Is(err, render.ErrRender), errors.Is(err, render.ErrTemplateLoad):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if c := httpErr.StatusCode(); c > 0 {
			code = c
		}
	}
	http.Error(w, http.StatusText(code), code)
}

package server

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-socreport/pkg/render/template/gotemplate"
	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/session"
	"github.com/goliatone/go-socreport/pkg/store"
)

// Component bundles the editor handlers with their configuration.
type Component struct {
	opts  Options
	pages *gotemplate.Engine
}

// New constructs a component. An orchestrator is required; sessions default
// to an in-memory manager with the package defaults.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	if opts.Orchestrator == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if opts.Sessions == nil {
		logger := opts.Logger
		opts.Sessions = session.NewManager(session.Options{
			OnCreate: func(s *session.Session) {
				logger.Debug("session created", "session", s.ID)
				s.Store.Subscribe(func(ev store.Event, _ report.Report) {
					logger.Debug("report changed", "session", s.ID, "event", ev.Name())
				})
			},
		})
	}

	pages, err := newPageEngine()
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, pages: pages}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return c.opts
}

// Handler returns the editor as a net/http handler rooted at "/".
func (c *Component) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", c.handleEditor)
	mux.HandleFunc("POST /api/fields", c.handleSetField)
	mux.HandleFunc("GET /api/report", c.handleReport)
	mux.HandleFunc("POST /form", c.handleForm)
	mux.HandleFunc("GET /preview", c.handlePreview)
	mux.HandleFunc("GET /export/json", c.handleExportJSON)
	mux.HandleFunc("GET /export/pdf", c.handleExportPDF)
	mux.HandleFunc("POST /import", c.handleImport)
	mux.HandleFunc("POST /reset", c.handleReset)
	if c.opts.Assets != nil {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(c.opts.Assets)))
	}

	var h http.Handler = mux
	if c.opts.Guard != nil {
		h = guard(c.opts.Guard, h)
	}

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	root.Handle("/", h)
	return logRequests(c.opts.Logger, root)
}

// RegisterRoutes mounts the component under basePath on mux. Links and
// redirects emitted by the handlers use the component's configured base path.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if normaliseBase(basePath) != c.opts.BasePath {
		clone := *c
		clone.opts.BasePath = normaliseBase(basePath)
		return registerHandler(mux, basePath, clone.Handler())
	}
	return registerHandler(mux, basePath, c.Handler())
}

func guard(fn GuardFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

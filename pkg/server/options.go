package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-socreport/pkg/orchestrator"
	"github.com/goliatone/go-socreport/pkg/session"
)

const defaultMaxUploadBytes = 1 << 20

// GuardFunc authorises a request before it reaches a handler. Returning an
// HTTPError selects the response status; any other error yields 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	BasePath       string
	Orchestrator   *orchestrator.Orchestrator
	Sessions       *session.Manager
	Assets         fs.FS
	Engine         string
	MaxUploadBytes int64
	Guard          GuardFunc
	Logger         *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath:       "/",
		MaxUploadBytes: defaultMaxUploadBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	opts.BasePath = normaliseBase(opts.BasePath)
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

func WithSessions(manager *session.Manager) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sessions = manager
	}
}

// WithAssets serves fsys under /assets/.
func WithAssets(fsys fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Assets = fsys
	}
}

// WithEngine selects the PDF engine used for downloads. Empty means the
// orchestrator default.
func WithEngine(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Engine = name
	}
}

func WithMaxUploadBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxUploadBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

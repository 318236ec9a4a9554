package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-socreport/pkg/pdf"
	"github.com/goliatone/go-socreport/pkg/render"
	"github.com/goliatone/go-socreport/pkg/report"
)

const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRenderer injects a loaded renderer. When omitted one is built from the
// options passed to WithRenderOptions.
func WithRenderer(renderer *render.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithRenderOptions configures the renderer built by New.
func WithRenderOptions(options ...render.Option) Option {
	return func(o *Orchestrator) {
		o.renderOptions = append(o.renderOptions, options...)
	}
}

// WithRegistry injects a PDF engine registry.
func WithRegistry(registry *pdf.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithEngineOptions configures the engines of the default registry.
func WithEngineOptions(opts pdf.EngineOptions) Option {
	return func(o *Orchestrator) {
		o.engineOptions = opts
	}
}

// WithDefaultEngine overrides the engine used when ExportPDF is called with an
// empty engine name.
func WithDefaultEngine(name string) Option {
	return func(o *Orchestrator) {
		o.defaultEngine = name
	}
}

// WithLogger sets the logger used for export diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator renders reports and exports them. It is safe for concurrent
// use once constructed.
type Orchestrator struct {
	renderer      *render.Renderer
	renderOptions []render.Option
	registry      *pdf.Registry
	engineOptions pdf.EngineOptions
	defaultEngine string
	logger        *slog.Logger
}

// Artifact is a named, typed export ready to be written or downloaded.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// New constructs an Orchestrator. Missing dependencies are initialised with
// the built-in implementations; a template that fails to load is returned as
// a *render.TemplateLoadError.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultEngine: pdf.DefaultEngine,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.renderer == nil {
		renderer, err := render.New(o.renderOptions...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load template: %w", err)
		}
		o.renderer = renderer
	}
	if o.registry == nil {
		o.registry = pdf.NewDefaultRegistry(o.engineOptions)
	}
	if o.defaultEngine == "" {
		o.defaultEngine = pdf.DefaultEngine
	}
	if !o.registry.Has(o.defaultEngine) {
		return nil, fmt.Errorf("orchestrator: default engine: %w %q", pdf.ErrUnknownEngine, o.defaultEngine)
	}
	return o, nil
}

// Renderer exposes the loaded renderer.
func (o *Orchestrator) Renderer() *render.Renderer { return o.renderer }

// Engines lists the registered PDF engines.
func (o *Orchestrator) Engines() []string { return o.registry.List() }

// DefaultEngine names the engine used when none is requested.
func (o *Orchestrator) DefaultEngine() string { return o.defaultEngine }

// Preview renders the report into HTML.
func (o *Orchestrator) Preview(ctx context.Context, doc report.Report) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	html, err := o.renderer.Render(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("orchestrator: render: %w", err)
	}
	return html, nil
}

// ExportHTML renders the report and packages it as an HTML artifact.
func (o *Orchestrator) ExportHTML(ctx context.Context, doc report.Report) (Artifact, error) {
	html, err := o.Preview(ctx, doc)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    report.ExportFilename(doc.ReportDate, "html"),
		ContentType: ContentTypeHTML,
		Data:        []byte(html),
	}, nil
}

// ExportPDF renders the report and converts it with the named engine. An
// empty engine selects the default. Engine failures wrap pdf.ErrRenderEngine
// and are not retried.
func (o *Orchestrator) ExportPDF(ctx context.Context, doc report.Report, engine string) (Artifact, error) {
	if engine == "" {
		engine = o.defaultEngine
	}
	conv, err := o.registry.Get(engine)
	if err != nil {
		return Artifact{}, fmt.Errorf("orchestrator: %w", err)
	}

	html, err := o.Preview(ctx, doc)
	if err != nil {
		return Artifact{}, err
	}

	started := time.Now()
	data, err := conv.HTMLToPDF(ctx, html)
	if err != nil {
		o.logger.Error("pdf export failed", "engine", engine, "error", err)
		return Artifact{}, fmt.Errorf("orchestrator: export pdf: %w", err)
	}
	o.logger.Debug("pdf exported", "engine", engine, "bytes", len(data), "elapsed", time.Since(started))

	return Artifact{
		Filename:    report.ExportFilename(doc.ReportDate, "pdf"),
		ContentType: ContentTypePDF,
		Data:        data,
	}, nil
}

// ExportJSON serialises the report.
func (o *Orchestrator) ExportJSON(doc report.Report) (Artifact, error) {
	data, err := report.Marshal(doc)
	if err != nil {
		return Artifact{}, fmt.Errorf("orchestrator: export json: %w", err)
	}
	return Artifact{
		Filename:    report.ExportFilename(doc.ReportDate, "json"),
		ContentType: ContentTypeJSON,
		Data:        data,
	}, nil
}

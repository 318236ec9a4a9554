package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-socreport/pkg/render/template"
	"github.com/goliatone/go-socreport/pkg/render/template/gotemplate"
	"github.com/goliatone/go-socreport/pkg/report"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithTemplatePath loads the report template from a file on disk.
func WithTemplatePath(path string) Option {
	return func(r *Renderer) {
		r.templatePath = strings.TrimSpace(path)
	}
}

// WithTemplateFS loads the named report template from fsys.
func WithTemplateFS(fsys fs.FS, name string) Option {
	return func(r *Renderer) {
		r.templateFS = fsys
		r.templateName = strings.TrimSpace(name)
	}
}

// WithGlobals seeds values available to the template under their own keys.
// Report keys take precedence.
func WithGlobals(values map[string]any) Option {
	return func(r *Renderer) {
		for key, value := range values {
			r.globals[key] = value
		}
	}
}

// Renderer turns reports into HTML.
type Renderer struct {
	templatePath string
	templateFS   fs.FS
	templateName string
	globals      map[string]any

	engine       template.TemplateRenderer
	placeholders []string
}

// New loads the template. With no template option the embedded default is
// used. Any failure is returned as a *TemplateLoadError.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{globals: map[string]any{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	var (
		source    []byte
		engineOpt gotemplate.Option
		err       error
	)
	switch {
	case r.templatePath != "":
		r.templateName = filepath.Base(r.templatePath)
		source, err = os.ReadFile(r.templatePath)
		engineOpt = gotemplate.WithBaseDir(filepath.Dir(r.templatePath))
	case r.templateFS != nil:
		if r.templateName == "" {
			r.templateName = DefaultTemplateName
		}
		source, err = fs.ReadFile(r.templateFS, r.templateName)
		engineOpt = gotemplate.WithFS(r.templateFS)
	default:
		r.templateName = DefaultTemplateName
		source, err = fs.ReadFile(TemplatesFS(), r.templateName)
		engineOpt = gotemplate.WithFS(TemplatesFS())
	}
	if err != nil {
		return nil, &TemplateLoadError{Template: r.displayName(), Err: err}
	}

	if filepath.Ext(r.templateName) == "" {
		return nil, &TemplateLoadError{Template: r.displayName(), Err: errors.New("template file name needs an extension")}
	}

	engine, err := gotemplate.New(
		engineOpt,
		gotemplate.WithExtension(filepath.Ext(r.templateName)),
		gotemplate.WithFilters(templateFilters()),
	)
	if err != nil {
		return nil, &TemplateLoadError{Template: r.displayName(), Err: err}
	}
	if err := engine.Precompile(r.templateName); err != nil {
		return nil, &TemplateLoadError{Template: r.displayName(), Err: err}
	}

	r.engine = engine
	r.placeholders = placeholders(string(source), documentRoots())
	return r, nil
}

// TemplateName returns the file name of the loaded template.
func (r *Renderer) TemplateName() string {
	return r.templateName
}

// Placeholders lists the document fields the template references.
func (r *Renderer) Placeholders() []string {
	return append([]string(nil), r.placeholders...)
}

// Render renders a report.
func (r *Renderer) Render(ctx context.Context, doc report.Report) (string, error) {
	return r.RenderDocument(ctx, doc.Document())
}

// RenderDocument renders a nested document shaped like report.Document. A
// document missing a field the template references is a *RenderError.
func (r *Renderer) RenderDocument(ctx context.Context, doc map[string]any) (string, error) {
	if r == nil || r.engine == nil {
		return "", &RenderError{Err: errors.New("renderer is not initialised")}
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	for _, ref := range r.placeholders {
		if !lookup(doc, ref) {
			return "", &RenderError{Placeholder: ref, Err: errMissingField}
		}
	}

	data := make(map[string]any, len(r.globals)+len(doc)+1)
	for key, value := range r.globals {
		data[key] = value
	}
	data["threat_levels"] = report.ThreatLevelNames()
	for key, value := range doc {
		data[key] = value
	}

	out, err := r.engine.RenderTemplate(r.templateName, data)
	if err != nil {
		return "", &RenderError{Err: err}
	}
	return out, nil
}

func (r *Renderer) displayName() string {
	if r.templatePath != "" {
		return r.templatePath
	}
	if r.templateName != "" {
		return r.templateName
	}
	return DefaultTemplateName
}

func documentRoots() map[string]struct{} {
	roots := map[string]struct{}{}
	for key := range report.Default().Document() {
		roots[key] = struct{}{}
	}
	return roots
}

// String implements fmt.Stringer for log output.
func (r *Renderer) String() string {
	return fmt.Sprintf("render.Renderer(%s)", r.displayName())
}

package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-socreport/pkg/render/template"
)

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	setName   string
	baseDir   string
	files     fs.FS
	extension string
	filters   map[string]pongo2.FilterFunction
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithFilters registers pongo2 filters. Filters are process wide in pongo2;
// a name that is already registered keeps its first function.
func WithFilters(filters map[string]pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction, len(filters))
		}
		for name, fn := range filters {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				cfg.filters[name] = fn
			}
		}
	}
}

// WithSetName names the pongo2 template set; it shows up in pongo2 error
// messages.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.setName = name
		}
	}
}

// Engine renders Django/Jinja2 style templates from a pongo2 template set.
// Parsed templates are cached by name.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. Either WithBaseDir or WithFS is required; when both
// are given the directory is searched first.
func New(options ...Option) (*Engine, error) {
	cfg := &config{setName: "socreport", extension: ".html"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: need a base dir or an fs.FS")
	}

	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	return &Engine{
		set:       pongo2.NewSet(cfg.setName, loaders...),
		ext:       cfg.extension,
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Precompile parses the named templates so missing files and syntax errors
// surface before the first render.
func (e *Engine) Precompile(names ...string) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	for _, name := range names {
		if _, err := e.lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// RenderTemplate executes the named template with data as its context.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", e.path(name), err)
	}
	return buf.String(), nil
}

func (e *Engine) path(name string) string {
	if strings.HasSuffix(name, e.ext) {
		return name
	}
	return name + e.ext
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	path := e.path(name)

	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

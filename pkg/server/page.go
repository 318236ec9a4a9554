package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-socreport/pkg/render/template/gotemplate"
	"github.com/goliatone/go-socreport/pkg/report"
	"github.com/goliatone/go-socreport/pkg/session"
)

//go:embed templates/*.html
var pageTemplates embed.FS

const (
	editorPage = "editor.html"
	errorPage  = "error.html"
)

func newPageEngine() (*gotemplate.Engine, error) {
	sub, err := fs.Sub(pageTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(sub),
		gotemplate.WithExtension(".html"),
		gotemplate.WithSetName("socreport-editor"),
	)
	if err != nil {
		return nil, fmt.Errorf("server: page engine: %w", err)
	}
	if err := engine.Precompile(editorPage, errorPage); err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	return engine, nil
}

// editorContext flattens the report into the widget list the editor page
// iterates over.
func (c *Component) editorContext(doc report.Report, flashes []session.Flash) map[string]any {
	var (
		sections []any
		current  map[string]any
		fields   []any
	)
	closeSection := func() {
		if current != nil {
			current["fields"] = fields
			sections = append(sections, current)
		}
	}
	for _, desc := range report.Fields() {
		if current == nil || current["name"] != desc.Section {
			closeSection()
			current = map[string]any{"name": desc.Section}
			fields = nil
		}
		value, _ := doc.Get(string(desc.Field))
		widget := map[string]any{
			"field":   string(desc.Field),
			"label":   desc.Label,
			"kind":    string(desc.Kind),
			"options": toAny(desc.Options),
		}
		switch v := value.(type) {
		case bool:
			widget["checked"] = v
		case report.ThreatLevel:
			widget["value"] = string(v)
		default:
			widget["value"] = fmt.Sprint(v)
		}
		fields = append(fields, widget)
	}
	closeSection()

	flashList := make([]any, 0, len(flashes))
	for _, f := range flashes {
		flashList = append(flashList, map[string]any{"level": f.Level, "message": f.Message})
	}

	return map[string]any{
		"prefix":         link(c.opts.BasePath, ""),
		"sections":       sections,
		"flashes":        flashList,
		"engines":        toAny(c.opts.Orchestrator.Engines()),
		"default_engine": c.engine(),
		"report_date":    doc.ReportDate,
	}
}

func (c *Component) writePage(w http.ResponseWriter, status int, name string, data map[string]any) {
	out, err := c.pages.RenderTemplate(name, data)
	if err != nil {
		c.opts.Logger.Error("page render failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

func (c *Component) writeErrorPage(w http.ResponseWriter, err error) {
	status := statusFor(err)
	c.writePage(w, status, errorPage, map[string]any{
		"status":  status,
		"title":   http.StatusText(status),
		"message": err.Error(),
		"prefix":  link(c.opts.BasePath, ""),
	})
}

func toAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

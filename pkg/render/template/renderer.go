package template

// TemplateRenderer is the seam between the report renderer and a concrete
// template engine.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
	Precompile(names ...string) error
}

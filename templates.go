package socreport

import (
	"io/fs"

	"github.com/goliatone/go-socreport/pkg/render"
)

// DefaultTemplateFS exposes the built-in report template so callers can copy
// or extend it. The template lives at render.DefaultTemplateName.
func DefaultTemplateFS() fs.FS {
	return render.TemplatesFS()
}

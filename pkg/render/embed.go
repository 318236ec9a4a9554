package render

import (
	"embed"
	"io/fs"
)

// DefaultTemplateName is the file name of the built-in report template.
const DefaultTemplateName = "threat-report.html"

//go:embed templates/threat-report.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in report template.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

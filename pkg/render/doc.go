// Package render merges a report into the HTML report template.
//
// The template is loaded once at construction; a missing or unparsable
// template is a *TemplateLoadError and callers are expected to stop. Render
// is a pure function of the template and the document.
package render

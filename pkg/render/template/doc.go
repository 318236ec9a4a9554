// Package template defines the engine-agnostic template contract used by the
// report renderer and the editor page. The pongo2-backed implementation lives
// in the gotemplate subpackage.
package template

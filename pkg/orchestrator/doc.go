// Package orchestrator wires the renderer and the PDF engines together and
// turns reports into downloadable artifacts: HTML previews, PDF documents
// and JSON snapshots.
package orchestrator

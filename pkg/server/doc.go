// Package server exposes the report editor over HTTP: the form bound to the
// session's report, the live preview, import/export and PDF download.
//
// The component follows the Options/OptionFn layout used across the module so
// it can be mounted on any mux:
//
//	comp, err := server.New(server.WithOrchestrator(orch))
//	if err != nil { ... }
//	mux := http.NewServeMux()
//	comp.RegisterRoutes(mux, "/")
package server

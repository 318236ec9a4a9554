package socreport

import (
	"embed"
	"io/fs"
)

//go:embed pkg/runtime/assets/*.js pkg/runtime/assets/*.css
var embeddedRuntimeAssets embed.FS

// AssetsFS exposes the editor stylesheet and script (committed under
// pkg/runtime/assets) so the HTTP server can serve them without a build step.
//
// Typical mount:
//
//	comp, _ := server.New(
//	  server.WithOrchestrator(orch),
//	  server.WithAssets(socreport.AssetsFS()),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}

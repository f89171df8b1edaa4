package depselect

import (
	"embed"
	"io/fs"
)

//go:embed pkg/runtime/assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser runtime (committed under
// pkg/runtime/assets) so Go applications can serve it without a bundler.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(depselect.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "pkg/runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}

// RuntimeScript returns the browser runtime source, ready to inline into a
// <script> element when serving a separate asset is not worth it.
func RuntimeScript() []byte {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "depselect.js")
	if err != nil {
		return nil
	}
	return data
}

// Package seeds provides the embedded starter theme, loaded into new
// workspaces by `themelib init`.
package seeds

import _ "embed"

// StarterJSON is the bundled starter library, embedded at build time.
//
//go:embed starter/library.json
var StarterJSON []byte

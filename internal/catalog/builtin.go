package catalog

import "embed"

//go:embed builtin/*.json
var builtinFS embed.FS

// BuiltinSource serves the themes bundled with vibeui.
type BuiltinSource struct{}

// Records implements Source.
func (BuiltinSource) Records() ([]RawRecord, error) {
	return fsSource(builtinFS, "builtin", "builtin")
}

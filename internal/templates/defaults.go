package templates

import "embed"

//go:embed defaults/*.tmpl
var defaultFS embed.FS

// Default returns a renderer backed by the embedded template set so a site
// can build without shipping its own theme.
func Default() *Renderer {
	return NewRendererFS(defaultFS)
}

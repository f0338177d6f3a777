package interfaces

import "io"

// TemplateRenderer abstracts the template engine used by the page assembler.
// Render resolves a named template; RenderString compiles and renders inline
// template content. When an optional writer is supplied the output is also
// streamed to it.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

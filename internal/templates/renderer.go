// Package templates provides the html/template backed implementation of
// interfaces.TemplateRenderer used by the page assembler. Sites can point it
// at a template directory or fall back to the embedded defaults.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Renderer implements interfaces.TemplateRenderer over html/template.
// Template parsing is deferred until first use and performed once.
type Renderer struct {
	fsys   fs.FS
	once   sync.Once
	tpl    *template.Template
	err    error
	logger interfaces.Logger
}

var _ interfaces.TemplateRenderer = (*Renderer)(nil)

// NewRenderer returns a renderer that loads .html and .tmpl files from the
// provided directory.
func NewRenderer(baseDir string) (*Renderer, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("inspect template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %q is not a directory", baseDir)
	}
	return &Renderer{fsys: os.DirFS(baseDir)}, nil
}

// NewRendererFS returns a renderer over an arbitrary filesystem, which keeps
// tests and embedded template sets hermetic.
func NewRendererFS(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// WithLogger attaches a logger used to report template resolution and
// execution failures. It returns the receiver for chaining.
func (r *Renderer) WithLogger(provider interfaces.LoggerProvider) *Renderer {
	r.logger = logging.TemplatesLogger(provider)
	return r
}

func (r *Renderer) log() interfaces.Logger {
	if r.logger == nil {
		return logging.NoOp()
	}
	return r.logger
}

// Render resolves a named template and executes it with the supplied data.
// When optional writers are provided the output is streamed to them as well.
func (r *Renderer) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}

	target := r.lookup(tpl, name)
	if target == nil {
		r.log().Error("template not found", "template", name)
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := target.Execute(&buf, data); err != nil {
		r.log().Error("template execution failed", "template", name, "error", err)
		return "", fmt.Errorf("execute template %q: %w", name, err)
	}
	return r.emit(buf, out)
}

// RenderString compiles inline template content and executes it with the
// supplied data.
func (r *Renderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(helperFuncs()).Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("parse inline template: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute inline template: %w", err)
	}
	return r.emit(buf, out)
}

func (r *Renderer) emit(buf bytes.Buffer, out []io.Writer) (string, error) {
	rendered := buf.String()
	for _, writer := range out {
		if writer == nil {
			continue
		}
		if _, err := io.WriteString(writer, rendered); err != nil {
			return "", fmt.Errorf("stream template output: %w", err)
		}
	}
	return rendered, nil
}

func (r *Renderer) lookup(tpl *template.Template, name string) *template.Template {
	candidates := []string{name}
	if !strings.Contains(name, ".") {
		candidates = append(candidates, name+".tmpl", name+".html")
	}
	for _, candidate := range candidates {
		if found := tpl.Lookup(candidate); found != nil {
			return found
		}
	}
	return nil
}

func (r *Renderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		var files []string
		err := fs.WalkDir(r.fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			switch {
			case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".tmpl"):
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			r.err = err
			return
		}
		if len(files) == 0 {
			r.err = fmt.Errorf("no templates found")
			return
		}

		r.tpl, r.err = template.New("press").Funcs(helperFuncs()).ParseFS(r.fsys, files...)
	})
	return r.tpl, r.err
}

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML {
			switch v := value.(type) {
			case template.HTML:
				return v
			case string:
				return template.HTML(v)
			case []byte:
				return template.HTML(v)
			case fmt.Stringer:
				return template.HTML(v.String())
			default:
				return template.HTML(fmt.Sprint(v))
			}
		},
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			if strings.TrimSpace(layout) == "" {
				layout = "2006-01-02"
			}
			return value.Format(layout)
		},
		"slugify": func(value string) string {
			normalized, err := slug.Normalize(value)
			if err != nil {
				return value
			}
			return normalized
		},
	}
}

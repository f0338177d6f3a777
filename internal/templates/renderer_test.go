package templates

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-press/pkg/interfaces"
)

func TestRendererRenderNamedTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"post.tmpl": &fstest.MapFile{
			Data: []byte(`<h1>{{ .Title }}</h1>{{ safeHTML .Content }}`),
		},
	}
	renderer := NewRendererFS(fsys)

	out, err := renderer.Render("post", map[string]any{
		"Title":   "Hello",
		"Content": "<p>body</p>",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<h1>Hello</h1>") {
		t.Fatalf("missing title: %q", out)
	}
	if !strings.Contains(out, "<p>body</p>") {
		t.Fatalf("safeHTML must pass rendered markup through unescaped: %q", out)
	}
}

type errorCapture struct {
	messages []string
}

func (c *errorCapture) Trace(string, ...any) {}
func (c *errorCapture) Debug(string, ...any) {}
func (c *errorCapture) Info(string, ...any)  {}
func (c *errorCapture) Warn(string, ...any)  {}
func (c *errorCapture) Error(msg string, _ ...any) {
	c.messages = append(c.messages, msg)
}
func (c *errorCapture) Fatal(string, ...any)                          {}
func (c *errorCapture) WithContext(context.Context) interfaces.Logger { return c }

type errorCaptureProvider struct {
	logger *errorCapture
}

func (p errorCaptureProvider) GetLogger(string) interfaces.Logger { return p.logger }

func TestRendererLogsMissingTemplate(t *testing.T) {
	capture := &errorCapture{}
	renderer := NewRendererFS(fstest.MapFS{
		"post.tmpl": &fstest.MapFile{Data: []byte(`x`)},
	}).WithLogger(errorCaptureProvider{logger: capture})

	if _, err := renderer.Render("nope", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
	if len(capture.messages) != 1 || capture.messages[0] != "template not found" {
		t.Fatalf("expected a missing-template log entry, got %v", capture.messages)
	}
}

func TestRendererMissingTemplate(t *testing.T) {
	renderer := NewRendererFS(fstest.MapFS{
		"post.tmpl": &fstest.MapFile{Data: []byte(`x`)},
	})

	if _, err := renderer.Render("nope", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestRendererRenderString(t *testing.T) {
	renderer := NewRendererFS(fstest.MapFS{
		"post.tmpl": &fstest.MapFile{Data: []byte(`x`)},
	})

	out, err := renderer.RenderString(`{{ slugify .Title }}`, map[string]any{"Title": "Hello World"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "hello-world" {
		t.Fatalf("slugify helper mismatch: %q", out)
	}
}

func TestRendererStreamsToWriter(t *testing.T) {
	renderer := NewRendererFS(fstest.MapFS{
		"page.html": &fstest.MapFile{Data: []byte(`content`)},
	})

	var sink strings.Builder
	out, err := renderer.Render("page", nil, &sink)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if sink.String() != out {
		t.Fatalf("writer output mismatch: %q vs %q", sink.String(), out)
	}
}

func TestDefaultTemplates(t *testing.T) {
	renderer := Default()

	out, err := renderer.Render("post", map[string]any{
		"Site": map[string]any{
			"Title":    "Example",
			"Language": "en",
			"BaseURL":  "",
		},
		"Page": map[string]any{
			"Title":           "A Post",
			"Summary":         "",
			"Date":            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			"Author":          "",
			"Content":         "<p>hello</p>",
			"Tags":            []string{},
			"Outline":         nil,
			"Cover":           nil,
			"ShowTOC":         false,
			"ShowReadingTime": false,
			"ShowBreadcrumbs": false,
			"ReadingTime":     1,
		},
	})
	if err != nil {
		t.Fatalf("Render default post template: %v", err)
	}
	if !strings.Contains(out, "<h1>A Post</h1>") || !strings.Contains(out, "<p>hello</p>") {
		t.Fatalf("default post template output unexpected: %q", out)
	}
}

package generator

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// pageNamespace seeds deterministic page identifiers so repeated builds of
// the same route produce the same ID in manifests and diagnostics.
var pageNamespace = uuid.MustParse("9c0c1f9e-4f6b-4b62-8a51-3f2f6d1a7b10")

// SiteMetadata exposes site-wide information required by templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	Options     BuildOptions
}

// PageContext contains the resolved data for a single document.
type PageContext struct {
	Title           string
	Summary         string
	Date            time.Time
	Tags            []string
	Author          string
	Slug            string
	Route           string
	Content         string
	WordCount       int
	ReadingTime     int
	Outline         []markdown.Heading
	Cover           *interfaces.CoverImage
	ShowTOC         bool
	ShowReadingTime bool
	ShowBreadcrumbs bool
	Draft           bool
	Custom          map[string]any
	SourcePath      string
	LastModified    time.Time
}

// TemplateContext captures the data contract passed to TemplateRenderer
// implementations for single documents.
type TemplateContext struct {
	Site  SiteMetadata
	Page  PageContext
	Build BuildMetadata
}

// ListItem is one entry on a listing page.
type ListItem struct {
	Title       string
	Route       string
	Date        time.Time
	Summary     string
	Tags        []string
	Author      string
	ReadingTime int
}

// ListContext captures the data contract for listing pages (index, tags).
type ListContext struct {
	Site  SiteMetadata
	Title string
	Tag   string
	Items []ListItem
	Build BuildMetadata
}

// RenderedPage captures the rendered HTML output for a document.
type RenderedPage struct {
	ID             uuid.UUID
	Route          string
	Output         string
	Template       string
	HTML           string
	Checksum       string
	SourcePath     string
	SourceChecksum string
	LastModified   time.Time
	Duration       time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual documents.
type RenderDiagnostic struct {
	SourcePath string
	Route      string
	Template   string
	Duration   time.Duration
	Skipped    bool
	Reason     string
	Err        error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

func pageID(route string) uuid.UUID {
	return uuid.NewSHA1(pageNamespace, []byte(route))
}

package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be stateless so a single instance can be shared
// across goroutines without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the document workflows used by the site builder:
// loading Markdown files from disk, extracting front matter, and converting
// document bodies into HTML.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a single content file: front matter plus a Markdown
// body. Documents are immutable once parsed; BodyHTML is populated lazily by
// RenderDocument so loaders stay cheap.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so
	// incremental builds can detect changes without re-rendering.
	Checksum []byte
}

// FrontMatter models the metadata block preceding a document body. Recognized
// keys map onto typed fields; everything else is preserved in Custom so
// templates can reach theme- or site-specific values. Raw holds the full
// key/value view used for lossless re-serialization.
type FrontMatter struct {
	Title           string         `yaml:"title" json:"title"`
	Slug            string         `yaml:"slug" json:"slug"`
	Summary         string         `yaml:"summary" json:"summary"`
	Date            time.Time      `yaml:"date" json:"date"`
	Tags            []string       `yaml:"tags" json:"tags"`
	Author          string         `yaml:"author" json:"author"`
	Draft           bool           `yaml:"draft" json:"draft"`
	Template        string         `yaml:"template" json:"template"`
	ShowTOC         bool           `yaml:"show_toc" json:"show_toc"`
	ShowReadingTime bool           `yaml:"show_reading_time" json:"show_reading_time"`
	ShowBreadcrumbs bool           `yaml:"show_breadcrumbs" json:"show_breadcrumbs"`
	Cover           *CoverImage    `yaml:"cover" json:"cover,omitempty"`
	Custom          map[string]any `yaml:",inline" json:"custom"`
	Raw             map[string]any `yaml:"-" json:"raw"`
}

// CoverImage captures the nested cover structure used by blog themes.
type CoverImage struct {
	Image    string `yaml:"image" json:"image"`
	Alt      string `yaml:"alt" json:"alt"`
	Caption  string `yaml:"caption" json:"caption"`
	Relative bool   `yaml:"relative" json:"relative"`
	Hidden   bool   `yaml:"hidden" json:"hidden"`
}

// Publishable reports whether the document carries the metadata required for
// inclusion in the generated site: a title and a date.
func (fm FrontMatter) Publishable() bool {
	return fm.Title != "" && !fm.Date.IsZero()
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

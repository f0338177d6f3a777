package markdown

import (
	"bytes"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the Markdown
// body without delimiters, and a malformed-front-matter error when the block
// is unterminated or not valid key/value syntax. Documents without a front
// matter block parse cleanly with empty metadata.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var env frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &env)
	if err != nil {
		return interfaces.FrontMatter{}, nil, wrapFrontMatterError(err)
	}
	if len(body) == len(source) && hasOpeningDelimiter(source) {
		// frontmatter.Parse treats a block that never closes as plain
		// content and hands the full source back untouched. An opening
		// delimiter with nothing consumed means the closer is missing.
		return interfaces.FrontMatter{}, nil, unterminatedFrontMatterError()
	}
	if len(body) != len(source) {
		body = bytes.TrimLeft(body, "\r\n")
	}

	return envelopeToFrontMatter(env), body, nil
}

// hasOpeningDelimiter reports whether the first line of source is the front
// matter delimiter, ignoring leading blank lines.
func hasOpeningDelimiter(source []byte) bool {
	trimmed := bytes.TrimLeft(source, "\r\n")
	line, _, _ := bytes.Cut(trimmed, []byte("\n"))
	return string(bytes.TrimRight(line, "\r")) == "---"
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type coverEnvelope struct {
	Image    string `yaml:"image"`
	Alt      string `yaml:"alt"`
	Caption  string `yaml:"caption"`
	Relative bool   `yaml:"relative"`
	Hidden   bool   `yaml:"hidden"`
}

type frontMatterEnvelope struct {
	Title           string         `yaml:"title"`
	Slug            string         `yaml:"slug"`
	Summary         string         `yaml:"summary"`
	Date            time.Time      `yaml:"date"`
	Tags            []string       `yaml:"tags"`
	Author          string         `yaml:"author"`
	Draft           bool           `yaml:"draft"`
	Template        string         `yaml:"template"`
	ShowTOC         bool           `yaml:"show_toc"`
	ShowReadingTime bool           `yaml:"show_reading_time"`
	ShowBreadcrumbs bool           `yaml:"show_breadcrumbs"`
	Cover           *coverEnvelope `yaml:"cover"`
	Custom          map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+12)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if env.Template != "" {
		raw["template"] = env.Template
	}
	raw["draft"] = env.Draft
	if env.ShowTOC {
		raw["show_toc"] = true
	}
	if env.ShowReadingTime {
		raw["show_reading_time"] = true
	}
	if env.ShowBreadcrumbs {
		raw["show_breadcrumbs"] = true
	}

	var cover *interfaces.CoverImage
	if env.Cover != nil {
		cover = &interfaces.CoverImage{
			Image:    env.Cover.Image,
			Alt:      env.Cover.Alt,
			Caption:  env.Cover.Caption,
			Relative: env.Cover.Relative,
			Hidden:   env.Cover.Hidden,
		}
		raw["cover"] = map[string]any{
			"image":    env.Cover.Image,
			"alt":      env.Cover.Alt,
			"caption":  env.Cover.Caption,
			"relative": env.Cover.Relative,
			"hidden":   env.Cover.Hidden,
		}
	}

	return interfaces.FrontMatter{
		Title:           env.Title,
		Slug:            env.Slug,
		Summary:         env.Summary,
		Date:            env.Date,
		Tags:            append([]string(nil), env.Tags...),
		Author:          env.Author,
		Draft:           env.Draft,
		Template:        env.Template,
		ShowTOC:         env.ShowTOC,
		ShowReadingTime: env.ShowReadingTime,
		ShowBreadcrumbs: env.ShowBreadcrumbs,
		Cover:           cover,
		Custom:          cloneMap(env.Custom),
		Raw:             raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

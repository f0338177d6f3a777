package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-press/pkg/interfaces"
)

const frontMatterDelimiter = "---"

// EncodeFrontMatter serializes front matter back into a YAML block. Recognized
// keys are emitted first in a stable order, followed by custom keys sorted
// alphabetically, so parse → encode → parse round-trips without loss.
func EncodeFrontMatter(fm interfaces.FrontMatter) ([]byte, error) {
	doc := yaml.Node{Kind: yaml.MappingNode}

	appendScalar := func(key string, value any) error {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return fmt.Errorf("encode front matter key %s: %w", key, err)
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return fmt.Errorf("encode front matter value %s: %w", key, err)
		}
		doc.Content = append(doc.Content, keyNode, valueNode)
		return nil
	}

	if fm.Title != "" {
		if err := appendScalar("title", fm.Title); err != nil {
			return nil, err
		}
	}
	if fm.Slug != "" {
		if err := appendScalar("slug", fm.Slug); err != nil {
			return nil, err
		}
	}
	if fm.Summary != "" {
		if err := appendScalar("summary", fm.Summary); err != nil {
			return nil, err
		}
	}
	if !fm.Date.IsZero() {
		if err := appendScalar("date", fm.Date.UTC().Format(time.RFC3339)); err != nil {
			return nil, err
		}
	}
	if len(fm.Tags) > 0 {
		if err := appendScalar("tags", fm.Tags); err != nil {
			return nil, err
		}
	}
	if fm.Author != "" {
		if err := appendScalar("author", fm.Author); err != nil {
			return nil, err
		}
	}
	if fm.Template != "" {
		if err := appendScalar("template", fm.Template); err != nil {
			return nil, err
		}
	}
	if err := appendScalar("draft", fm.Draft); err != nil {
		return nil, err
	}
	if fm.ShowTOC {
		if err := appendScalar("show_toc", true); err != nil {
			return nil, err
		}
	}
	if fm.ShowReadingTime {
		if err := appendScalar("show_reading_time", true); err != nil {
			return nil, err
		}
	}
	if fm.ShowBreadcrumbs {
		if err := appendScalar("show_breadcrumbs", true); err != nil {
			return nil, err
		}
	}
	if fm.Cover != nil {
		cover := coverEnvelope{
			Image:    fm.Cover.Image,
			Alt:      fm.Cover.Alt,
			Caption:  fm.Cover.Caption,
			Relative: fm.Cover.Relative,
			Hidden:   fm.Cover.Hidden,
		}
		if err := appendScalar("cover", cover); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(fm.Custom))
	for key := range fm.Custom {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := appendScalar(key, fm.Custom[key]); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize front matter: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDocument reassembles a full content file from front matter and body.
func EncodeDocument(doc *interfaces.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("encode document: document is nil")
	}

	meta, err := EncodeFrontMatter(doc.FrontMatter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterDelimiter + "\n")
	buf.Write(meta)
	buf.WriteString(frontMatterDelimiter + "\n\n")
	buf.Write(bytes.TrimLeft(doc.Body, "\n"))
	return buf.Bytes(), nil
}

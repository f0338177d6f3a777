// Package markdown turns content files into documents: it extracts YAML
// front matter, renders Markdown bodies into HTML through goldmark, and
// discovers files beneath a content root.
package markdown

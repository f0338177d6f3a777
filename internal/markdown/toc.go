package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// ExtractOutline walks the Markdown AST and returns the heading outline in
// document order. IDs match the anchors emitted by the HTML renderer because
// both passes use the same auto-heading-ID parser option.
func ExtractOutline(source []byte) []Heading {
	engine := goldmark.New(
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	root := engine.Parser().Parse(text.NewReader(source))

	var outline []Heading
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		id := ""
		if value, ok := heading.AttributeString("id"); ok {
			if raw, ok := value.([]byte); ok {
				id = string(raw)
			}
		}

		outline = append(outline, Heading{
			Level: heading.Level,
			ID:    id,
			Text:  string(heading.Text(source)),
		})
		return ast.WalkSkipChildren, nil
	})

	return outline
}

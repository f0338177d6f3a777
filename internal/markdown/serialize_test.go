package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-press/pkg/interfaces"
)

func TestEncodeFrontMatterRoundTrip(t *testing.T) {
	original := interfaces.FrontMatter{
		Title:           "Round Trip",
		Slug:            "round-trip",
		Summary:         "All recognized keys survive",
		Date:            time.Date(2025, 3, 4, 12, 30, 0, 0, time.UTC),
		Tags:            []string{"go", "yaml"},
		Author:          "Sam Lee",
		Draft:           true,
		Template:        "post",
		ShowTOC:         true,
		ShowReadingTime: true,
		Cover: &interfaces.CoverImage{
			Image:    "images/cover.png",
			Alt:      "cover",
			Caption:  "the cover",
			Relative: true,
		},
		Custom: map[string]any{
			"series": "testing",
		},
	}

	encoded, err := EncodeFrontMatter(original)
	if err != nil {
		t.Fatalf("EncodeFrontMatter: %v", err)
	}

	source := "---\n" + string(encoded) + "---\n\nbody\n"
	parsed, body, err := ParseFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("re-parse encoded front matter: %v", err)
	}

	if parsed.Title != original.Title {
		t.Fatalf("Title lost: got %q", parsed.Title)
	}
	if parsed.Slug != original.Slug {
		t.Fatalf("Slug lost: got %q", parsed.Slug)
	}
	if parsed.Summary != original.Summary {
		t.Fatalf("Summary lost: got %q", parsed.Summary)
	}
	if !parsed.Date.Equal(original.Date) {
		t.Fatalf("Date lost: got %v", parsed.Date)
	}
	if len(parsed.Tags) != 2 || parsed.Tags[0] != "go" || parsed.Tags[1] != "yaml" {
		t.Fatalf("Tags lost: %#v", parsed.Tags)
	}
	if parsed.Author != original.Author {
		t.Fatalf("Author lost: got %q", parsed.Author)
	}
	if !parsed.Draft {
		t.Fatalf("Draft flag lost")
	}
	if parsed.Template != original.Template {
		t.Fatalf("Template lost: got %q", parsed.Template)
	}
	if !parsed.ShowTOC || !parsed.ShowReadingTime {
		t.Fatalf("display toggles lost: %#v", parsed)
	}
	if parsed.Cover == nil || parsed.Cover.Image != original.Cover.Image || !parsed.Cover.Relative {
		t.Fatalf("Cover lost: %#v", parsed.Cover)
	}
	if parsed.Custom["series"] != "testing" {
		t.Fatalf("custom key lost: %#v", parsed.Custom)
	}
	if string(body) != "body\n" {
		t.Fatalf("body mismatch: %q", string(body))
	}
}

func TestEncodeDocument(t *testing.T) {
	doc, err := BuildDocument("post.md", readFixture(t, "testdata/basic.md"), time.Now())
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	encoded, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}

	text := string(encoded)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("encoded document must open with a delimiter, got %q", text[:16])
	}
	if !strings.Contains(text, "title: Avoiding Leaks in View Bindings") {
		t.Fatalf("encoded document missing title:\n%s", text)
	}
	if !strings.Contains(text, "# Avoiding Leaks in View Bindings") {
		t.Fatalf("encoded document missing body:\n%s", text)
	}

	reparsed, _, err := ParseFrontMatter(encoded)
	if err != nil {
		t.Fatalf("re-parse encoded document: %v", err)
	}
	if reparsed.Title != doc.FrontMatter.Title {
		t.Fatalf("round trip lost title: %q", reparsed.Title)
	}
	if reparsed.Custom["series"] != "lifecycle-pitfalls" {
		t.Fatalf("round trip lost custom key: %#v", reparsed.Custom)
	}
}

func TestEncodeDocumentNil(t *testing.T) {
	if _, err := EncodeDocument(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"testing"
	"testing/fstest"
	"time"
)

func contentFS() fstest.MapFS {
	modTime := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	return fstest.MapFS{
		"posts/a-first-post.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: First\ndate: 2025-01-01T00:00:00Z\n---\n\nfirst body\n"),
			ModTime: modTime,
		},
		"posts/b-second-post.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: Second\ndate: 2025-01-02T00:00:00Z\ndraft: true\n---\n\nsecond body\n"),
			ModTime: modTime,
		},
		"posts/nested/deep.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: Deep\ndate: 2025-01-03T00:00:00Z\n---\n\ndeep body\n"),
			ModTime: modTime,
		},
		"posts/notes.txt": &fstest.MapFile{
			Data:    []byte("not markdown"),
			ModTime: modTime,
		},
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := NewLoader(contentFS(), LoaderConfig{Pattern: "*.md", Recursive: true})

	result, err := loader.LoadFile(context.Background(), "posts/a-first-post.md", LoadParams{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	doc := result.Document
	if doc.FrontMatter.Title != "First" {
		t.Fatalf("Title mismatch: %q", doc.FrontMatter.Title)
	}
	want := sha256.Sum256(result.Source)
	if !bytes.Equal(doc.Checksum, want[:]) {
		t.Fatalf("checksum must cover the raw source bytes")
	}
	if doc.LastModified.IsZero() {
		t.Fatalf("expected LastModified from file info")
	}
}

func TestLoaderLoadDirectory(t *testing.T) {
	loader := NewLoader(contentFS(), LoaderConfig{Pattern: "*.md", Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), "posts", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 markdown documents, got %d", len(results))
	}

	// Deterministic path ordering.
	for i := 1; i < len(results); i++ {
		if results[i-1].Document.FilePath >= results[i].Document.FilePath {
			t.Fatalf("results not sorted by path: %q then %q",
				results[i-1].Document.FilePath, results[i].Document.FilePath)
		}
	}
}

func TestLoaderLoadDirectoryNonRecursive(t *testing.T) {
	loader := NewLoader(contentFS(), LoaderConfig{Pattern: "*.md", Recursive: false})

	results, err := loader.LoadDirectory(context.Background(), "posts", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected nested directory to be skipped, got %d results", len(results))
	}
}

func TestLoaderPatternOverride(t *testing.T) {
	loader := NewLoader(contentFS(), LoaderConfig{Pattern: "*.md", Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), "posts", LoadParams{Pattern: "a-*.md"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 1 || results[0].Document.FrontMatter.Title != "First" {
		t.Fatalf("pattern override not applied: %#v", results)
	}
}

func TestLoaderContextCancelled(t *testing.T) {
	loader := NewLoader(contentFS(), LoaderConfig{Pattern: "*.md", Recursive: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, "posts", LoadParams{}); err == nil {
		t.Fatalf("expected context cancellation error")
	}
}

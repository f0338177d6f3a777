package press_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	press "github.com/goliatone/go-press"
	"github.com/goliatone/go-press/internal/di"
)

func siteFixture() fstest.MapFS {
	return fstest.MapFS{
		"posts/hello.md": &fstest.MapFile{Data: []byte(`---
title: Hello World
date: 2025-01-01T00:00:00Z
tags: [intro]
summary: The first post.
---
# Hello

Welcome to the site.
`)},
		"posts/draft.md": &fstest.MapFile{Data: []byte(`---
title: Not Yet
date: 2025-01-02T00:00:00Z
draft: true
---
# Hidden
`)},
	}
}

func testConfig(t *testing.T) press.Config {
	t.Helper()
	cfg := press.DefaultConfig()
	cfg.Site.Title = "Field Notes"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Generator.OutputDir = t.TempDir()
	cfg.Generator.GenerateRobots = true
	cfg.Logging.Enabled = false
	return cfg
}

func TestModuleBuildEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	module, err := press.New(cfg, di.WithContentFS(siteFixture()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := module.Build(context.Background(), press.BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("PagesBuilt = %d, want 1", result.PagesBuilt)
	}
	if result.DraftsExcluded != 1 {
		t.Fatalf("DraftsExcluded = %d, want 1", result.DraftsExcluded)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	page, err := os.ReadFile(filepath.Join(cfg.Generator.OutputDir, "hello-world", "index.html"))
	if err != nil {
		t.Fatalf("read page artifact: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, `<h1 id="hello">Hello</h1>`) {
		t.Fatalf("markdown body not rendered: %s", html)
	}
	if !strings.Contains(html, "Hello World") {
		t.Fatalf("page title missing: %s", html)
	}
	if strings.Contains(html, "Hidden") {
		t.Fatalf("draft content leaked into page: %s", html)
	}

	for _, artifact := range []string{"index.html", "sitemap.xml", "robots.txt", "feed.xml", "tags/intro/index.html"} {
		if _, err := os.Stat(filepath.Join(cfg.Generator.OutputDir, artifact)); err != nil {
			t.Fatalf("missing artifact %s: %v", artifact, err)
		}
	}
}

func TestModuleBuildIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.CleanBuild = false
	cfg.Generator.Incremental = false
	module, err := press.New(cfg, di.WithContentFS(siteFixture()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := module.Build(context.Background(), press.BuildOptions{}); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(cfg.Generator.OutputDir, "hello-world", "index.html"))
	if err != nil {
		t.Fatalf("read first artifact: %v", err)
	}

	if _, err := module.Build(context.Background(), press.BuildOptions{}); err != nil {
		t.Fatalf("second Build: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(cfg.Generator.OutputDir, "hello-world", "index.html"))
	if err != nil {
		t.Fatalf("read second artifact: %v", err)
	}

	if string(first) != string(second) {
		t.Fatal("rebuilding identical input changed the artifact")
	}
}

func TestModuleBuildKeepsDocumentErrorsLocal(t *testing.T) {
	fsys := siteFixture()
	fsys["posts/broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Broken\nnever terminated\n")}

	cfg := testConfig(t)
	module, err := press.New(cfg, di.WithContentFS(fsys))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := module.Build(context.Background(), press.BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("PagesBuilt = %d, want 1", result.PagesBuilt)
	}
	if len(result.Errors) == 0 {
		t.Fatal("malformed document produced no error")
	}
	if _, err := os.Stat(filepath.Join(cfg.Generator.OutputDir, "hello-world", "index.html")); err != nil {
		t.Fatalf("healthy page missing: %v", err)
	}
}

func TestModuleGeneratorDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Enabled = false
	module, err := press.New(cfg, di.WithContentFS(siteFixture()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := module.Build(context.Background(), press.BuildOptions{}); !errors.Is(err, press.ErrGeneratorDisabled) {
		t.Fatalf("Build error = %v, want ErrGeneratorDisabled", err)
	}
	if module.Markdown() == nil {
		t.Fatal("markdown service should still be available")
	}
}

func TestModuleMarkdownService(t *testing.T) {
	cfg := testConfig(t)
	module, err := press.New(cfg, di.WithContentFS(siteFixture()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := module.Markdown().Load(context.Background(), "posts/hello.md", press.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.FrontMatter.Title != "Hello World" {
		t.Fatalf("Title = %q", doc.FrontMatter.Title)
	}
	if !strings.Contains(string(doc.BodyHTML), "<h1") {
		t.Fatalf("body not rendered: %s", doc.BodyHTML)
	}
}

package generator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSitemap(t *testing.T) {
	fallback := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	pages := []RenderedPage{
		{Route: "/zeta/", LastModified: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/alpha/"},
		{Route: "/alpha/"}, // duplicate should collapse
	}

	out := buildSitemap("https://example.com/", pages, fallback)

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing XML declaration: %s", out)
	}
	if strings.Count(out, "<loc>https://example.com/alpha/</loc>") != 1 {
		t.Fatalf("duplicate route not collapsed: %s", out)
	}
	alpha := strings.Index(out, "https://example.com/alpha/")
	zeta := strings.Index(out, "https://example.com/zeta/")
	if alpha < 0 || zeta < 0 || alpha > zeta {
		t.Fatalf("entries not sorted by location: %s", out)
	}
	if !strings.Contains(out, "<lastmod>2025-01-02T00:00:00Z</lastmod>") {
		t.Fatalf("fallback lastmod not applied: %s", out)
	}
}

func TestBuildRobots(t *testing.T) {
	out := buildRobots("https://example.com", true)
	if !strings.Contains(out, "User-agent: *") || !strings.Contains(out, "Allow: /") {
		t.Fatalf("unexpected robots body: %s", out)
	}
	if !strings.Contains(out, "Sitemap: https://example.com/sitemap.xml") {
		t.Fatalf("sitemap hint missing: %s", out)
	}

	bare := buildRobots("https://example.com", false)
	if strings.Contains(bare, "Sitemap:") {
		t.Fatalf("sitemap hint present when disabled: %s", bare)
	}
}

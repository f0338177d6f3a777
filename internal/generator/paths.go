package generator

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// documentSlug resolves a URL slug for a document: an explicit slug wins,
// otherwise the title is normalized, otherwise the source filename.
func documentSlug(fm interfaces.FrontMatter, sourcePath string) string {
	if trimmed := strings.TrimSpace(fm.Slug); trimmed != "" {
		if normalized, err := slug.Normalize(trimmed); err == nil && normalized != "" {
			return normalized
		}
		return trimmed
	}
	if trimmed := strings.TrimSpace(fm.Title); trimmed != "" {
		if normalized, err := slug.Normalize(trimmed); err == nil && normalized != "" {
			return normalized
		}
	}

	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if normalized, err := slug.Normalize(base); err == nil && normalized != "" {
		return normalized
	}
	return base
}

// routeForSlug maps a slug onto its public route.
func routeForSlug(slugValue string) string {
	clean := strings.Trim(strings.TrimSpace(slugValue), "/")
	if clean == "" {
		return "/"
	}
	return "/" + clean + "/"
}

// outputPathForRoute maps a public route onto the file written to storage.
// Pretty URLs: every route terminates in a directory index.
func outputPathForRoute(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// tagRoute maps a tag name onto its listing route.
func tagRoute(tag string) string {
	normalized, err := slug.Normalize(tag)
	if err != nil || normalized == "" {
		normalized = strings.ToLower(strings.TrimSpace(tag))
	}
	return "/tags/" + normalized + "/"
}

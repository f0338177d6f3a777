package generator

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

const defaultFeedLimit = 100

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	Author      string
	PublishedAt time.Time
}

// buildFeedItems derives RSS entries from published pages, newest first,
// deduplicated by GUID and capped at limit.
func buildFeedItems(site SiteMetadata, pages []publishedPage, limit int) []feedItem {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	seen := map[string]struct{}{}
	items := make([]feedItem, 0, len(pages))
	for _, page := range pages {
		guid := page.Rendered.ID.String()
		if _, ok := seen[guid]; ok {
			continue
		}
		seen[guid] = struct{}{}

		title := strings.TrimSpace(page.Context.Title)
		if title == "" {
			title = page.Rendered.Route
		}

		published := page.Context.Date
		if published.IsZero() {
			published = page.Rendered.LastModified
		}

		items = append(items, feedItem{
			Title:       title,
			Summary:     strings.TrimSpace(page.Context.Summary),
			Link:        absoluteURL(site.BaseURL, page.Rendered.Route),
			GUID:        guid,
			Author:      strings.TrimSpace(page.Context.Author),
			PublishedAt: published,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].GUID < items[j].GUID
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if len(items) > limit {
		items = append([]feedItem(nil), items[:limit]...)
	}
	return items
}

func buildFeedXML(site SiteMetadata, items []feedItem, generatedAt time.Time) string {
	base := strings.TrimRight(strings.TrimSpace(site.BaseURL), "/")

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s/</link>\n", base))
	if site.Description != "" {
		builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", html.EscapeString(site.Description)))
	} else {
		builder.WriteString("    <description></description>\n")
	}
	if site.Language != "" {
		builder.WriteString(fmt.Sprintf("    <language>%s</language>\n", html.EscapeString(site.Language)))
	}
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))

	for _, item := range items {
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", html.EscapeString(item.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", item.Link))
		builder.WriteString(fmt.Sprintf("      <guid isPermaLink=\"false\">%s</guid>\n", item.GUID))
		if item.Summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", html.EscapeString(item.Summary)))
		}
		if item.Author != "" {
			builder.WriteString(fmt.Sprintf("      <author>%s</author>\n", html.EscapeString(item.Author)))
		}
		if !item.PublishedAt.IsZero() {
			builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z)))
		}
		builder.WriteString("    </item>\n")
	}

	builder.WriteString("  </channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String()
}

func absoluteURL(baseURL, route string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}

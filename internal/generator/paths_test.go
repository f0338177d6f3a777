package generator

import (
	"testing"

	"github.com/goliatone/go-press/pkg/interfaces"
)

func TestDocumentSlug(t *testing.T) {
	cases := []struct {
		name string
		fm   interfaces.FrontMatter
		path string
		want string
	}{
		{"explicit slug wins", interfaces.FrontMatter{Slug: "custom-slug", Title: "Ignored Title"}, "posts/a.md", "custom-slug"},
		{"title normalized", interfaces.FrontMatter{Title: "Avoiding Leaks in View Bindings"}, "posts/a.md", "avoiding-leaks-in-view-bindings"},
		{"filename fallback", interfaces.FrontMatter{}, "posts/2025-notes.md", "2025-notes"},
	}
	for _, tc := range cases {
		if got := documentSlug(tc.fm, tc.path); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRouteAndOutputMapping(t *testing.T) {
	if got := routeForSlug("my-post"); got != "/my-post/" {
		t.Fatalf("routeForSlug = %q", got)
	}
	if got := routeForSlug(""); got != "/" {
		t.Fatalf("routeForSlug empty = %q", got)
	}
	if got := outputPathForRoute("/my-post/"); got != "my-post/index.html" {
		t.Fatalf("outputPathForRoute = %q", got)
	}
	if got := outputPathForRoute("/"); got != "index.html" {
		t.Fatalf("outputPathForRoute root = %q", got)
	}
	if got := tagRoute("Android Memory"); got != "/tags/android-memory/" {
		t.Fatalf("tagRoute = %q", got)
	}
}

func TestPageIDIsDeterministic(t *testing.T) {
	a := pageID("/my-post/")
	b := pageID("/my-post/")
	if a != b {
		t.Fatalf("pageID not stable: %s vs %s", a, b)
	}
	if a == pageID("/other-post/") {
		t.Fatal("distinct routes share a page ID")
	}
}

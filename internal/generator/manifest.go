package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	manifestFileName    = ".press-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build to support
// incremental runs: documents whose source checksum is unchanged are skipped.
type buildManifest struct {
	Version     int                     `json:"version"`
	GeneratedAt time.Time               `json:"generated_at"`
	Pages       map[string]manifestPage `json:"pages"`
}

type manifestPage struct {
	ID             string    `json:"id"`
	Route          string    `json:"route"`
	Output         string    `json:"output"`
	Template       string    `json:"template"`
	Checksum       string    `json:"checksum"`
	SourceChecksum string    `json:"source_checksum"`
	LastModified   time.Time `json:"last_modified"`
	RenderedAt     time.Time `json:"rendered_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	var manifest buildManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Version != manifestFileVersion {
		return nil, fmt.Errorf("generator: unsupported manifest version %d", manifest.Version)
	}
	if manifest.Pages == nil {
		manifest.Pages = map[string]manifestPage{}
	}
	return &manifest, nil
}

func (m *buildManifest) serialize() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generator: serialize manifest: %w", err)
	}
	return append(data, '\n'), nil
}

func (m *buildManifest) setPage(entry manifestPage) {
	route := strings.TrimSpace(entry.Route)
	if route == "" {
		return
	}
	m.Pages[route] = entry
}

func (m *buildManifest) page(route string) (manifestPage, bool) {
	entry, ok := m.Pages[strings.TrimSpace(route)]
	return entry, ok
}

// unchanged reports whether a document can be skipped: same source checksum
// as the previous build for the same route.
func (m *buildManifest) unchanged(route, sourceChecksum string) bool {
	if m == nil || sourceChecksum == "" {
		return false
	}
	entry, ok := m.page(route)
	return ok && entry.SourceChecksum == sourceChecksum
}

// routes lists known routes in stable order, mostly for tests and debugging.
func (m *buildManifest) routes() []string {
	out := make([]string, 0, len(m.Pages))
	for route := range m.Pages {
		out = append(out, route)
	}
	sort.Strings(out)
	return out
}

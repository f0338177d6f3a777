package interfaces

import (
	"context"
	"io"
)

// StorageProvider abstracts where generated artifacts are written. The default
// implementation targets the local filesystem; hosts can supply object-store
// backed providers without touching the generator.
type StorageProvider interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content io.Reader, meta FileMetadata) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

// FileMetadata describes a generated artifact for storage providers that
// record content types or checksums (e.g. object stores).
type FileMetadata struct {
	ContentType string
	Checksum    string
	Size        int64
	Category    string
}

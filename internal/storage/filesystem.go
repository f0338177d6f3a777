// Package storage contains artifact storage providers for generated sites.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// Filesystem writes generated artifacts beneath a root directory.
type Filesystem struct {
	root string
}

var _ interfaces.StorageProvider = (*Filesystem)(nil)

// NewFilesystem returns a provider rooted at the supplied directory. The
// directory is created on first write.
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{root: filepath.Clean(root)}
}

// Root exposes the resolved output root for callers that report build paths.
func (f *Filesystem) Root() string {
	return f.root
}

func (f *Filesystem) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("storage: ensure dir %s: %w", path, err)
	}
	return nil
}

func (f *Filesystem) WriteFile(ctx context.Context, path string, content io.Reader, meta interfaces.FileMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("storage: write %s requires content", path)
	}
	target, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("storage: ensure parent for %s: %w", path, err)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", path, err)
	}
	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", path, err)
	}
	return nil
}

func (f *Filesystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

func (f *Filesystem) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return nil
}

// resolve joins path under the root and rejects traversal outside it.
func (f *Filesystem) resolve(path string) (string, error) {
	clean := filepath.Clean(strings.TrimSpace(path))
	if clean == "" || clean == "." {
		return f.root, nil
	}
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("storage: path %q escapes output root", path)
	}
	return filepath.Join(f.root, clean), nil
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-press/pkg/interfaces"
)

func TestFilesystemWriteAndRead(t *testing.T) {
	provider := NewFilesystem(t.TempDir())
	ctx := context.Background()

	err := provider.WriteFile(ctx, "posts/hello/index.html", strings.NewReader("<html></html>"), interfaces.FileMetadata{
		ContentType: "text/html",
	})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := provider.ReadFile(ctx, "posts/hello/index.html")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Fatalf("content mismatch: %q", string(data))
	}
}

func TestFilesystemRejectsTraversal(t *testing.T) {
	provider := NewFilesystem(t.TempDir())

	err := provider.WriteFile(context.Background(), "../outside.html", strings.NewReader("x"), interfaces.FileMetadata{})
	if err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestFilesystemRemove(t *testing.T) {
	root := t.TempDir()
	provider := NewFilesystem(root)
	ctx := context.Background()

	if err := provider.WriteFile(ctx, "a/b.html", strings.NewReader("x"), interfaces.FileMetadata{}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := provider.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Fatalf("expected directory to be removed, got %v", err)
	}
}

func TestFilesystemEnsureDir(t *testing.T) {
	root := t.TempDir()
	provider := NewFilesystem(root)

	if err := provider.EnsureDir(context.Background(), "tags/go"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "tags", "go"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, got %v %v", info, err)
	}
}

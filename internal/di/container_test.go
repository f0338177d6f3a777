package di

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-press/internal/generator"
	"github.com/goliatone/go-press/internal/runtimeconfig"
	"github.com/goliatone/go-press/pkg/interfaces"
)

func containerConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.OutputDir = t.TempDir()
	cfg.Logging.Enabled = false
	return cfg
}

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"posts/a.md": &fstest.MapFile{Data: []byte("---\ntitle: A\ndate: 2025-01-01T00:00:00Z\n---\nbody\n")},
	}
}

func TestNewContainerResolvesDefaults(t *testing.T) {
	container, err := NewContainer(containerConfig(t), WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.MarkdownService() == nil {
		t.Fatal("markdown service not resolved")
	}
	if container.GeneratorService() == nil {
		t.Fatal("generator service not resolved")
	}
	if container.TemplateRenderer() == nil {
		t.Fatal("template renderer not resolved")
	}
	if container.StorageProvider() == nil {
		t.Fatal("storage provider not resolved")
	}
	if container.LoggerProvider() != nil {
		t.Fatal("logger provider should be nil when logging is disabled")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := containerConfig(t)
	cfg.Content.Dir = ""
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("error = %v, want ErrContentDirRequired", err)
	}
}

func TestNewContainerDisabledGenerator(t *testing.T) {
	cfg := containerConfig(t)
	cfg.Generator.Enabled = false

	container, err := NewContainer(cfg, WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, err := container.GeneratorService().Build(context.Background(), generator.BuildOptions{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("Build error = %v, want ErrServiceDisabled", err)
	}
}

type overrideStorage struct {
	interfaces.StorageProvider
}

func TestNewContainerHonoursOverrides(t *testing.T) {
	storage := &overrideStorage{}
	container, err := NewContainer(containerConfig(t), WithContentFS(contentFS()), WithStorage(storage))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.StorageProvider() != storage {
		t.Fatal("storage override not honoured")
	}
}

func TestNewContainerBuildsConsoleLogger(t *testing.T) {
	cfg := containerConfig(t)
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "warn"

	container, err := NewContainer(cfg, WithContentFS(contentFS()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("console logger provider not resolved")
	}
}

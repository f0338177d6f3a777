package console

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-press/internal/logging"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestConsoleLoggerWritesFormattedEntry(t *testing.T) {
	var sink strings.Builder
	provider := NewProvider(Options{Writer: &sink, TimeFunc: fixedClock})

	logger := provider.GetLogger("press.test")
	logger.Info("build finished", "pages_built", 3)

	out := sink.String()
	if !strings.Contains(out, "2025-01-01T12:00:00Z INFO build finished") {
		t.Fatalf("unexpected entry prefix: %q", out)
	}
	if !strings.Contains(out, "logger=press.test") {
		t.Fatalf("logger name missing: %q", out)
	}
	if !strings.Contains(out, "pages_built=3") {
		t.Fatalf("structured arg missing: %q", out)
	}
}

func TestConsoleLoggerHonoursMinLevel(t *testing.T) {
	var sink strings.Builder
	minLevel := LevelWarn
	provider := NewProvider(Options{Writer: &sink, TimeFunc: fixedClock, MinLevel: &minLevel})

	logger := provider.GetLogger("press.test")
	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := sink.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("suppressed levels leaked: %q", out)
	}
	if !strings.Contains(out, "WARN visible") {
		t.Fatalf("warn entry missing: %q", out)
	}
}

func TestConsoleLoggerWithFieldsAndContext(t *testing.T) {
	var sink strings.Builder
	provider := NewProvider(Options{Writer: &sink, TimeFunc: fixedClock})

	ctx := logging.ContextWithFields(t.Context(), map[string]any{"request_id": "abc"})
	logger := logging.WithFields(provider.GetLogger("press.test"), map[string]any{"module": "press"})
	logger.WithContext(ctx).Info("hello")

	out := sink.String()
	if !strings.Contains(out, "module=press") {
		t.Fatalf("field missing: %q", out)
	}
	if !strings.Contains(out, "request_id=abc") {
		t.Fatalf("context field missing: %q", out)
	}
}

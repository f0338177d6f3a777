package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrContentDirRequired indicates the content directory is missing.
var ErrContentDirRequired = errors.New("press config: content directory is required")

// ErrGeneratorOutputDirRequired indicates the generator output directory is missing.
var ErrGeneratorOutputDirRequired = errors.New("press config: generator output directory is required when generator is enabled")

// ErrGeneratorWorkersInvalid rejects negative worker counts.
var ErrGeneratorWorkersInvalid = errors.New("press config: generator worker count must be zero or positive")

// ErrFeedLimitInvalid rejects negative feed item limits.
var ErrFeedLimitInvalid = errors.New("press config: feed item limit must be zero or positive")

var ErrLoggingProviderRequired = errors.New("press config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("press config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("press config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("press config: logging format is invalid")

// Config aggregates site metadata and behaviour toggles for the press module.
// Fields intentionally use simple types so host applications can extend them
// later.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Generator GeneratorConfig `yaml:"generator"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig carries site-wide metadata surfaced to every template.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Author      string `yaml:"author"`
	Language    string `yaml:"language"`
}

// ContentConfig captures filesystem discovery behaviour for documents.
type ContentConfig struct {
	Dir       string `yaml:"dir"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	Sanitize   bool     `yaml:"sanitize"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// GeneratorConfig captures behaviour for the static site builder.
type GeneratorConfig struct {
	Enabled         bool          `yaml:"enabled"`
	OutputDir       string        `yaml:"output_dir"`
	TemplateDir     string        `yaml:"template_dir"`
	CleanBuild      bool          `yaml:"clean_build"`
	Incremental     bool          `yaml:"incremental"`
	IncludeDrafts   bool          `yaml:"include_drafts"`
	GenerateSitemap bool          `yaml:"generate_sitemap"`
	GenerateRobots  bool          `yaml:"generate_robots"`
	GenerateFeed    bool          `yaml:"generate_feed"`
	FeedLimit       int           `yaml:"feed_limit"`
	Workers         int           `yaml:"workers"`
	WordsPerMinute  int           `yaml:"words_per_minute"`
	RenderTimeout   time.Duration `yaml:"render_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns opinionated defaults for a single-directory blog.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:    "Site",
			Language: "en",
		},
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Markdown: MarkdownConfig{},
		Generator: GeneratorConfig{
			Enabled:         true,
			OutputDir:       "dist",
			TemplateDir:     "",
			CleanBuild:      true,
			GenerateSitemap: true,
			GenerateRobots:  false,
			GenerateFeed:    true,
			FeedLimit:       0,
			Workers:         0,
			WordsPerMinute:  0,
		},
		Logging: LoggingConfig{
			Enabled:  true,
			Provider: "console",
			Level:    "info",
		},
	}
}

// Load reads a YAML site configuration file, layering it over DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("press config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("press config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if cfg.Generator.Workers < 0 {
			return ErrGeneratorWorkersInvalid
		}
		if cfg.Generator.FeedLimit < 0 {
			return ErrFeedLimitInvalid
		}
	}
	if cfg.Logging.Enabled {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

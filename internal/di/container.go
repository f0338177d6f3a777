// Package di wires module dependencies. Every collaborator can be overridden
// through an Option so host applications and tests can swap implementations
// without touching the wiring.
package di

import (
	"io/fs"
	"strings"

	"github.com/goliatone/go-press/internal/generator"
	"github.com/goliatone/go-press/internal/logging/console"
	"github.com/goliatone/go-press/internal/logging/gologger"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/internal/runtimeconfig"
	"github.com/goliatone/go-press/internal/storage"
	"github.com/goliatone/go-press/internal/templates"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Container holds the resolved module dependencies.
type Container struct {
	Config runtimeconfig.Config

	logs      interfaces.LoggerProvider
	storage   interfaces.StorageProvider
	renderer  interfaces.TemplateRenderer
	parser    interfaces.MarkdownParser
	contentFS fs.FS

	markdownSvc  *markdown.Service
	generatorSvc generator.Service
}

var _ generator.DocumentSource = (*markdown.Service)(nil)

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.logs = provider
	}
}

// WithStorage overrides the default filesystem-backed storage provider.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		c.storage = sp
	}
}

// WithTemplateRenderer overrides the default template renderer.
func WithTemplateRenderer(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.renderer = tr
	}
}

// WithMarkdownParser overrides the default goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithContentFS reads documents from the supplied filesystem instead of the
// configured content directory. Tests use this with fstest.MapFS.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// NewContainer validates cfg and resolves every dependency that was not
// overridden through an option.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logs == nil && cfg.Logging.Enabled {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.logs = provider
	}

	parseOpts := parseOptions(cfg.Markdown)
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(parseOpts)
	}

	if c.markdownSvc == nil {
		mdCfg := markdown.Config{
			BasePath:  cfg.Content.Dir,
			Pattern:   cfg.Content.Pattern,
			Recursive: cfg.Content.Recursive,
			Parser:    parseOpts,
			Logs:      c.logs,
		}
		if c.contentFS != nil {
			mdCfg.BasePath = ""
			c.markdownSvc = markdown.NewServiceWithFS(mdCfg, c.parser, c.contentFS)
		} else {
			svc, err := markdown.NewService(mdCfg, c.parser)
			if err != nil {
				return nil, err
			}
			c.markdownSvc = svc
		}
	}

	if !cfg.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return c, nil
	}

	if c.renderer == nil {
		if dir := strings.TrimSpace(cfg.Generator.TemplateDir); dir != "" {
			renderer, err := templates.NewRenderer(dir)
			if err != nil {
				return nil, err
			}
			c.renderer = renderer.WithLogger(c.logs)
		} else {
			c.renderer = templates.Default().WithLogger(c.logs)
		}
	}

	if c.storage == nil {
		c.storage = storage.NewFilesystem(cfg.Generator.OutputDir)
	}

	svc, err := generator.NewService(generatorConfig(cfg), generator.Dependencies{
		Documents: c.markdownSvc,
		Renderer:  c.renderer,
		Storage:   c.storage,
		Logs:      c.logs,
	})
	if err != nil {
		return nil, err
	}
	c.generatorSvc = svc

	return c, nil
}

// MarkdownService returns the configured document service.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// GeneratorService returns the configured site builder.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// TemplateRenderer returns the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.renderer
}

// StorageProvider returns the configured storage provider.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// LoggerProvider returns the configured logger provider; nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.logs
}

func parseOptions(cfg runtimeconfig.MarkdownConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Extensions...),
		Sanitize:   cfg.Sanitize,
		HardWraps:  cfg.HardWraps,
		SafeMode:   cfg.SafeMode,
	}
}

func generatorConfig(cfg runtimeconfig.Config) generator.Config {
	return generator.Config{
		Site: generator.SiteMetadata{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			BaseURL:     cfg.Site.BaseURL,
			Author:      cfg.Site.Author,
			Language:    cfg.Site.Language,
		},
		OutputDir:       cfg.Generator.OutputDir,
		CleanBuild:      cfg.Generator.CleanBuild,
		Incremental:     cfg.Generator.Incremental,
		IncludeDrafts:   cfg.Generator.IncludeDrafts,
		GenerateSitemap: cfg.Generator.GenerateSitemap,
		GenerateRobots:  cfg.Generator.GenerateRobots,
		GenerateFeed:    cfg.Generator.GenerateFeed,
		FeedLimit:       cfg.Generator.FeedLimit,
		Workers:         cfg.Generator.Workers,
		WordsPerMinute:  cfg.Generator.WordsPerMinute,
	}
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     append([]string(nil), cfg.Focus...),
		})
	default:
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

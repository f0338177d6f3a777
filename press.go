package press

import (
	"context"

	"github.com/goliatone/go-press/internal/di"
	"github.com/goliatone/go-press/internal/generator"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// MarkdownService exports the document service contract for consumers of the
// press package.
type MarkdownService = *markdown.Service

// GeneratorService exports the static site builder contract.
type GeneratorService = generator.Service

// BuildOptions exports the per-build options accepted by Build.
type BuildOptions = generator.BuildOptions

// BuildResult exports the aggregated build report.
type BuildResult = generator.BuildResult

// RenderedPage exports the per-page build artifact metadata.
type RenderedPage = generator.RenderedPage

// RenderDiagnostic exports the per-document build diagnostic.
type RenderDiagnostic = generator.RenderDiagnostic

// Document exports the parsed document DTO.
type Document = interfaces.Document

// FrontMatter exports the parsed front-matter DTO.
type FrontMatter = interfaces.FrontMatter

// LoadOptions exports the per-call document loading options.
type LoadOptions = interfaces.LoadOptions

// ParseOptions exports the per-call markdown parsing options.
type ParseOptions = interfaces.ParseOptions

// ErrGeneratorDisabled is returned by Build and Clean when the generator
// feature is disabled in configuration.
var ErrGeneratorDisabled = generator.ErrServiceDisabled

// Module represents the top level press runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a press module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markdown returns the configured document service.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Generator returns the configured site builder.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Build runs a full site build with the supplied options. When the
// configuration sets a render timeout the whole build runs under it.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := m.container.Config.Generator.RenderTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return m.container.GeneratorService().Build(ctx, opts)
}

// Clean removes every artifact below the configured output directory.
func (m *Module) Clean(ctx context.Context) error {
	return m.container.GeneratorService().Clean(ctx)
}

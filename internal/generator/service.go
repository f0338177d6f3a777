// Package generator assembles parsed documents into a static site: it renders
// each document through a template, produces listing and tag pages, and emits
// sitemap, robots, and feed artifacts alongside a build manifest.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/internal/markdown"
	"github.com/goliatone/go-press/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled    = errors.New("generator: service disabled")
	errRendererRequired   = errors.New("generator: template renderer is required")
	errDocumentsRequired  = errors.New("generator: document source is required")
	errStorageRequired    = errors.New("generator: storage provider is required for writes")
	defaultPostTemplate   = "post"
	defaultListTemplate   = "list"
	indexOutputPath       = "index.html"
	sitemapOutputPath     = "sitemap.xml"
	robotsOutputPath      = "robots.txt"
	feedOutputPath        = "feed.xml"
	htmlContentType       = "text/html; charset=utf-8"
	xmlContentType        = "application/xml; charset=utf-8"
	plainTextContentType  = "text/plain; charset=utf-8"
	jsonContentType       = "application/json; charset=utf-8"
	categoryPageArtifact  = "page"
	categoryIndexArtifact = "listing"
	categoryMetaArtifact  = "meta"
)

// Service describes the site builder contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the site builder.
type Config struct {
	Site            SiteMetadata
	OutputDir       string
	CleanBuild      bool
	Incremental     bool
	IncludeDrafts   bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool
	FeedLimit       int
	Workers         int
	WordsPerMinute  int
	DefaultTemplate string
	ListTemplate    string
}

// Validate rejects configurations the builder cannot honour.
func (cfg Config) Validate() error {
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.OutputDir, validation.Required),
		validation.Field(&cfg.Workers, validation.Min(0)),
		validation.Field(&cfg.FeedLimit, validation.Min(0)),
		validation.Field(&cfg.WordsPerMinute, validation.Min(0)),
	)
}

// BuildOptions narrows the scope of a single build run.
type BuildOptions struct {
	IncludeDrafts bool
	DryRun        bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt     int
	PagesSkipped   int
	DraftsExcluded int
	Duration       time.Duration
	Rendered       []RenderedPage
	Diagnostics    []RenderDiagnostic
	Errors         []error
	DryRun         bool
}

// DocumentSource supplies parsed documents for a build; markdown.Service
// satisfies it. Lenient loading keeps document failures local.
type DocumentSource interface {
	LoadDirectoryLenient(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, []error)
}

// Dependencies lists the collaborators required by the builder.
type Dependencies struct {
	Documents DocumentSource
	Renderer  interfaces.TemplateRenderer
	Storage   interfaces.StorageProvider
	Logs      interfaces.LoggerProvider
}

// NewService wires a builder with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if deps.Documents == nil {
		return nil, errDocumentsRequired
	}
	if strings.TrimSpace(cfg.DefaultTemplate) == "" {
		cfg.DefaultTemplate = defaultPostTemplate
	}
	if strings.TrimSpace(cfg.ListTemplate) == "" {
		cfg.ListTemplate = defaultListTemplate
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logging.GeneratorLogger(deps.Logs),
		now:    time.Now,
	}, nil
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

// publishedPage pairs the rendered artifact with the resolved page context so
// listing pages and feeds can be derived without re-parsing.
type publishedPage struct {
	Rendered RenderedPage
	Context  PageContext
}

type pageJob struct {
	doc      *interfaces.Document
	context  PageContext
	template string
	output   string
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	buildMeta := BuildMetadata{GeneratedAt: start.UTC(), Options: opts}
	result := &BuildResult{DryRun: opts.DryRun}

	docs, docErrs := s.deps.Documents.LoadDirectoryLenient(ctx, ".", interfaces.LoadOptions{})
	for _, err := range docErrs {
		s.logger.Warn("document rejected", "error", err)
		result.Diagnostics = append(result.Diagnostics, RenderDiagnostic{Err: err})
		result.Errors = append(result.Errors, err)
	}

	manifest := s.loadManifest(ctx)

	includeDrafts := s.cfg.IncludeDrafts || opts.IncludeDrafts
	jobs, classifications := s.classify(docs, includeDrafts, manifest)
	for _, diag := range classifications {
		result.Diagnostics = append(result.Diagnostics, diag.diagnostic)
		if diag.err != nil {
			result.Errors = append(result.Errors, diag.err)
		}
		if diag.skipped {
			if diag.diagnostic.Reason == reasonDraft {
				result.DraftsExcluded++
			} else {
				result.PagesSkipped++
			}
		}
	}

	var (
		mu        sync.Mutex
		published []publishedPage
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			result.Errors = append(result.Errors, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		result.Rendered = append(result.Rendered, outcome.page)
		published = append(published, publishedPage{Rendered: outcome.page, Context: s.contextForRoute(jobs, outcome.page.Route)})
	}

	if err := s.renderAll(ctx, jobs, buildMeta, collect); err != nil {
		result.Duration = s.now().Sub(start)
		return result, err
	}

	sort.Slice(result.Rendered, func(i, j int) bool {
		return result.Rendered[i].Route < result.Rendered[j].Route
	})
	sort.Slice(published, func(i, j int) bool {
		return published[i].Rendered.Route < published[j].Rendered.Route
	})

	if opts.DryRun {
		result.Duration = s.now().Sub(start)
		return result, nil
	}

	if s.deps.Storage == nil {
		result.Duration = s.now().Sub(start)
		return result, errStorageRequired
	}

	if s.cfg.CleanBuild {
		if err := s.deps.Storage.Remove(ctx, "."); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	if err := s.persistPages(ctx, result.Rendered); err != nil {
		result.Duration = s.now().Sub(start)
		result.Errors = append(result.Errors, err)
		return result, err
	}

	extraRoutes := s.writeListings(ctx, published, buildMeta, result)

	sitemapPages := append([]RenderedPage(nil), result.Rendered...)
	sitemapPages = append(sitemapPages, s.skippedSitemapEntries(classifications, manifest)...)
	sitemapPages = append(sitemapPages, extraRoutes...)

	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(s.cfg.Site.BaseURL, sitemapPages, buildMeta.GeneratedAt)
		if err := s.writeArtifact(ctx, sitemapOutputPath, sitemap, xmlContentType, categoryMetaArtifact); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	if s.cfg.GenerateRobots {
		robots := buildRobots(s.cfg.Site.BaseURL, s.cfg.GenerateSitemap)
		if err := s.writeArtifact(ctx, robotsOutputPath, robots, plainTextContentType, categoryMetaArtifact); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	if s.cfg.GenerateFeed {
		items := buildFeedItems(s.cfg.Site, published, s.cfg.FeedLimit)
		feed := buildFeedXML(s.cfg.Site, items, buildMeta.GeneratedAt)
		if err := s.writeArtifact(ctx, feedOutputPath, feed, xmlContentType, categoryMetaArtifact); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	s.persistManifest(ctx, manifest, result, buildMeta)

	result.Duration = s.now().Sub(start)
	s.logger.Info("build finished",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"drafts_excluded", result.DraftsExcluded,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	if s.deps.Storage == nil {
		return errStorageRequired
	}
	return s.deps.Storage.Remove(ctx, ".")
}

const (
	reasonDraft         = "draft"
	reasonUnpublishable = "missing date"
	reasonUnchanged     = "unchanged since last build"
)

// classify splits loaded documents into render jobs and skip/error outcomes.
func (s *service) classify(docs []*interfaces.Document, includeDrafts bool, manifest *buildManifest) ([]pageJob, []renderOutcome) {
	var (
		jobs     []pageJob
		outcomes []renderOutcome
	)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		fm := doc.FrontMatter
		slugValue := documentSlug(fm, doc.FilePath)
		route := routeForSlug(slugValue)

		if fm.Draft && !includeDrafts {
			outcomes = append(outcomes, renderOutcome{
				skipped: true,
				diagnostic: RenderDiagnostic{
					SourcePath: doc.FilePath,
					Route:      route,
					Skipped:    true,
					Reason:     reasonDraft,
				},
			})
			continue
		}

		if strings.TrimSpace(fm.Title) == "" {
			err := missingTitleError(doc.FilePath)
			outcomes = append(outcomes, renderOutcome{
				err: err,
				diagnostic: RenderDiagnostic{
					SourcePath: doc.FilePath,
					Route:      route,
					Err:        err,
				},
			})
			continue
		}

		if fm.Date.IsZero() {
			outcomes = append(outcomes, renderOutcome{
				skipped: true,
				diagnostic: RenderDiagnostic{
					SourcePath: doc.FilePath,
					Route:      route,
					Skipped:    true,
					Reason:     reasonUnpublishable,
				},
			})
			continue
		}

		sourceChecksum := hex.EncodeToString(doc.Checksum)
		if s.cfg.Incremental && !s.cfg.CleanBuild && manifest.unchanged(route, sourceChecksum) {
			outcomes = append(outcomes, renderOutcome{
				skipped: true,
				diagnostic: RenderDiagnostic{
					SourcePath: doc.FilePath,
					Route:      route,
					Skipped:    true,
					Reason:     reasonUnchanged,
				},
			})
			continue
		}

		templateName := strings.TrimSpace(fm.Template)
		if templateName == "" {
			templateName = s.cfg.DefaultTemplate
		}

		words := countWords(doc.Body)
		pageCtx := PageContext{
			Title:           fm.Title,
			Summary:         fm.Summary,
			Date:            fm.Date,
			Tags:            append([]string(nil), fm.Tags...),
			Author:          fm.Author,
			Slug:            slugValue,
			Route:           route,
			Content:         string(doc.BodyHTML),
			WordCount:       words,
			ReadingTime:     readingTimeMinutes(words, s.cfg.WordsPerMinute),
			Cover:           fm.Cover,
			ShowTOC:         fm.ShowTOC,
			ShowReadingTime: fm.ShowReadingTime,
			ShowBreadcrumbs: fm.ShowBreadcrumbs,
			Draft:           fm.Draft,
			Custom:          fm.Custom,
			SourcePath:      doc.FilePath,
			LastModified:    doc.LastModified,
		}
		if fm.ShowTOC {
			pageCtx.Outline = markdown.ExtractOutline(doc.Body)
		}

		jobs = append(jobs, pageJob{
			doc:      doc,
			context:  pageCtx,
			template: templateName,
			output:   outputPathForRoute(route),
		})
	}

	return jobs, outcomes
}

func (s *service) renderAll(ctx context.Context, jobs []pageJob, buildMeta BuildMetadata, collect func(renderOutcome)) error {
	workers := s.effectiveWorkerCount(len(jobs))
	if workers <= 1 || len(jobs) <= 1 {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			collect(s.renderPage(job, buildMeta))
		}
		return nil
	}

	queue := make(chan pageJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				select {
				case <-ctx.Done():
					collect(renderOutcome{
						err: ctx.Err(),
						diagnostic: RenderDiagnostic{
							SourcePath: job.doc.FilePath,
							Route:      job.context.Route,
							Err:        ctx.Err(),
						},
					})
				default:
					collect(s.renderPage(job, buildMeta))
				}
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()
	return ctx.Err()
}

// renderPage assembles a single document into its final HTML artifact.
func (s *service) renderPage(job pageJob, buildMeta BuildMetadata) renderOutcome {
	start := s.now()

	templateCtx := TemplateContext{
		Site:  s.cfg.Site,
		Page:  job.context,
		Build: buildMeta,
	}

	html, err := s.deps.Renderer.Render(job.template, templateCtx)
	duration := s.now().Sub(start)
	if err != nil {
		wrapped := renderFailedError(job.doc.FilePath, err)
		logging.WithDocumentContext(s.logger, job.doc.FilePath, job.output, job.template).
			Error("page assembly failed", "error", err)
		return renderOutcome{
			err: wrapped,
			diagnostic: RenderDiagnostic{
				SourcePath: job.doc.FilePath,
				Route:      job.context.Route,
				Template:   job.template,
				Duration:   duration,
				Err:        wrapped,
			},
		}
	}

	sum := sha256.Sum256([]byte(html))
	page := RenderedPage{
		ID:             pageID(job.context.Route),
		Route:          job.context.Route,
		Output:         job.output,
		Template:       job.template,
		HTML:           html,
		Checksum:       hex.EncodeToString(sum[:]),
		SourcePath:     job.doc.FilePath,
		SourceChecksum: hex.EncodeToString(job.doc.Checksum),
		LastModified:   job.doc.LastModified,
		Duration:       duration,
	}

	return renderOutcome{
		page: page,
		diagnostic: RenderDiagnostic{
			SourcePath: job.doc.FilePath,
			Route:      job.context.Route,
			Template:   job.template,
			Duration:   duration,
		},
	}
}

func (s *service) persistPages(ctx context.Context, pages []RenderedPage) error {
	for _, page := range pages {
		meta := interfaces.FileMetadata{
			ContentType: htmlContentType,
			Checksum:    page.Checksum,
			Size:        int64(len(page.HTML)),
			Category:    categoryPageArtifact,
		}
		if err := s.deps.Storage.EnsureDir(ctx, path.Dir(page.Output)); err != nil {
			return fmt.Errorf("generator: ensure directory for %s: %w", page.Output, err)
		}
		if err := s.deps.Storage.WriteFile(ctx, page.Output, strings.NewReader(page.HTML), meta); err != nil {
			return fmt.Errorf("generator: persist %s: %w", page.Output, err)
		}
	}
	return nil
}

// writeListings renders the home index and per-tag listing pages. Failures
// are recorded against the result but never abort the build.
func (s *service) writeListings(ctx context.Context, published []publishedPage, buildMeta BuildMetadata, result *BuildResult) []RenderedPage {
	var extra []RenderedPage

	items := listItems(published)
	indexCtx := ListContext{
		Site:  s.cfg.Site,
		Title: s.cfg.Site.Title,
		Items: items,
		Build: buildMeta,
	}
	if html, err := s.deps.Renderer.Render(s.cfg.ListTemplate, indexCtx); err != nil {
		wrapped := renderFailedError(indexOutputPath, err)
		result.Errors = append(result.Errors, wrapped)
	} else if err := s.writeArtifact(ctx, indexOutputPath, html, htmlContentType, categoryIndexArtifact); err != nil {
		result.Errors = append(result.Errors, err)
	} else {
		extra = append(extra, RenderedPage{Route: "/", Output: indexOutputPath, LastModified: buildMeta.GeneratedAt})
	}

	for _, tag := range collectTags(published) {
		route := tagRoute(tag)
		output := outputPathForRoute(route)
		tagCtx := ListContext{
			Site:  s.cfg.Site,
			Title: tag,
			Tag:   tag,
			Items: listItemsForTag(published, tag),
			Build: buildMeta,
		}
		if html, err := s.deps.Renderer.Render(s.cfg.ListTemplate, tagCtx); err != nil {
			result.Errors = append(result.Errors, renderFailedError(output, err))
			continue
		} else if err := s.writeArtifact(ctx, output, html, htmlContentType, categoryIndexArtifact); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		extra = append(extra, RenderedPage{Route: route, Output: output, LastModified: buildMeta.GeneratedAt})
	}

	return extra
}

func (s *service) writeArtifact(ctx context.Context, target, content, contentType, category string) error {
	sum := sha256.Sum256([]byte(content))
	meta := interfaces.FileMetadata{
		ContentType: contentType,
		Checksum:    hex.EncodeToString(sum[:]),
		Size:        int64(len(content)),
		Category:    category,
	}
	if err := s.deps.Storage.EnsureDir(ctx, path.Dir(target)); err != nil {
		return fmt.Errorf("generator: ensure directory for %s: %w", target, err)
	}
	if err := s.deps.Storage.WriteFile(ctx, target, strings.NewReader(content), meta); err != nil {
		return fmt.Errorf("generator: persist %s: %w", target, err)
	}
	return nil
}

func (s *service) loadManifest(ctx context.Context) *buildManifest {
	if !s.cfg.Incremental || s.deps.Storage == nil {
		return newBuildManifest()
	}
	data, err := s.deps.Storage.ReadFile(ctx, manifestFileName)
	if err != nil {
		return newBuildManifest()
	}
	manifest, err := parseManifest(data)
	if err != nil {
		s.logger.Warn("ignoring unreadable build manifest", "error", err)
		return newBuildManifest()
	}
	return manifest
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest, result *BuildResult, buildMeta BuildMetadata) {
	if len(result.Errors) > 0 {
		return
	}
	manifest.GeneratedAt = buildMeta.GeneratedAt
	for _, page := range result.Rendered {
		manifest.setPage(manifestPage{
			ID:             page.ID.String(),
			Route:          page.Route,
			Output:         page.Output,
			Template:       page.Template,
			Checksum:       page.Checksum,
			SourceChecksum: page.SourceChecksum,
			LastModified:   page.LastModified,
			RenderedAt:     buildMeta.GeneratedAt,
		})
	}
	data, err := manifest.serialize()
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}
	if err := s.writeArtifact(ctx, manifestFileName, string(data), jsonContentType, categoryMetaArtifact); err != nil {
		result.Errors = append(result.Errors, err)
	}
}

// skippedSitemapEntries resurrects manifest data for incrementally skipped
// pages so the sitemap still lists them.
func (s *service) skippedSitemapEntries(outcomes []renderOutcome, manifest *buildManifest) []RenderedPage {
	var pages []RenderedPage
	for _, outcome := range outcomes {
		if !outcome.skipped || outcome.diagnostic.Reason != reasonUnchanged {
			continue
		}
		if entry, ok := manifest.page(outcome.diagnostic.Route); ok {
			pages = append(pages, RenderedPage{
				Route:        entry.Route,
				Output:       entry.Output,
				LastModified: entry.LastModified,
			})
		}
	}
	return pages
}

func (s *service) contextForRoute(jobs []pageJob, route string) PageContext {
	for _, job := range jobs {
		if job.context.Route == route {
			return job.context
		}
	}
	return PageContext{Route: route}
}

func (s *service) effectiveWorkerCount(jobs int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func listItems(published []publishedPage) []ListItem {
	items := make([]ListItem, 0, len(published))
	for _, page := range published {
		items = append(items, ListItem{
			Title:       page.Context.Title,
			Route:       page.Rendered.Route,
			Date:        page.Context.Date,
			Summary:     page.Context.Summary,
			Tags:        page.Context.Tags,
			Author:      page.Context.Author,
			ReadingTime: page.Context.ReadingTime,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].Route < items[j].Route
		}
		return items[i].Date.After(items[j].Date)
	})
	return items
}

func listItemsForTag(published []publishedPage, tag string) []ListItem {
	var filtered []publishedPage
	for _, page := range published {
		for _, candidate := range page.Context.Tags {
			if strings.EqualFold(candidate, tag) {
				filtered = append(filtered, page)
				break
			}
		}
	}
	return listItems(filtered)
}

func collectTags(published []publishedPage) []string {
	seen := map[string]string{}
	for _, page := range published {
		for _, tag := range page.Context.Tags {
			key := strings.ToLower(strings.TrimSpace(tag))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; !ok {
				seen[key] = strings.TrimSpace(tag)
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

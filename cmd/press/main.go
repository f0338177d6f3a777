package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	press "github.com/goliatone/go-press"
)

var moduleBuilder = press.New

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a YAML site configuration file")
		contentDir  = flag.String("content-dir", "", "Path to the markdown content root (overrides config)")
		outputDir   = flag.String("output-dir", "", "Directory receiving generated artifacts (overrides config)")
		templateDir = flag.String("templates", "", "Directory holding page templates (defaults to embedded templates)")
		baseURL     = flag.String("base-url", "", "Canonical site URL used in sitemap and feed output")
		drafts      = flag.Bool("drafts", false, "Include documents marked draft: true")
		dryRun      = flag.Bool("dry-run", false, "Render pages without writing artifacts")
		clean       = flag.Bool("clean", false, "Remove the output directory and exit")
	)

	flag.Parse()

	cfg := press.DefaultConfig()
	if *configPath != "" {
		loaded, err := press.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *outputDir != "" {
		cfg.Generator.OutputDir = *outputDir
	}
	if *templateDir != "" {
		cfg.Generator.TemplateDir = *templateDir
	}
	if *baseURL != "" {
		cfg.Site.BaseURL = *baseURL
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	ctx := context.Background()

	if *clean {
		if err := module.Clean(ctx); err != nil {
			log.Fatalf("clean output: %v", err)
		}
		fmt.Fprintf(os.Stdout, "Removed %s\n", cfg.Generator.OutputDir)
		return
	}

	result, err := module.Build(ctx, press.BuildOptions{
		IncludeDrafts: *drafts,
		DryRun:        *dryRun,
	})
	if err != nil {
		log.Fatalf("build site: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Built %d page(s), skipped %d, excluded %d draft(s) in %s\n",
		result.PagesBuilt, result.PagesSkipped, result.DraftsExcluded, result.Duration)

	if len(result.Errors) > 0 {
		var lines []string
		for _, buildErr := range result.Errors {
			lines = append(lines, "  - "+buildErr.Error())
		}
		fmt.Fprintf(os.Stderr, "%d document(s) failed:\n%s\n", len(result.Errors), strings.Join(lines, "\n"))
		os.Exit(1)
	}
}

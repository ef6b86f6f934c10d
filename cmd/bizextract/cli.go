package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bizextract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Crawler   bizextract.PageSource
	Extractor bizextract.Extractor
	NewStore  func(dir string) bizextract.PageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch, discovery and extraction"`

	MaxPages         int           `name:"max-pages" default:"25" help:"Maximum pages to collect per site"`
	Concurrency      int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Timeout          time.Duration `short:"t" default:"15s" help:"Fetch timeout per page"`
	Render           bool          `help:"Render pages in a headless browser before extracting"`
	ContentExtractor string        `name:"extractor" enum:"body,trafilatura,readability" default:"body" help:"Main-content extractor (${enum})"`
	Include          []string      `short:"I" help:"Only crawl URLs matching this regex (repeatable)"`
	Exclude          []string      `short:"X" help:"Skip URLs matching this regex (repeatable)"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a business website and save its pages as Markdown"`
	Extract ExtractCmd `cmd:"" help:"Extract a business record as JSON from a website or saved pages"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL string `arg:"" help:"Business website URL"`
	Dir string `arg:"" help:"Output directory for the saved pages"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" optional:"" help:"Business website URL"`
	Dir      string `short:"d" help:"Extract from pages saved by the crawl command instead of crawling"`
	Provider string `short:"p" enum:"gemini,openai" default:"gemini" help:"Extraction service (${enum})"`
	Model    string `short:"m" help:"Model name (default depends on provider)"`
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/crawl"
	"github.com/fwojciec/frontier/fs"
	"github.com/fwojciec/frontier/goquery"
	fronthttp "github.com/fwojciec/frontier/http"
	frontslog "github.com/fwojciec/frontier/slog"
)

// multiStore fans a result out to every configured store.
type multiStore []frontier.ResultStore

func (m multiStore) SaveResult(ctx context.Context, result *frontier.CrawlResult) error {
	for _, s := range m {
		if err := s.SaveResult(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	seeds := c.Seeds
	if c.Sitemap {
		source := frontslog.NewLoggingSeedSource(fronthttp.NewSitemapSeeds(nil), logger)
		for _, seed := range c.Seeds {
			discovered, err := source.DiscoverSeeds(deps.Ctx, seed)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "  sitemap %s: %v\n", seed, err)
				continue
			}
			seeds = append(seeds, discovered...)
		}
	}

	f := crawl.NewFrontier(crawl.Config{
		MaxDepth:      c.MaxDepth,
		RatePerSecond: c.Rate,
		BurstCapacity: c.Burst,
	})

	store := multiStore{deps.Store}
	var files *fs.ResultStore
	if c.Out != "" {
		files = fs.NewResultStore(filepath.Dir(c.Out), filepath.Base(c.Out))
		store = append(store, files)
	}

	crawler := &crawl.Crawler{
		Frontier:    frontslog.NewLoggingFrontier(f, logger),
		Fetcher:     fronthttp.NewFetcher(fronthttp.WithTimeout(c.Timeout)),
		Parser:      goquery.NewParser(),
		Store:       store,
		Logger:      logger,
		Concurrency: c.Concurrency,
		MaxPages:    c.MaxPages,
	}
	if c.Retry {
		crawler.RetryDelays = crawl.DefaultRetryDelays()
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling from %d seeds\n", len(seeds))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after the crawl completes
		}
	}

	result, err := crawler.Run(deps.Ctx, seeds, progress)
	if err != nil {
		if files != nil {
			_ = files.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	if files != nil {
		if err := files.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Out, err)
			return err
		}
	}

	stats := f.Stats()
	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d failed, %d abandoned)\n",
		result.Completed, result.Failed, result.Abandoned)
	fmt.Fprintf(deps.Stdout, "  %d enqueued, %d duplicates skipped, %d rate-limit deferrals\n",
		stats.Enqueued, stats.Deduplicated, stats.RateLimited)

	return nil
}

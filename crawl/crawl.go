// Package crawl provides the in-memory crawl frontier and the orchestration
// loop that drives it: leasing items, dispatching fetch+parse work under a
// concurrency bound, and feeding discovered links back into the frontier.
package crawl

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/frontier"
	"golang.org/x/sync/errgroup"
)

// Defaults for the orchestration loop.
const (
	DefaultConcurrency = 10
	DefaultIdleWait    = 100 * time.Millisecond

	// statsLogInterval is how many completions pass between progress logs.
	statsLogInterval = 10
)

// Crawler drives the crawl: it leases work from the frontier, dispatches it
// to the fetch+parse pipeline under a concurrency bound, and reports results
// back. The frontier is the only shared state; fetch and parse run fully in
// parallel.
type Crawler struct {
	Frontier frontier.Frontier
	Fetcher  frontier.Fetcher
	Parser   frontier.Parser

	// Store, when set, receives every completed result. Save failures are
	// logged and never abort the crawl.
	Store frontier.ResultStore

	Logger *slog.Logger

	// Concurrency bounds the number of in-flight fetch+parse units.
	Concurrency int

	// MaxPages bounds the total number of leased items; zero means the
	// crawl runs until the frontier drains.
	MaxPages int

	// IdleWait is how long the loop sleeps when the frontier yields
	// nothing, which covers both an empty queue with work still in
	// flight and a fully rate-limited queue.
	IdleWait time.Duration

	// RetryDelays enables per-fetch retry with the given backoff steps.
	// The default is nil: failed fetches are counted and dropped, and any
	// retry policy is the caller's layering decision.
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl run.
type Result struct {
	Completed int
	Failed    int
	Abandoned int
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Depth int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run seeds the frontier and processes items until the page budget is
// reached, the frontier drains, or ctx is canceled. On cancellation no new
// leases are taken, in-flight work drains, and interrupted items are counted
// as abandoned rather than silently dropped.
func (c *Crawler) Run(ctx context.Context, seeds []string, progress ProgressFunc) (*Result, error) {
	if c.Frontier == nil || c.Fetcher == nil || c.Parser == nil {
		return nil, frontier.Errorf(frontier.EINVALID, "crawler requires a frontier, a fetcher, and a parser")
	}

	logger := c.logger()

	for _, seed := range seeds {
		if _, err := c.Frontier.Enqueue(seed, 0); err != nil {
			logger.Warn("seed rejected",
				"url", seed,
				"code", frontier.ErrorCode(err),
			)
		}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	idleWait := c.IdleWait
	if idleWait <= 0 {
		idleWait = DefaultIdleWait
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var inFlight, leased atomic.Int64
	var completed, failed, abandoned atomic.Int64

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		if c.MaxPages > 0 && leased.Load() >= int64(c.MaxPages) {
			break
		}

		item, ok := c.Frontier.Lease()
		if !ok {
			// Empty queue with nothing in flight means the crawl is
			// done; otherwise this is a transient condition (work in
			// flight or every host rate limited), so back off briefly.
			if inFlight.Load() == 0 && c.Frontier.Len() == 0 {
				break
			}
			select {
			case <-ctx.Done():
				break loop
			case <-time.After(idleWait):
			}
			continue
		}

		leased.Add(1)
		inFlight.Add(1)

		// Go blocks while all concurrency slots are occupied, which is
		// the loop's backpressure point.
		g.Go(func() error {
			defer inFlight.Add(-1)

			result, err := c.process(gctx, item)
			if err != nil {
				if gctx.Err() != nil {
					abandoned.Add(1)
				} else {
					failed.Add(1)
				}
				logger.Warn("item failed",
					"url", item.URL,
					"depth", item.Depth,
					"error", err,
				)
				if progress != nil {
					progress(ProgressEvent{Type: ProgressFailed, URL: item.URL, Depth: item.Depth, Error: err})
				}
				return nil
			}

			c.Frontier.OnCompleted(result)

			if c.Store != nil {
				if err := c.Store.SaveResult(gctx, result); err != nil {
					logger.Error("save failed",
						"url", item.URL,
						"error", err,
					)
				}
			}

			n := completed.Add(1)
			if n%statsLogInterval == 0 {
				stats := c.Frontier.Stats()
				logger.Info("progress",
					"completed", n,
					"failed", failed.Load(),
					"queued", stats.QueueSize,
					"seen", stats.SeenURLs,
					"hosts", stats.ActiveHosts,
				)
			}
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, URL: item.URL, Depth: item.Depth})
			}
			return nil
		})
	}

	_ = g.Wait()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	result := &Result{
		Completed: int(completed.Load()),
		Failed:    int(failed.Load()),
		Abandoned: int(abandoned.Load()),
	}
	return result, ctx.Err()
}

// process runs one fetch+parse unit of work.
func (c *Crawler) process(ctx context.Context, item *frontier.CrawlItem) (*frontier.CrawlResult, error) {
	fetched, err := c.fetch(ctx, item.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := c.Parser.Parse(fetched)
	if err != nil {
		return nil, err
	}

	return &frontier.CrawlResult{
		Item:        item,
		StatusCode:  fetched.StatusCode,
		ContentType: fetched.ContentType,
		Title:       parsed.Title,
		ContentHash: parsed.ContentHash,
		TextExtract: parsed.TextExtract,
		Outlinks:    parsed.Outlinks,
	}, nil
}

func (c *Crawler) fetch(ctx context.Context, url string) (*frontier.FetchResult, error) {
	if len(c.RetryDelays) == 0 {
		return c.Fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, c.Logger, c.RetryDelays)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

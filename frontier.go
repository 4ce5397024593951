// Package frontier provides a crawl frontier scheduler: given an unbounded
// stream of discovered URLs it decides which URL to fetch next, subject to
// crawl-depth limits, URL and content deduplication, and per-host politeness.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., crawl/, sqlite/, goquery/).
package frontier

import "context"

// CanonicalID is the stable, hash-derived identity of a normalized URL.
// Two raw URLs that normalize identically share the same CanonicalID.
type CanonicalID string

// CrawlItem is a unit of pending work owned by the frontier while queued.
// Ordering key is Score (lower = more urgent). Items are transferred to the
// orchestrator on lease and discarded after processing; a retried URL gets a
// fresh item with RetryCount incremented.
type CrawlItem struct {
	Score       float64
	Host        string
	CanonicalID CanonicalID
	URL         string
	Depth       int
	RetryCount  int
}

// FrontierStats is a point-in-time snapshot of frontier counters.
type FrontierStats struct {
	Enqueued     int
	Leased       int
	Completed    int
	Deduplicated int
	RateLimited  int
	QueueSize    int
	SeenURLs     int
	ActiveHosts  int
}

// Frontier manages the crawl queue with deduplication, depth limiting,
// and per-host rate limiting.
type Frontier interface {
	// Enqueue canonicalizes rawURL and adds it to the queue at the given
	// depth. It returns the created item, or an error with code EINVALID
	// (malformed URL), EDEPTH (depth over limit), or EDUPLICATE (URL
	// already admitted). Rejections are not fatal to a crawl.
	Enqueue(rawURL string, depth int) (*CrawlItem, error)

	// Lease removes and returns the most urgent item whose host currently
	// admits a request. The bool result is false if the queue is empty or
	// every queued host is rate limited; use Len to tell the two apart.
	Lease() (*CrawlItem, bool)

	// OnCompleted records a completed fetch+parse result. Unless the
	// result's content hash has been seen before, each outlink is enqueued
	// at the item's depth + 1.
	OnCompleted(result *CrawlResult)

	// Len returns the number of queued items.
	Len() int

	// Stats returns a snapshot of the running counters.
	Stats() FrontierStats
}

// FetchResult is the raw outcome of fetching a URL.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Header      map[string][]string
}

// Fetcher retrieves content from URLs.
// The context controls per-request timeout and cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ParseResult holds content extracted from a fetched page.
// A parser must return a neutral (empty) result rather than an error
// when the markup is malformed.
type ParseResult struct {
	Title       string
	Outlinks    []string
	ContentHash string
	TextExtract string
	Metadata    map[string]string
}

// Parser extracts links and text from fetch results.
type Parser interface {
	Parse(result *FetchResult) (*ParseResult, error)
}

// CrawlResult combines a leased item with its fetch+parse outcome.
type CrawlResult struct {
	Item        *CrawlItem
	StatusCode  int
	ContentType string
	Title       string
	ContentHash string
	TextExtract string
	Outlinks    []string
}

// ResultStore persists crawl results. Saves are fire-and-forget from the
// orchestrator's perspective; a failing store must not abort the crawl.
type ResultStore interface {
	SaveResult(ctx context.Context, result *CrawlResult) error
}

// SeedSource discovers seed URLs for a site, e.g. from its sitemap.
type SeedSource interface {
	DiscoverSeeds(ctx context.Context, baseURL string) ([]string, error)
}

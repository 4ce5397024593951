package crawl

import (
	"container/heap"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/bloom"
)

// Compile-time interface verification.
var _ frontier.Frontier = (*Frontier)(nil)

// Content-hash filter sizing. The filter's memory is fixed regardless of
// crawl size, which keeps content dedup bounded even though the URL seen
// set grows monotonically.
const (
	contentHashExpected = 100_000
	contentHashFPRate   = 0.01
)

// Config holds frontier policy knobs.
type Config struct {
	// MaxDepth is the inclusive crawl depth ceiling. URLs enqueued at a
	// greater depth are rejected.
	MaxDepth int

	// RatePerSecond and BurstCapacity parameterize the token bucket
	// created lazily for each new host. RatePerSecond defaults to 1.0,
	// BurstCapacity to 1.
	RatePerSecond float64
	BurstCapacity int

	// HostImportance optionally overrides the default importance of 1.0
	// for specific hosts when scoring their URLs.
	HostImportance map[string]float64

	// Clock overrides the rate limiters' time source. Tests use this to
	// simulate token refills without sleeping.
	Clock func() time.Time
}

// Frontier is the in-memory crawl frontier: a min-ordered priority queue of
// pending items, an exact seen set for URL dedup, a Bloom filter for content
// dedup, and one lazily created token bucket per host.
//
// All entry points serialize on a single mutex, so fetch workers may call
// them concurrently. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu       sync.Mutex
	cfg      Config
	queue    *itemHeap
	seen     map[frontier.CanonicalID]struct{}
	content  *bloom.Filter
	limiters map[string]*TokenBucket
	stats    frontier.FrontierStats
}

// NewFrontier creates a Frontier with the given configuration.
func NewFrontier(cfg Config) *Frontier {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 1.0
	}
	if cfg.BurstCapacity <= 0 {
		cfg.BurstCapacity = 1
	}
	h := &itemHeap{}
	heap.Init(h)
	return &Frontier{
		cfg:      cfg,
		queue:    h,
		seen:     make(map[frontier.CanonicalID]struct{}),
		content:  bloom.NewFilter(contentHashExpected, contentHashFPRate),
		limiters: make(map[string]*TokenBucket),
	}
}

// Enqueue canonicalizes rawURL and adds it to the queue at the given depth.
// Returned errors carry EINVALID, EDEPTH, or EDUPLICATE codes; all are
// per-URL rejections, not fatal conditions.
func (f *Frontier) Enqueue(rawURL string, depth int) (*frontier.CrawlItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enqueueLocked(rawURL, depth)
}

func (f *Frontier) enqueueLocked(rawURL string, depth int) (*frontier.CrawlItem, error) {
	cid, norm, err := frontier.Canonicalize(rawURL)
	if err != nil {
		return nil, err
	}

	// The depth check precedes the seen-set mutation so a too-deep URL can
	// still be admitted later if rediscovered at a lower depth.
	if depth > f.cfg.MaxDepth {
		return nil, frontier.Errorf(frontier.EDEPTH, "depth %d exceeds limit %d for %q", depth, f.cfg.MaxDepth, norm)
	}

	if _, ok := f.seen[cid]; ok {
		f.stats.Deduplicated++
		return nil, frontier.Errorf(frontier.EDUPLICATE, "already seen %q", norm)
	}
	f.seen[cid] = struct{}{}

	host := hostOf(norm)
	item := &frontier.CrawlItem{
		Score:       frontier.Score(depth, 1.0, f.importance(host)),
		Host:        host,
		CanonicalID: cid,
		URL:         norm,
		Depth:       depth,
	}
	heap.Push(f.queue, item)

	if _, ok := f.limiters[host]; !ok {
		f.limiters[host] = f.newBucket()
	}

	f.stats.Enqueued++
	return item, nil
}

// Lease removes and returns the most urgent item whose host currently admits
// a request. Items on rate-limited hosts are skipped, not discarded, so an
// admissible lower-priority item is never starved behind a blocked one.
// The bool result is false when the queue is empty or every host is blocked.
func (f *Frontier) Lease() (*frontier.CrawlItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var leased *frontier.CrawlItem
	var blocked []*frontier.CrawlItem
	for f.queue.Len() > 0 {
		item, _ := heap.Pop(f.queue).(*frontier.CrawlItem)
		if lim := f.limiters[item.Host]; lim != nil && lim.Allow() {
			leased = item
			break
		}
		blocked = append(blocked, item)
	}
	for _, item := range blocked {
		heap.Push(f.queue, item)
	}

	if leased == nil {
		if len(blocked) > 0 {
			f.stats.RateLimited++
		}
		return nil, false
	}
	f.stats.Leased++
	return leased, true
}

// OnCompleted records a completed fetch+parse result. If the result's content
// hash was seen before, the result is discarded and its outlinks are never
// enqueued; otherwise each outlink is enqueued one level deeper than the item
// that discovered it.
func (f *Frontier) OnCompleted(result *frontier.CrawlResult) {
	if result == nil || result.Item == nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if result.ContentHash != "" {
		if f.content.Test(result.ContentHash) {
			return
		}
		f.content.Add(result.ContentHash)
	}

	for _, link := range result.Outlinks {
		// Rejections here are routine: duplicates and over-depth links
		// are counted by enqueueLocked.
		_, _ = f.enqueueLocked(link, result.Item.Depth+1)
	}

	f.stats.Completed++
}

// Len returns the number of queued items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Stats returns a snapshot of the running counters.
func (f *Frontier) Stats() frontier.FrontierStats {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := f.stats
	stats.QueueSize = f.queue.Len()
	stats.SeenURLs = len(f.seen)
	stats.ActiveHosts = len(f.limiters)
	return stats
}

func (f *Frontier) newBucket() *TokenBucket {
	var opts []BucketOption
	if f.cfg.Clock != nil {
		opts = append(opts, WithClock(f.cfg.Clock))
	}
	return NewTokenBucket(f.cfg.RatePerSecond, f.cfg.BurstCapacity, opts...)
}

func (f *Frontier) importance(host string) float64 {
	if v, ok := f.cfg.HostImportance[host]; ok {
		return v
	}
	return 1.0
}

// hostOf extracts the hostname from a normalized URL. Canonicalize has
// already validated the URL, so a parse failure maps to an empty host.
func hostOf(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// itemHeap implements heap.Interface for the pending-item priority queue.
// Lower scores are more urgent and surface first (min-heap).
type itemHeap []*frontier.CrawlItem

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	return h[i].Score < h[j].Score
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) {
	item, _ := x.(*frontier.CrawlItem)
	*h = append(*h, item)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

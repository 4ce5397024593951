// Package mock provides function-field mock implementations of the
// frontier interfaces for testing.
package mock

import "github.com/fwojciec/frontier"

var _ frontier.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of frontier.Frontier.
type Frontier struct {
	EnqueueFn     func(rawURL string, depth int) (*frontier.CrawlItem, error)
	LeaseFn       func() (*frontier.CrawlItem, bool)
	OnCompletedFn func(result *frontier.CrawlResult)
	LenFn         func() int
	StatsFn       func() frontier.FrontierStats
}

func (f *Frontier) Enqueue(rawURL string, depth int) (*frontier.CrawlItem, error) {
	return f.EnqueueFn(rawURL, depth)
}

func (f *Frontier) Lease() (*frontier.CrawlItem, bool) {
	return f.LeaseFn()
}

func (f *Frontier) OnCompleted(result *frontier.CrawlResult) {
	f.OnCompletedFn(result)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Stats() frontier.FrontierStats {
	return f.StatsFn()
}

package mock

import (
	"context"

	"github.com/fwojciec/frontier"
)

var _ frontier.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of frontier.ResultStore.
type ResultStore struct {
	SaveResultFn func(ctx context.Context, result *frontier.CrawlResult) error
}

func (s *ResultStore) SaveResult(ctx context.Context, result *frontier.CrawlResult) error {
	return s.SaveResultFn(ctx, result)
}

var _ frontier.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of frontier.SeedSource.
type SeedSource struct {
	DiscoverSeedsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SeedSource) DiscoverSeeds(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverSeedsFn(ctx, baseURL)
}

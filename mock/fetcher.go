package mock

import (
	"context"

	"github.com/fwojciec/frontier"
)

var _ frontier.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of frontier.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*frontier.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*frontier.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ frontier.Parser = (*Parser)(nil)

// Parser is a mock implementation of frontier.Parser.
type Parser struct {
	ParseFn func(result *frontier.FetchResult) (*frontier.ParseResult, error)
}

func (p *Parser) Parse(result *frontier.FetchResult) (*frontier.ParseResult, error) {
	return p.ParseFn(result)
}

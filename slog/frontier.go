package slog

import (
	"log/slog"

	"github.com/fwojciec/frontier"
)

// Ensure LoggingFrontier implements frontier.Frontier.
var _ frontier.Frontier = (*LoggingFrontier)(nil)

// LoggingFrontier wraps a Frontier with debug logging for scheduling decisions.
type LoggingFrontier struct {
	next   frontier.Frontier
	logger *slog.Logger
}

// NewLoggingFrontier creates a new LoggingFrontier.
func NewLoggingFrontier(next frontier.Frontier, logger *slog.Logger) *LoggingFrontier {
	return &LoggingFrontier{next: next, logger: logger}
}

// Enqueue delegates to the wrapped frontier and logs the outcome.
func (f *LoggingFrontier) Enqueue(rawURL string, depth int) (*frontier.CrawlItem, error) {
	item, err := f.next.Enqueue(rawURL, depth)
	if err != nil {
		f.logger.Debug("enqueue rejected",
			"url", rawURL,
			"depth", depth,
			"reason", frontier.ErrorCode(err),
		)
		return nil, err
	}
	f.logger.Debug("enqueued",
		"url", item.URL,
		"depth", item.Depth,
		"score", item.Score,
	)
	return item, nil
}

// Lease delegates to the wrapped frontier and logs leased items.
func (f *LoggingFrontier) Lease() (*frontier.CrawlItem, bool) {
	item, ok := f.next.Lease()
	if ok {
		f.logger.Debug("leased",
			"url", item.URL,
			"depth", item.Depth,
			"score", item.Score,
		)
	}
	return item, ok
}

// OnCompleted delegates to the wrapped frontier and logs the completion.
func (f *LoggingFrontier) OnCompleted(result *frontier.CrawlResult) {
	f.next.OnCompleted(result)
	f.logger.Debug("completed",
		"url", result.Item.URL,
		"status", result.StatusCode,
		"outlinks", len(result.Outlinks),
	)
}

// Len delegates to the wrapped frontier.
func (f *LoggingFrontier) Len() int {
	return f.next.Len()
}

// Stats delegates to the wrapped frontier.
func (f *LoggingFrontier) Stats() frontier.FrontierStats {
	return f.next.Stats()
}

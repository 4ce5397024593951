package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/frontier"
)

// Ensure LoggingSeedSource implements frontier.SeedSource.
var _ frontier.SeedSource = (*LoggingSeedSource)(nil)

// LoggingSeedSource wraps a SeedSource with debug logging.
type LoggingSeedSource struct {
	next   frontier.SeedSource
	logger *slog.Logger
}

// NewLoggingSeedSource creates a new LoggingSeedSource.
func NewLoggingSeedSource(next frontier.SeedSource, logger *slog.Logger) *LoggingSeedSource {
	return &LoggingSeedSource{next: next, logger: logger}
}

// DiscoverSeeds delegates to the wrapped source and logs the operation.
func (s *LoggingSeedSource) DiscoverSeeds(ctx context.Context, baseURL string) (seeds []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("seed discovery",
			"url", baseURL,
			"count", len(seeds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverSeeds(ctx, baseURL)
}

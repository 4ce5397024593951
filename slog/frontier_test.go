package slog_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/mock"
	frontierslog "github.com/fwojciec/frontier/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFrontier_Enqueue(t *testing.T) {
	t.Parallel()

	t.Run("logs accepted items with score and depth", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Frontier{
			EnqueueFn: func(rawURL string, depth int) (*frontier.CrawlItem, error) {
				return &frontier.CrawlItem{URL: rawURL, Depth: depth, Score: 0.4}, nil
			},
		}

		f := frontierslog.NewLoggingFrontier(inner, logger)
		item, err := f.Enqueue("https://example.com/", 1)

		require.NoError(t, err)
		assert.Equal(t, 1, item.Depth)
		output := buf.String()
		assert.Contains(t, output, "enqueued")
		assert.Contains(t, output, "url=https://example.com/")
		assert.Contains(t, output, "depth=1")
		assert.Contains(t, output, "score=0.4")
	})

	t.Run("logs rejections with their error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Frontier{
			EnqueueFn: func(rawURL string, depth int) (*frontier.CrawlItem, error) {
				return nil, frontier.Errorf(frontier.EDUPLICATE, "already seen")
			},
		}

		f := frontierslog.NewLoggingFrontier(inner, logger)
		_, err := f.Enqueue("https://example.com/", 0)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "enqueue rejected")
		assert.Contains(t, output, "reason="+frontier.EDUPLICATE)
	})
}

func TestLoggingFrontier_Lease(t *testing.T) {
	t.Parallel()

	t.Run("logs leased items", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Frontier{
			LeaseFn: func() (*frontier.CrawlItem, bool) {
				return &frontier.CrawlItem{URL: "https://example.com/", Score: 0.25}, true
			},
		}

		f := frontierslog.NewLoggingFrontier(inner, logger)
		_, ok := f.Lease()

		require.True(t, ok)
		assert.Contains(t, buf.String(), "leased")
	})

	t.Run("stays quiet when nothing is leasable", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Frontier{
			LeaseFn: func() (*frontier.CrawlItem, bool) { return nil, false },
		}

		f := frontierslog.NewLoggingFrontier(inner, logger)
		_, ok := f.Lease()

		assert.False(t, ok)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFrontier_OnCompleted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var delegated bool
	inner := &mock.Frontier{
		OnCompletedFn: func(result *frontier.CrawlResult) { delegated = true },
	}

	f := frontierslog.NewLoggingFrontier(inner, logger)
	f.OnCompleted(&frontier.CrawlResult{
		Item:       &frontier.CrawlItem{URL: "https://example.com/"},
		StatusCode: 200,
		Outlinks:   []string{"https://example.com/a"},
	})

	assert.True(t, delegated)
	output := buf.String()
	assert.Contains(t, output, "completed")
	assert.Contains(t, output, "status=200")
	assert.Contains(t, output, "outlinks=1")
}

func TestLoggingFrontier_delegates_reads(t *testing.T) {
	t.Parallel()

	inner := &mock.Frontier{
		LenFn:   func() int { return 7 },
		StatsFn: func() frontier.FrontierStats { return frontier.FrontierStats{Enqueued: 3} },
	}

	f := frontierslog.NewLoggingFrontier(inner, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, 7, f.Len())
	assert.Equal(t, 3, f.Stats().Enqueued)
}

package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ frontier.ResultStore = (*ResultStore)(nil)

// ResultStore persists crawl results to SQLite. All results saved through
// one store belong to a single crawl run, identified by a generated id.
type ResultStore struct {
	db      *DB
	crawlID string
}

// NewResultStore creates a ResultStore and registers a new crawl run.
func NewResultStore(db *DB) (*ResultStore, error) {
	s := &ResultStore{
		db:      db,
		crawlID: uuid.New().String(),
	}

	_, err := db.ExecContext(context.Background(), `
		INSERT INTO crawls (id, started_at) VALUES (?, ?)
	`, s.crawlID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CrawlID returns the id of the crawl run this store writes under.
func (s *ResultStore) CrawlID() string {
	return s.crawlID
}

// SaveResult upserts the page row and records its outbound links.
func (s *ResultStore) SaveResult(ctx context.Context, result *frontier.CrawlResult) error {
	if result == nil || result.Item == nil {
		return frontier.Errorf(frontier.EINVALID, "result item required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pages
		(canonical_id, crawl_id, url, depth, status_code, content_type, title, content_hash, text_extract, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(result.Item.CanonicalID), s.crawlID, result.Item.URL, result.Item.Depth,
		result.StatusCode, result.ContentType, result.Title, result.ContentHash,
		result.TextExtract, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, link := range result.Outlinks {
		if _, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO links (from_url, to_url) VALUES (?, ?)
		`, result.Item.URL, link); err != nil {
			return err
		}
	}

	return nil
}

// StoreStats summarizes what a store has persisted.
type StoreStats struct {
	Pages int
	Links int
}

// Stats counts the pages saved under this crawl run and all recorded links.
func (s *ResultStore) Stats(ctx context.Context) (*StoreStats, error) {
	var stats StoreStats

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE crawl_id = ?`, s.crawlID,
	).Scan(&stats.Pages)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&stats.Links)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

package main

import (
	"fmt"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	var crawls, pages, links int

	if err := deps.DB.QueryRowContext(deps.Ctx, `SELECT COUNT(*) FROM crawls`).Scan(&crawls); err != nil {
		return fmt.Errorf("failed to count crawls: %w", err)
	}
	if err := deps.DB.QueryRowContext(deps.Ctx, `SELECT COUNT(*) FROM pages`).Scan(&pages); err != nil {
		return fmt.Errorf("failed to count pages: %w", err)
	}
	if err := deps.DB.QueryRowContext(deps.Ctx, `SELECT COUNT(*) FROM links`).Scan(&links); err != nil {
		return fmt.Errorf("failed to count links: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "%d crawls, %d pages, %d links\n", crawls, pages, links)
	return nil
}

// Package fs provides file-based storage for crawled pages.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/frontier"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	if strings.Contains(path, "..") {
		return "", frontier.Errorf(frontier.EINVALID, "path traversal not allowed in %q", rawURL)
	}

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Otherwise append .md
	return path + ".md", nil
}

// FormatResult formats a crawled page with YAML frontmatter.
func FormatResult(result *frontier.CrawlResult) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(result.Item.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(result.Title)
	b.WriteString("\ndepth: ")
	b.WriteString(strconv.Itoa(result.Item.Depth))
	b.WriteString("\ncrawled: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(result.TextExtract)
	return b.String()
}

// Ensure ResultStore implements frontier.ResultStore at compile time.
var _ frontier.ResultStore = (*ResultStore)(nil)

// ResultStore implements frontier.ResultStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type ResultStore struct {
	baseDir string
	name    string
}

// NewResultStore creates a new ResultStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewResultStore(baseDir, name string) *ResultStore {
	return &ResultStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ResultStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ResultStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// SaveResult writes a crawled page under the temporary directory.
func (s *ResultStore) SaveResult(ctx context.Context, result *frontier.CrawlResult) error {
	if result == nil || result.Item == nil {
		return frontier.Errorf(frontier.EINVALID, "result item required")
	}

	relPath, err := URLToPath(result.Item.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content := FormatResult(result)
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit atomically replaces the final directory with the temporary one.
func (s *ResultStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards the temporary directory.
func (s *ResultStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

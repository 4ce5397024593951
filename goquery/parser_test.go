package goquery_test

import (
	"testing"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func htmlResult(url, body string) *frontier.FetchResult {
	return &frontier.FetchResult{
		URL:         url,
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(body),
	}
}

func TestParser_extracts_title_and_links(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()
	result, err := p.Parse(htmlResult("https://example.com/docs/", `
		<html>
		<head><title>  Docs Home </title></head>
		<body>
			<a href="https://example.com/docs/intro">Intro</a>
			<a href="/docs/guide">Guide</a>
			<a href="reference">Reference</a>
		</body>
		</html>`))
	require.NoError(t, err)

	assert.Equal(t, "Docs Home", result.Title)
	assert.Equal(t, []string{
		"https://example.com/docs/intro",
		"https://example.com/docs/guide",
		"https://example.com/docs/reference",
	}, result.Outlinks)
	assert.Equal(t, "3", result.Metadata["linkCount"])
}

func TestParser_skips_non_crawlable_links(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()
	result, err := p.Parse(htmlResult("https://example.com/", `
		<body>
			<a href="#section">Jump</a>
			<a href="mailto:hi@example.com">Mail</a>
			<a href="javascript:void(0)">Click</a>
			<a href="ftp://example.com/file">File</a>
			<a href="https://example.com/ok">OK</a>
		</body>`))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/ok"}, result.Outlinks)
}

func TestParser_deduplicates_links(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()
	result, err := p.Parse(htmlResult("https://example.com/", `
		<body>
			<a href="/page">One</a>
			<a href="/page">Two</a>
		</body>`))
	require.NoError(t, err)

	assert.Len(t, result.Outlinks, 1)
}

func TestParser_content_hash_is_stable_across_formatting(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()

	a, err := p.Parse(htmlResult("https://a.example/", "<body><p>hello   world</p></body>"))
	require.NoError(t, err)
	b, err := p.Parse(htmlResult("https://b.example/", "<body><p>hello\n\tworld</p></body>"))
	require.NoError(t, err)
	c, err := p.Parse(htmlResult("https://c.example/", "<body><p>something else</p></body>"))
	require.NoError(t, err)

	assert.Equal(t, a.ContentHash, b.ContentHash, "same text, different whitespace")
	assert.NotEqual(t, a.ContentHash, c.ContentHash)
}

func TestParser_neutral_result_for_non_HTML(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()
	result, err := p.Parse(&frontier.FetchResult{
		URL:         "https://example.com/data.json",
		ContentType: "application/json",
		Body:        []byte(`{"a":1}`),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Outlinks)
	assert.Empty(t, result.ContentHash)
	assert.Empty(t, result.Title)
}

func TestParser_neutral_result_for_empty_body(t *testing.T) {
	t.Parallel()

	p := goquery.NewParser()
	result, err := p.Parse(&frontier.FetchResult{URL: "https://example.com/"})
	require.NoError(t, err)

	assert.Empty(t, result.Outlinks)
	assert.Empty(t, result.ContentHash)
}

func TestParser_truncates_text_extract(t *testing.T) {
	t.Parallel()

	long := make([]byte, 0, 5000)
	for i := 0; i < 500; i++ {
		long = append(long, []byte("word word ")...)
	}

	p := goquery.NewParser()
	result, err := p.Parse(htmlResult("https://example.com/", "<body>"+string(long)+"</body>"))
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.TextExtract), 1000)
	assert.NotEmpty(t, result.TextExtract)
}

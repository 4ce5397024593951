// Package goquery provides an HTML implementation of frontier.Parser built
// on the goquery DOM library. It extracts the page title, outbound links,
// a text excerpt, and a content hash used for duplicate-content suppression.
package goquery

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/frontier"
)

// Compile-time interface verification.
var _ frontier.Parser = (*Parser)(nil)

// maxTextExtract bounds the stored text excerpt per page.
const maxTextExtract = 1000

// Parser extracts links and text from HTML fetch results.
// Parse is deterministic for identical input and never fails on malformed
// markup: it degrades to a neutral result instead.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts content from a fetch result. Non-HTML responses and
// unparseable markup yield a neutral result with no outlinks and no content
// hash, so the item completes without contributing new work.
func (p *Parser) Parse(result *frontier.FetchResult) (*frontier.ParseResult, error) {
	if result == nil || len(result.Body) == 0 {
		return &frontier.ParseResult{}, nil
	}
	if ct := result.ContentType; ct != "" && !strings.Contains(ct, "html") {
		return &frontier.ParseResult{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.Body))
	if err != nil {
		return &frontier.ParseResult{}, nil
	}

	base, err := url.Parse(result.URL)
	if err != nil {
		base = nil
	}

	var outlinks []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		link := resolveLink(base, strings.TrimSpace(href))
		if link == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		outlinks = append(outlinks, link)
	})

	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Whitespace-normalized text keeps the hash stable across formatting
	// differences in otherwise identical pages.
	text := strings.Join(strings.Fields(doc.Text()), " ")

	extract := text
	if len(extract) > maxTextExtract {
		extract = extract[:maxTextExtract]
	}

	return &frontier.ParseResult{
		Title:       title,
		Outlinks:    outlinks,
		ContentHash: hashText(text),
		TextExtract: extract,
		Metadata: map[string]string{
			"linkCount": strconv.Itoa(len(outlinks)),
		},
	}, nil
}

// resolveLink resolves href against base and filters out non-crawlable
// targets (fragments, mailto:, javascript:, and other non-HTTP schemes).
func resolveLink(base *url.URL, href string) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

// hashText computes the xxHash of the page text, rendered as hex.
func hashText(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

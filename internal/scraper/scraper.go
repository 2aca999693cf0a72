// Package scraper fetches article pages and extracts their readable
// body text for the writer.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

const (
	userAgent            = "Mozilla/5.0 (compatible; devdigest/1.0)"
	defaultMaxContentLen = 2000
	minContentLen        = 100
)

type Scraper struct {
	client        *http.Client
	maxContentLen int
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		client:        &http.Client{Timeout: timeout},
		maxContentLen: defaultMaxContentLen,
	}
}

// Extract fetches a page and returns its cleaned article text. Known
// blog platforms get targeted selectors first; anything the selector
// lists miss goes through readability. Content shorter than
// minContentLen is treated as a miss so callers fall back to the feed
// description.
func (s *Scraper) Extract(ctx context.Context, rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid article URL: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read article page: %w", err)
	}

	var content string
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		content = extractBySite(doc, parsedURL.Host)
	}

	if content == "" {
		article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
		if err != nil {
			return "", fmt.Errorf("extract content: %w", err)
		}
		content = article.TextContent
	}

	content = cleanContent(content, s.maxContentLen)
	if len(content) < minContentLen {
		return "", fmt.Errorf("content too short: %d chars", len(content))
	}

	return content, nil
}

// Selector lists per platform. Order matters: most specific first.
var devToSelectors = []string{
	"#article-body p",
	".crayons-article__main p",
	"article p",
}

var cssTricksSelectors = []string{
	".article-content p",
	".entry-content p",
	"article p",
}

var smashingSelectors = []string{
	".article__content p",
	"article p",
	".content p",
}

var genericSelectors = []string{
	"article p",
	".article p",
	".content p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

func extractBySite(doc *goquery.Document, host string) string {
	switch {
	case strings.Contains(host, "dev.to"):
		return collectParagraphs(doc, devToSelectors, 10, 1)
	case strings.Contains(host, "css-tricks.com"):
		return collectParagraphs(doc, cssTricksSelectors, 10, 1)
	case strings.Contains(host, "smashingmagazine.com"):
		return collectParagraphs(doc, smashingSelectors, 10, 1)
	default:
		return collectParagraphs(doc, genericSelectors, 20, 3)
	}
}

// collectParagraphs tries each selector in turn and keeps the first
// one that yields at least minParagraphs paragraphs longer than
// minLen.
func collectParagraphs(doc *goquery.Document, selectors []string, minLen, minParagraphs int) string {
	for _, selector := range selectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > minLen {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= minParagraphs {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

var junkIndicators = []string{
	"subscribe to",
	"newsletter",
	"cookie",
	"advertisement",
	"sponsored",
	"share this",
	"follow us",
	"related articles",
	"sign up for",
}

func isJunkLine(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// cleanContent normalizes whitespace, drops boilerplate lines and
// caps the result at maxLen, keeping whole paragraphs where it can.
func cleanContent(content string, maxLen int) string {
	if content == "" {
		return ""
	}

	var paragraphs []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if len(line) < 30 {
			continue
		}
		if isJunkLine(line) {
			continue
		}
		paragraphs = append(paragraphs, line)
	}

	text := strings.Join(paragraphs, "\n\n")
	if len(text) <= maxLen {
		return text
	}

	parts := strings.Split(text, "\n\n")
	var kept []string
	total := 0
	for _, p := range parts {
		if total+len(p) > maxLen {
			break
		}
		kept = append(kept, p)
		total += len(p) + 2
	}
	if len(kept) == 0 {
		// Single oversized paragraph; cut on a rune boundary.
		runes := []rune(text)
		if len(runes) > maxLen {
			runes = runes[:maxLen]
		}
		return string(runes)
	}

	return strings.Join(kept, "\n\n")
}

package feed

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"devdigest/internal/logger"
	"devdigest/internal/metrics"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FeedsConfig is the YAML source list:
//
//	feeds:
//	  - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed URL list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Fetcher downloads the configured sources one at a time and returns
// a bounded pool of cleaned articles. Per-source failures are logged
// and contribute nothing; they never fail the whole fetch.
type Fetcher struct {
	sources    []string
	maxPerFeed int
	maxTotal   int
	client     *http.Client
	parser     *gofeed.Parser
}

func NewFetcher(sources []string, maxPerFeed, maxTotal int, timeout time.Duration) *Fetcher {
	return &Fetcher{
		sources:    sources,
		maxPerFeed: maxPerFeed,
		maxTotal:   maxTotal,
		client:     &http.Client{Timeout: timeout},
		parser:     gofeed.NewParser(),
	}
}

// SourceCount reports how many sources are configured.
func (f *Fetcher) SourceCount() int {
	return len(f.sources)
}

// Fetch downloads every source in order. The pool keeps fetch order:
// all kept entries of source 1, then source 2, and so on, capped at
// maxTotal overall.
func (f *Fetcher) Fetch(ctx context.Context) []Article {
	var pool []Article
	successCount := 0

	for _, url := range f.sources {
		if len(pool) >= f.maxTotal {
			break
		}

		articles, err := f.fetchOne(ctx, url)
		if err != nil {
			logger.Warn("Feed fetch failed", "url", url, "error", err)
			metrics.Global.IncrementSourcesFailed()
			continue
		}

		remaining := f.maxTotal - len(pool)
		if len(articles) > remaining {
			articles = articles[:remaining]
		}
		pool = append(pool, articles...)
		successCount++
		metrics.Global.IncrementSourcesFetched()
		logger.Info("Fetched feed", "url", url, "articles", len(articles))
	}

	logger.Info("Feed fetch complete", "sources_ok", successCount, "sources_total", len(f.sources), "articles", len(pool))
	metrics.Global.AddArticlesFetched(len(pool))
	return pool
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	articles := make([]Article, 0, f.maxPerFeed)
	for _, item := range parsed.Items {
		if len(articles) >= f.maxPerFeed {
			break
		}

		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		// Remove tracking parameters
		if idx := strings.Index(link, "?utm_"); idx > 0 {
			link = link[:idx]
		}

		content := item.Description
		if content == "" {
			content = item.Content
		}

		articles = append(articles, Article{
			Title:     title,
			Link:      link,
			Published: item.Published,
			Content:   stripHTML(content),
		})
	}

	return articles, nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// stripHTML reduces a feed description to plain text. Feeds routinely
// embed markup in descriptions; the scorer and the writer both want
// text only. Tags become spaces so adjacent blocks stay separated.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlTagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

package app

import (
	"context"
	"fmt"
	"time"

	"devdigest/internal/feed"
	"devdigest/internal/logger"
	"devdigest/internal/mdx"
	"devdigest/internal/strategy"
	"devdigest/internal/writer"
)

// ContentExtractor fetches an article page and returns its readable
// body text.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Generator derives blog metadata for an article.
type Generator interface {
	Generate(ctx context.Context, a feed.Article, s strategy.Strategy) (*writer.Metadata, error)
}

// DocumentWriter persists one assembled document and returns its
// path.
type DocumentWriter interface {
	Save(slug, document string) (string, error)
}

// DocumentRenderer is the production rendering collaborator: scrape
// the full article body, generate the blog metadata, assemble the MDX
// document and write it out. A failed scrape falls back to the feed
// content; a failed generation fails the article.
type DocumentRenderer struct {
	extractor ContentExtractor
	generator Generator
	documents DocumentWriter
}

func NewDocumentRenderer(extractor ContentExtractor, generator Generator, documents DocumentWriter) *DocumentRenderer {
	return &DocumentRenderer{
		extractor: extractor,
		generator: generator,
		documents: documents,
	}
}

func (r *DocumentRenderer) Render(ctx context.Context, a feed.Article, s strategy.Strategy) error {
	if body, err := r.extractor.Extract(ctx, a.Link); err != nil {
		logger.Warn("Scrape failed, using feed content", "url", a.Link, "error", err)
	} else {
		a.Content = body
	}

	meta, err := r.generator.Generate(ctx, a, s)
	if err != nil {
		return fmt.Errorf("generate metadata: %w", err)
	}

	slug := mdx.Slugify(a.Title)
	document, err := mdx.Build(a, meta, slug, time.Now())
	if err != nil {
		return err
	}

	path, err := r.documents.Save(slug, document)
	if err != nil {
		return err
	}

	logger.Info("Saved digest", "path", path, "title", a.Title)
	return nil
}

// Package app holds the pipeline coordinator: one pass of fetch,
// dedupe, strategy selection, scoring, rendering and the final
// history commit.
package app

import (
	"context"
	"fmt"
	"time"

	"devdigest/internal/config"
	"devdigest/internal/feed"
	"devdigest/internal/logger"
	"devdigest/internal/metrics"
	"devdigest/internal/ratelimit"
	"devdigest/internal/strategy"
)

// Fetcher supplies the candidate article pool. Per-source failures
// are its own concern; Fetch returns whatever it could get.
type Fetcher interface {
	Fetch(ctx context.Context) []feed.Article
	SourceCount() int
}

// HistoryStore tracks which fingerprints earlier runs rendered.
type HistoryStore interface {
	Load()
	Seen(fingerprint string) bool
	Record(fingerprint, title, link, strategyUsed string)
	Save() error
	Len() int
}

// Renderer turns one selected article into a document on disk.
type Renderer interface {
	Render(ctx context.Context, a feed.Article, s strategy.Strategy) error
}

// Clock reports the current hour of day. Injected so strategy
// selection is testable without the system clock.
type Clock func() int

// Runner coordinates one pipeline pass. It owns the history store for
// the run's duration; nothing else touches it.
type Runner struct {
	cfg      *config.Config
	fetcher  Fetcher
	history  HistoryStore
	renderer Renderer
	clock    Clock
	pacer    *ratelimit.Pacer
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the wall-clock hour source.
func WithClock(c Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithPacer enables waiting between consecutive renders. Set when the
// renderer calls a generative backend; nil means no pacing.
func WithPacer(p *ratelimit.Pacer) Option {
	return func(r *Runner) {
		r.pacer = p
	}
}

func NewRunner(cfg *config.Config, fetcher Fetcher, history HistoryStore, renderer Renderer, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		fetcher:  fetcher,
		history:  history,
		renderer: renderer,
		clock:    func() int { return time.Now().Hour() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one pipeline pass. Per-article failures are logged and
// skipped; only a missing source list and a failed final history
// commit are fatal. Documents already written stay on disk either
// way.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	if r.fetcher.SourceCount() == 0 {
		return fmt.Errorf("no feed sources configured")
	}

	pool := r.fetcher.Fetch(ctx)

	r.history.Load()
	logger.Info("Loaded history", "records", r.history.Len())

	fresh := make([]feed.Article, 0, len(pool))
	for _, a := range pool {
		a.Fingerprint = feed.Fingerprint(a)
		if r.history.Seen(a.Fingerprint) {
			logger.Debug("Skipping already processed article", "title", a.Title)
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		fresh = append(fresh, a)
	}
	logger.Info("Deduplicated pool", "fetched", len(pool), "new", len(fresh))

	if len(fresh) == 0 {
		logger.Info("No new articles this run")
		return nil
	}

	strat := strategy.Select(r.clock())
	logger.Info("Selected strategy", "strategy", strat.Name, "style", strat.Style)

	ranked := strategy.ScoreAndFilter(fresh, strat)
	metrics.Global.AddArticlesScoredOut(len(fresh) - len(ranked))
	if len(ranked) == 0 {
		// Never end a run empty-handed just because nothing matched
		// the time slot; fall back to the unscored pool in fetch
		// order.
		logger.Info("No articles matched strategy focus, using unscored pool", "strategy", strat.Name)
		ranked = fresh
	}

	selected := ranked
	if len(selected) > r.cfg.MaxPerRun {
		selected = selected[:r.cfg.MaxPerRun]
	}
	logger.Info("Selected batch", "articles", len(selected), "candidates", len(ranked))

	for i, a := range selected {
		if i > 0 && r.pacer != nil {
			if err := r.pacer.Wait(ctx); err != nil {
				return err
			}
		}

		if err := r.renderer.Render(ctx, a, strat); err != nil {
			logger.Error("Rendering failed, skipping article", "title", a.Title, "error", err)
			metrics.Global.IncrementRenderFailures()
			continue
		}

		r.history.Record(a.Fingerprint, a.Title, a.Link, strat.Description)
		metrics.Global.IncrementArticlesRendered()
	}

	if err := r.history.Save(); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("commit history: %w", err)
	}

	metrics.Global.RecordRun(time.Since(start))
	logger.Info("Run complete", "stats", metrics.Global.GetStats())
	return nil
}

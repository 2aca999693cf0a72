package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"devdigest/internal/app"
	"devdigest/internal/config"
	"devdigest/internal/feed"
	"devdigest/internal/history"
	"devdigest/internal/logger"
	"devdigest/internal/mdx"
	"devdigest/internal/ratelimit"
	"devdigest/internal/retry"
	"devdigest/internal/scraper"
	"devdigest/internal/writer"
)

func main() {
	// .env is optional; deployments supply real env vars.
	_ = godotenv.Load()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	sources, err := feed.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		logger.Error("Cannot read feeds config", "path", cfg.FeedsConfigPath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var generator app.Generator
	var opts []app.Option
	if cfg.GeminiAPIKey != "" {
		gemini, err := writer.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		})
		if err != nil {
			logger.Error("Cannot create Gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()

		generator = gemini
		opts = append(opts, app.WithPacer(ratelimit.NewPacer(3*time.Second, 5*time.Second)))
	} else {
		logger.Warn("GEMINI_API_KEY not set, using heuristic metadata")
		generator = writer.NewHeuristic()
	}

	renderer := app.NewDocumentRenderer(
		scraper.NewScraper(cfg.RequestTimeout),
		generator,
		mdx.NewWriter(cfg.OutputDir),
	)

	runner := app.NewRunner(
		cfg,
		feed.NewFetcher(sources, cfg.MaxPerFeed, cfg.MaxTotal, cfg.RequestTimeout),
		history.NewStore(cfg.HistoryFilePath),
		renderer,
		opts...,
	)

	if err := runner.Run(ctx); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

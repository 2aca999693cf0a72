package retry

import (
	"context"
	"fmt"
	"time"
)

// Config controls how WithRetry spaces its attempts.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // scale the delay by the attempt number
}

// WithRetry runs fn until it succeeds, the attempts run out, or the
// context is cancelled.
func WithRetry(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == cfg.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", cfg.MaxAttempts, err)
			}

			delay := cfg.Delay
			if cfg.Backoff {
				delay = time.Duration(attempt) * cfg.Delay
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				continue
			}
		}
		return nil
	}

	return lastErr
}

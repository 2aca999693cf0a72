package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched     int64
	SourcesFailed      int64
	ArticlesFetched    int64
	DuplicatesFiltered int64
	ArticlesScoredOut  int64
	ArticlesRendered   int64
	RenderFailures     int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastError     string
	LastErrorTime time.Time
}

var Global = &Metrics{}

func (m *Metrics) IncrementSourcesFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFetched++
}

func (m *Metrics) IncrementSourcesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFailed++
}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) AddArticlesScoredOut(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesScoredOut += int64(n)
}

func (m *Metrics) IncrementArticlesRendered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesRendered++
}

func (m *Metrics) IncrementRenderFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RenderFailures++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
}

// GetStats returns a snapshot for the end-of-run summary line.
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":     m.SourcesFetched,
		"sources_failed":      m.SourcesFailed,
		"articles_fetched":    m.ArticlesFetched,
		"duplicates_filtered": m.DuplicatesFiltered,
		"articles_scored_out": m.ArticlesScoredOut,
		"articles_rendered":   m.ArticlesRendered,
		"render_failures":     m.RenderFailures,
		"last_run_ms":         m.LastRunDuration.Milliseconds(),
	}
}

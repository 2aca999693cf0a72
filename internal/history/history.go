// Package history persists which articles have already been processed
// so repeated runs never render the same article twice.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"devdigest/internal/logger"
)

// Record is one processed article as stored in the history file,
// keyed there by the article fingerprint.
type Record struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	ProcessedDate string `json:"processed_date"`
	StrategyUsed  string `json:"strategy_used"`
}

// Store manages processed-article records in a single JSON file. The
// file holds one object mapping fingerprint to record. One run loads
// it once, records in memory, and saves once at the end.
type Store struct {
	filePath string
	records  map[string]Record
	mu       sync.RWMutex
}

func NewStore(filePath string) *Store {
	return &Store{
		filePath: filePath,
		records:  make(map[string]Record),
	}
}

// Load reads the history file into memory. A missing, empty,
// unreadable or corrupt file is not an error: the store starts empty
// and the run may reprocess articles it has seen before. Records with
// an empty title or link are dropped here so malformed disk state
// never reaches rendering.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]Record)

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		logger.Warn("History file unreadable, starting empty", "path", s.filePath, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	var loaded map[string]Record
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("History file corrupt, starting empty", "path", s.filePath, "error", err)
		return
	}

	for fingerprint, rec := range loaded {
		if rec.Title == "" || rec.Link == "" {
			logger.Warn("Dropping malformed history record", "fingerprint", fingerprint)
			continue
		}
		s.records[fingerprint] = rec
	}
}

// Seen reports whether a fingerprint was processed by an earlier run
// (or already recorded in this one).
func (s *Store) Seen(fingerprint string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[fingerprint]
	return ok
}

// Record inserts or overwrites the entry for a fingerprint with the
// current timestamp. In-memory only until Save.
func (s *Store) Record(fingerprint, title, link, strategyUsed string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[fingerprint] = Record{
		Title:         title,
		Link:          link,
		ProcessedDate: time.Now().Format(time.RFC3339),
		StrategyUsed:  strategyUsed,
	}
}

// Save writes the full mapping over the history file. Map keys
// serialize sorted, so saving an unchanged store rewrites the file
// byte for byte. Not transactional: a crash mid-write may corrupt the
// file, which Load tolerates.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}

// Len reports how many records the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

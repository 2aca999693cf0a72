package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	s.Load()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for missing file", s.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Load()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt file", s.Len())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Load()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for empty file", s.Len())
	}
}

func TestLoadDropsMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	data := `{
  "aaa": {"title": "Valid", "link": "https://example.com/a", "processed_date": "2024-01-01T08:00:00Z", "strategy_used": "morning"},
  "bbb": {"title": "", "link": "https://example.com/b", "processed_date": "2024-01-01T08:00:00Z", "strategy_used": "morning"},
  "ccc": {"title": "No Link", "link": "", "processed_date": "2024-01-01T08:00:00Z", "strategy_used": "morning"}
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	s.Load()

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (malformed records dropped)", s.Len())
	}
	if !s.Seen("aaa") {
		t.Error("valid record should survive load")
	}
	if s.Seen("bbb") || s.Seen("ccc") {
		t.Error("malformed records should be dropped at the store boundary")
	}
}

func TestRecordAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := NewStore(path)
	s.Load()
	s.Record("fp1", "First Article", "https://example.com/1", "morning")

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var onDisk map[string]Record
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if len(onDisk) != 1 {
		t.Fatalf("saved %d records, want 1", len(onDisk))
	}

	rec, ok := onDisk["fp1"]
	if !ok {
		t.Fatal("fingerprint fp1 missing from saved file")
	}
	if rec.Title != "First Article" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Link != "https://example.com/1" {
		t.Errorf("Link = %q", rec.Link)
	}
	if rec.StrategyUsed != "morning" {
		t.Errorf("StrategyUsed = %q", rec.StrategyUsed)
	}
	if rec.ProcessedDate == "" {
		t.Error("ProcessedDate should be set")
	}
}

func TestSeenAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	first := NewStore(path)
	first.Load()
	first.Record("fp1", "Article", "https://example.com/1", "evening")
	if err := first.Save(); err != nil {
		t.Fatal(err)
	}

	second := NewStore(path)
	second.Load()

	if !second.Seen("fp1") {
		t.Error("fingerprint recorded by the first run should be seen by the second")
	}
	if second.Seen("fp2") {
		t.Error("unknown fingerprint should not be seen")
	}
}

func TestSaveRoundTripIsByteStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := NewStore(path)
	s.Load()
	s.Record("zzz", "Last", "https://example.com/z", "night")
	s.Record("aaa", "First", "https://example.com/a", "morning")
	s.Record("mmm", "Middle", "https://example.com/m", "afternoon")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	firstBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	reloaded := NewStore(path)
	reloaded.Load()
	if err := reloaded.Save(); err != nil {
		t.Fatal(err)
	}

	secondBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(firstBytes, secondBytes) {
		t.Error("save(load()) with no new records should rewrite the file byte for byte")
	}
}

func TestSaveToUnwritablePathFails(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "no", "such", "dir", "history.json"))
	s.Record("fp", "Title", "https://example.com", "morning")

	if err := s.Save(); err == nil {
		t.Error("expected error saving to a missing directory")
	}
}

func TestRecordOverwrites(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.json"))
	s.Record("fp", "Old Title", "https://example.com/old", "morning")
	s.Record("fp", "New Title", "https://example.com/new", "evening")

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after overwrite", s.Len())
	}
}

// Package feed fetches articles from the configured RSS/Atom sources
// and gives each a stable fingerprint for deduplication.
package feed

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintContentLen is how many leading characters of content
// participate in the fingerprint.
const fingerprintContentLen = 200

// Article is one feed entry. Published keeps the raw text the feed
// supplied; nothing downstream parses it. Fingerprint and Score are
// derived later, by dedupe and scoring.
type Article struct {
	Title       string
	Link        string
	Published   string
	Content     string
	Fingerprint string
	Score       int
}

// Fingerprint returns the dedupe identity of an article: sha256 over
// title + link + the first 200 characters of content, as full
// lowercase hex. Published does not participate, so content
// republished under a new timestamp keeps its fingerprint and stays a
// duplicate. The algorithm and digest width must stay fixed across
// versions since the hex string is the key persisted in the history
// file.
func Fingerprint(a Article) string {
	content := a.Content
	if runes := []rune(content); len(runes) > fingerprintContentLen {
		content = string(runes[:fingerprintContentLen])
	}

	h := sha256.New()
	h.Write([]byte(a.Title + a.Link + content))
	return hex.EncodeToString(h.Sum(nil))
}

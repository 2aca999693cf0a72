package writer

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"devdigest/internal/feed"
	"devdigest/internal/strategy"
)

const (
	defaultTag         = "programming"
	maxTags            = 5
	summaryMinSentence = 25
	summaryMaxLen      = 160
	takeawayCount      = 3
	takeawayMinLen     = 40
	takeawayMaxLen     = 250
)

// tagTriggers maps each canonical tag to the substrings that imply
// it. Ordered so classification output is deterministic.
var tagTriggers = []struct {
	tag      string
	triggers []string
}{
	{"golang", []string{"golang", "goroutine"}},
	{"javascript", []string{"javascript", "typescript", "node.js"}},
	{"webdev", []string{"css", "html", "frontend", "react", "browser"}},
	{"ai", []string{"machine learning", "artificial intelligence", "neural", "llm"}},
	{"devops", []string{"kubernetes", "docker", "devops", "deployment"}},
	{"database", []string{"database", "postgres", "sql"}},
	{"design", []string{"design", "user experience", "typography"}},
	{"career", []string{"career", "interview", "leadership", "mentoring"}},
	{"productivity", []string{"productivity", "workflow", "remote work"}},
	{"security", []string{"security", "vulnerability", "encryption"}},
}

// Heuristic derives blog metadata from the article text alone, with
// no external calls. It is the configured generator when no Gemini
// API key is present, not a fallback for failed generations.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Generate(_ context.Context, a feed.Article, s strategy.Strategy) (*Metadata, error) {
	text := strings.TrimSpace(a.Content)
	if text == "" {
		text = a.Title
	}

	tags := classifyTags(a.Title + " " + a.Content)

	return &Metadata{
		Subtitle:        s.Description,
		Summary:         summarize(text),
		Tags:            tags,
		ImageSuggestion: fmt.Sprintf("An illustration related to %s", tags[0]),
		Content:         text,
		KeyTakeaways:    takeaways(text),
	}, nil
}

var sentenceEndRe = regexp.MustCompile(`[.!?]+(\s+|$)`)

func splitSentences(text string) []string {
	parts := sentenceEndRe.Split(text, -1)

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// summarize picks the first two substantial sentences, or truncates
// the text when it has none.
func summarize(text string) string {
	var picked []string
	for _, s := range splitSentences(text) {
		if len(s) < summaryMinSentence {
			continue
		}
		picked = append(picked, s)
		if len(picked) == 2 {
			break
		}
	}
	if len(picked) > 0 {
		return strings.Join(picked, ". ") + "."
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) > summaryMaxLen {
		return string(runes[:summaryMaxLen]) + "..."
	}
	return string(runes)
}

// classifyTags walks the trigger table once and collects every tag
// whose triggers occur in the text, capped at maxTags.
func classifyTags(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	for _, entry := range tagTriggers {
		if len(tags) >= maxTags {
			break
		}
		for _, trigger := range entry.triggers {
			if strings.Contains(lower, trigger) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}

	if len(tags) == 0 {
		tags = []string{defaultTag}
	}
	return tags
}

// takeaways keeps the longest sentences of useful length as the key
// takeaways list.
func takeaways(text string) []string {
	var informative []string
	for _, s := range splitSentences(text) {
		if len(s) >= takeawayMinLen && len(s) <= takeawayMaxLen {
			informative = append(informative, s)
		}
	}

	sort.SliceStable(informative, func(i, j int) bool {
		return len(informative[i]) > len(informative[j])
	})

	if len(informative) > takeawayCount {
		informative = informative[:takeawayCount]
	}
	if len(informative) == 0 {
		return []string{"See the original article for the full story."}
	}
	return informative
}

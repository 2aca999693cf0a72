package writer

import (
	"context"
	"strings"
	"testing"

	"devdigest/internal/feed"
	"devdigest/internal/strategy"
)

func testStrategy() strategy.Strategy {
	return strategy.Strategy{
		Name:        "afternoon",
		Style:       "technical and production-minded",
		Description: "Afternoon deep dives into backend and infrastructure",
	}
}

func articleWithContent(content string) feed.Article {
	return feed.Article{
		Title:   "Scaling Postgres in Production",
		Link:    "https://example.com/scaling-postgres",
		Content: content,
	}
}

func TestHeuristicGenerate(t *testing.T) {
	content := "Postgres handles most workloads without tuning, and that is exactly why teams delay learning it. " +
		"Connection pooling becomes the first real bottleneck once traffic grows beyond a single app server. " +
		"Partitioning large tables keeps vacuum times predictable and queries fast."

	m, err := NewHeuristic().Generate(context.Background(), articleWithContent(content), testStrategy())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if m.Subtitle != testStrategy().Description {
		t.Errorf("Subtitle = %q, want strategy description", m.Subtitle)
	}
	if m.Content != content {
		t.Error("Content should pass through unchanged")
	}
	if m.Summary == "" {
		t.Error("Summary is empty")
	}
	if len(m.Tags) == 0 {
		t.Error("Tags is empty")
	}
	if len(m.KeyTakeaways) == 0 || len(m.KeyTakeaways) > 3 {
		t.Errorf("KeyTakeaways count = %d, want 1..3", len(m.KeyTakeaways))
	}
}

func TestHeuristicEmptyContentUsesTitle(t *testing.T) {
	m, err := NewHeuristic().Generate(context.Background(), articleWithContent(""), testStrategy())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if m.Content != "Scaling Postgres in Production" {
		t.Errorf("Content = %q, want the title", m.Content)
	}
}

func TestSummarizeFirstTwoSentences(t *testing.T) {
	text := "Short. This first real sentence carries enough detail to count. " +
		"The second sentence also has sufficient length for the summary. " +
		"A third sentence must not appear."

	got := summarize(text)
	if strings.Contains(got, "third sentence") {
		t.Errorf("summary includes more than two sentences: %q", got)
	}
	if !strings.Contains(got, "first real sentence") || !strings.Contains(got, "second sentence") {
		t.Errorf("summary missing expected sentences: %q", got)
	}
	if strings.Contains(got, "Short.") {
		t.Errorf("summary kept a too-short sentence: %q", got)
	}
}

func TestSummarizeTruncatesWhenNoSentences(t *testing.T) {
	text := strings.Repeat("word ", 100) // no sentence punctuation
	got := summarize(text)
	if len(got) > summaryMaxLen+3 {
		t.Errorf("summary length = %d, want <= %d plus ellipsis", len(got), summaryMaxLen+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated summary should end with ellipsis: %q", got)
	}
}

func TestClassifyTags(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"goroutine scheduling in golang runtimes", []string{"golang"}},
		{"react and css tips for typescript apps", []string{"javascript", "webdev"}},
		{"deploying postgres on kubernetes with docker", []string{"devops", "database"}},
		{"knitting patterns for beginners", []string{"programming"}},
	}

	for _, tt := range tests {
		got := classifyTags(tt.text)
		if len(got) != len(tt.want) {
			t.Errorf("classifyTags(%q) = %v, want %v", tt.text, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("classifyTags(%q) = %v, want %v", tt.text, got, tt.want)
				break
			}
		}
	}
}

func TestClassifyTagsCapped(t *testing.T) {
	text := "golang typescript css machine learning kubernetes postgres design career productivity security"
	if got := classifyTags(text); len(got) > maxTags {
		t.Errorf("classifyTags returned %d tags, cap is %d", len(got), maxTags)
	}
}

func TestTakeawaysPrefersLongestSentences(t *testing.T) {
	text := "Tiny. " +
		"This sentence is comfortably long enough to qualify as informative. " +
		"This one is also long enough to qualify and adds a bit more length to it. " +
		"Another qualifying sentence that is the longest of the whole group by a margin. " +
		"Yet another candidate sentence that should be squeezed out of the top three maybe."

	got := takeaways(text)
	if len(got) != takeawayCount {
		t.Fatalf("takeaways count = %d, want %d", len(got), takeawayCount)
	}
	for _, s := range got {
		if s == "Tiny" {
			t.Error("takeaways kept a too-short sentence")
		}
	}
	for i := 1; i < len(got); i++ {
		if len(got[i]) > len(got[i-1]) {
			t.Errorf("takeaways not ordered longest first: %v", got)
		}
	}
}

func TestTakeawaysFallback(t *testing.T) {
	got := takeaways("Nope.")
	if len(got) != 1 {
		t.Fatalf("takeaways count = %d, want 1 fallback entry", len(got))
	}
}

// Package strategy decides what kind of content a run should favor
// based on the time of day, and ranks fetched articles against that
// choice.
package strategy

import (
	"sort"
	"strings"

	"devdigest/internal/feed"
)

// Strategy is one of the four fixed editorial slots. Focus keywords
// are lowercase; scoring matches them as substrings of the lowercased
// article text.
type Strategy struct {
	Name        string
	StartHour   int
	EndHour     int
	Focus       []string
	Style       string
	Description string
}

var Morning = Strategy{
	Name:      "morning",
	StartHour: 6,
	EndHour:   11,
	Focus: []string{
		"javascript", "typescript", "react", "css", "frontend",
		"browser", "webpack", "node.js", "accessibility", "web development",
	},
	Style:       "practical and hands-on",
	Description: "Morning reads on frontend and JavaScript",
}

var Afternoon = Strategy{
	Name:      "afternoon",
	StartHour: 12,
	EndHour:   17,
	Focus: []string{
		"backend", "database", "kubernetes", "docker", "golang",
		"rust", "microservices", "postgres", "devops", "cloud", "scaling",
	},
	Style:       "technical and production-minded",
	Description: "Afternoon deep dives into backend and infrastructure",
}

var Evening = Strategy{
	Name:      "evening",
	StartHour: 18,
	EndHour:   23,
	Focus: []string{
		"design", "user experience", "typography", "career", "leadership",
		"interview", "productivity", "management", "remote work", "mentoring",
	},
	Style:       "reflective and conversational",
	Description: "Evening perspectives on design and career growth",
}

var Night = Strategy{
	Name:      "night",
	StartHour: 0,
	EndHour:   5,
	Focus: []string{
		"algorithm", "data structure", "computer science", "fundamentals",
		"tutorial", "learning", "compiler", "operating system", "mathematics", "theory",
	},
	Style:       "calm and foundational",
	Description: "Late-night fundamentals and learning material",
}

// Select maps an hour of day to its strategy. The four ranges cover
// 0..23 with no gap or overlap. Pure function; callers pass
// time.Now().Hour() or an injected test value. Out-of-range hours are
// folded back into 0..23 instead of panicking.
func Select(hour int) Strategy {
	hour = ((hour % 24) + 24) % 24

	switch {
	case hour >= Morning.StartHour && hour <= Morning.EndHour:
		return Morning
	case hour >= Afternoon.StartHour && hour <= Afternoon.EndHour:
		return Afternoon
	case hour >= Evening.StartHour && hour <= Evening.EndHour:
		return Evening
	default:
		return Night
	}
}

// Score counts how many of the strategy's focus keywords occur in the
// article's title and content, case-insensitively.
func Score(a feed.Article, s Strategy) int {
	text := strings.ToLower(a.Title + " " + a.Content)

	score := 0
	for _, keyword := range s.Focus {
		if strings.Contains(text, keyword) {
			score++
		}
	}
	return score
}

// ScoreAndFilter ranks articles against the strategy. Articles
// matching no focus keyword are dropped; the rest sort by score
// descending. The sort is stable: equal scores keep their fetch
// order, so a fixed input always produces the same output. An empty
// result is the caller's cue to fall back to the unscored pool.
func ScoreAndFilter(articles []feed.Article, s Strategy) []feed.Article {
	scored := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		a.Score = Score(a, s)
		if a.Score == 0 {
			continue
		}
		scored = append(scored, a)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

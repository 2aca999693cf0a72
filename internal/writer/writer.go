// Package writer derives blog metadata for an article: subtitle,
// summary, tags, key takeaways and the post body. The Gemini-backed
// generator is used when an API key is configured; otherwise the
// local heuristic generator produces the same shape from the article
// text alone.
package writer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Metadata is the structured blog data generated for one article. The
// JSON tags match the format the generative backend is asked to
// produce.
type Metadata struct {
	Subtitle        string   `json:"subtitle"`
	Summary         string   `json:"summary"`
	Tags            []string `json:"tags"`
	ImageSuggestion string   `json:"image_suggestion"`
	Content         string   `json:"content"`
	KeyTakeaways    []string `json:"key_takeaways"`
}

var codeFenceRe = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.+?)\\s*```\\s*$")

// stripCodeFence removes a Markdown code fence wrapped around model
// output. Gemini regularly fences its JSON even when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if matches := codeFenceRe.FindStringSubmatch(s); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return s
}

// parseMetadata turns raw model output into validated Metadata.
// Missing required fields are an error; an empty tag list gets the
// default tag so downstream never renders an empty tags line.
func parseMetadata(raw string) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &m); err != nil {
		return nil, fmt.Errorf("parse metadata JSON: %w", err)
	}

	if m.Subtitle == "" || m.Summary == "" || m.Content == "" {
		return nil, fmt.Errorf("metadata missing required fields (subtitle=%t summary=%t content=%t)",
			m.Subtitle != "", m.Summary != "", m.Content != "")
	}

	if len(m.Tags) == 0 {
		m.Tags = []string{defaultTag}
	}
	return &m, nil
}

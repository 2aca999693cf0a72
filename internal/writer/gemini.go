package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"devdigest/internal/feed"
	"devdigest/internal/retry"
	"devdigest/internal/strategy"
)

// promptContentLen bounds how much article text goes into the prompt.
const promptContentLen = 2000

// Gemini generates blog metadata through the Gemini API. Each call is
// retried per the configured policy; a failure after all attempts is
// a rendering error for that article.
type Gemini struct {
	client *genai.Client
	model  string
	retry  retry.Config
}

func NewGemini(ctx context.Context, apiKey, model string, retryCfg retry.Config) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model, retry: retryCfg}, nil
}

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Generate(ctx context.Context, a feed.Article, s strategy.Strategy) (*Metadata, error) {
	prompt := buildPrompt(a, s)

	var meta *Metadata
	err := retry.WithRetry(ctx, g.retry, func() error {
		m, err := g.generateOnce(ctx, prompt)
		if err != nil {
			return err
		}
		meta = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func (g *Gemini) generateOnce(ctx context.Context, prompt string) (*Metadata, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	response := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseMetadata(response)
}

func buildPrompt(a feed.Article, s strategy.Strategy) string {
	content := strings.Join(strings.Fields(a.Content), " ")
	if runes := []rune(content); len(runes) > promptContentLen {
		content = string(runes[:promptContentLen])
	}

	return fmt.Sprintf(`You are a professional tech blogger. Based on the following article, provide a structured response in JSON format with these exact keys:

- "subtitle": A compelling subtitle for the article
- "summary": A 2-3 sentence summary of the article
- "tags": An array of 3-5 relevant tags (e.g., ["javascript", "web-development", "react"])
- "image_suggestion": A description of a relevant image for the article
- "content": The main blog post content in markdown format (400-600 words, educational and engaging)
- "key_takeaways": An array of 3-5 key takeaways from the article

Write in a %s tone.

Original Article:
Title: %s
URL: %s
Content: %s

Respond only with valid JSON.`, s.Style, a.Title, a.Link, content)
}

// Package mdx assembles the final digest documents: slug derivation,
// YAML frontmatter and the Markdown body layout, plus writing the
// result to the output directory.
package mdx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"devdigest/internal/feed"
	"devdigest/internal/writer"
)

const maxSlugLen = 40

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the output filename stem from a title: diacritics
// folded to ASCII, lowercased, runs of anything non-alphanumeric
// collapsed to single hyphens, capped at 40 characters.
func Slugify(title string) string {
	folded, _, err := transform.String(foldDiacritics, title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var slug strings.Builder
	lastHyphen := false
	for _, r := range folded {
		if slug.Len() >= maxSlugLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			slug.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && slug.Len() > 0 {
				slug.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	out := strings.Trim(slug.String(), "-")
	if out == "" {
		return "untitled"
	}
	return out
}

type frontmatter struct {
	Title           string   `yaml:"title"`
	Subtitle        string   `yaml:"subtitle"`
	Summary         string   `yaml:"summary"`
	Slug            string   `yaml:"slug"`
	Date            string   `yaml:"date"`
	Tags            []string `yaml:"tags,flow"`
	ImageSuggestion string   `yaml:"image_suggestion"`
	SourceURL       string   `yaml:"source_url"`
}

// Build assembles the full MDX document for one article: YAML
// frontmatter between --- markers, then title, subtitle, summary,
// body, numbered takeaways and a source footer.
func Build(a feed.Article, meta *writer.Metadata, slug string, now time.Time) (string, error) {
	head, err := yaml.Marshal(frontmatter{
		Title:           a.Title,
		Subtitle:        meta.Subtitle,
		Summary:         meta.Summary,
		Slug:            slug,
		Date:            now.Format("2006-01-02"),
		Tags:            meta.Tags,
		ImageSuggestion: meta.ImageSuggestion,
		SourceURL:       a.Link,
	})
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	fmt.Fprintf(&b, "## %s\n\n", meta.Subtitle)
	fmt.Fprintf(&b, "### Summary\n%s\n\n", meta.Summary)
	b.WriteString("---\n\n")
	b.WriteString(meta.Content)
	b.WriteString("\n\n## Key Takeaways\n\n")
	for i, takeaway := range meta.KeyTakeaways {
		fmt.Fprintf(&b, "%d. %s\n", i+1, takeaway)
	}
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "*This post was generated from the original article: [%s](%s)*\n\n", a.Title, a.Link)
	fmt.Fprintf(&b, "*Tags: %s*\n", strings.Join(meta.Tags, ", "))

	return b.String(), nil
}

// Writer persists assembled documents under the output directory,
// creating it on first use.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Save writes one document as <slug>.mdx and returns its path.
func (w *Writer) Save(slug, document string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, slug+".mdx")
	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}

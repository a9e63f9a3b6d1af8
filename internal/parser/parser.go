// Package parser extracts searchable text, titles and excerpts from article content.
package parser

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/starford/techhub/internal/models"
)

const excerptRunes = 200

var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	markupRe    = regexp.MustCompile(`[#*]`)
	blankRunsRe = regexp.MustCompile(`\n{3,}`)
)

// Result holds the output of parsing article content.
type Result struct {
	Title   string
	Text    string
	Excerpt string
}

// Parse extracts a title, plain text and excerpt from raw Markdown or an editor document.
func Parse(c models.Content) Result {
	var title, text string
	if c.Doc != nil {
		title, text = parseDoc(c.Doc)
	} else {
		title = deriveTitle(c.Raw)
		text = markupRe.ReplaceAllString(c.Raw, "")
	}
	text = strings.TrimSpace(blankRunsRe.ReplaceAllString(text, "\n\n"))
	return Result{
		Title:   title,
		Text:    text,
		Excerpt: excerpt(text),
	}
}

// Text is shorthand for Parse(c).Text.
func Text(c models.Content) string {
	return Parse(c).Text
}

// SearchText returns the text that queries are matched against. Raw content
// is returned as written, markup included; editor documents are flattened.
func SearchText(c models.Content) string {
	if c.Doc == nil {
		return c.Raw
	}
	_, text := parseDoc(c.Doc)
	return text
}

// deriveTitle returns the first H1 heading, otherwise empty string.
func deriveTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

func parseDoc(d *models.EditorData) (string, string) {
	var title string
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		s := strings.TrimSpace(blockText(b))
		if s == "" {
			continue
		}
		if title == "" && b.Type == "header" {
			title = s
		}
		parts = append(parts, s)
	}
	return title, strings.Join(parts, "\n")
}

// blockText flattens the text-bearing fields of one editor block.
func blockText(b models.Block) string {
	var parts []string
	for _, key := range []string{"text", "caption", "code"} {
		if s, ok := b.Data[key].(string); ok {
			parts = append(parts, stripHTML(s))
		}
	}
	if items, ok := b.Data["items"].([]any); ok {
		for _, it := range items {
			parts = append(parts, listItemText(it)...)
		}
	}
	if rows, ok := b.Data["content"].([]any); ok {
		for _, row := range rows {
			cells, ok := row.([]any)
			if !ok {
				continue
			}
			for _, cell := range cells {
				parts = append(parts, stripHTML(fmt.Sprint(cell)))
			}
		}
	}
	return strings.Join(parts, "\n")
}

// listItemText handles both flat string items and nested {content, items}
// objects produced by newer list tools.
func listItemText(it any) []string {
	switch v := it.(type) {
	case string:
		return []string{stripHTML(v)}
	case map[string]any:
		var out []string
		if s, ok := v["content"].(string); ok {
			out = append(out, stripHTML(s))
		}
		if nested, ok := v["items"].([]any); ok {
			for _, n := range nested {
				out = append(out, listItemText(n)...)
			}
		}
		return out
	}
	return nil
}

func stripHTML(s string) string {
	return html.UnescapeString(htmlTagRe.ReplaceAllString(s, ""))
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptRunes {
		return text
	}
	return string(r[:excerptRunes]) + "…"
}

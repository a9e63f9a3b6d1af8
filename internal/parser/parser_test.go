package parser

import (
	"strings"
	"testing"

	"github.com/starford/techhub/internal/models"
)

func TestParse_RawMarkdown(t *testing.T) {
	r := Parse(models.RawContent("# React 18 新特性\n\nReact 18 带来了**许多**新特性..."))
	if r.Title != "React 18 新特性" {
		t.Errorf("title = %q", r.Title)
	}
	if strings.ContainsAny(r.Text, "#*") {
		t.Errorf("text still has markup: %q", r.Text)
	}
	if !strings.Contains(r.Text, "许多") {
		t.Errorf("text = %q", r.Text)
	}
}

func TestParse_NoHeading(t *testing.T) {
	r := Parse(models.RawContent("just text"))
	if r.Title != "" {
		t.Errorf("title = %q, want empty", r.Title)
	}
	if r.Text != "just text" {
		t.Errorf("text = %q", r.Text)
	}
}

func TestParse_EditorDocument(t *testing.T) {
	doc := models.EditorData{Blocks: []models.Block{
		{Type: "header", Data: map[string]any{"text": "Hooks <b>guide</b>", "level": 2}},
		{Type: "paragraph", Data: map[string]any{"text": "use&nbsp;memo &amp; callback"}},
		{Type: "list", Data: map[string]any{"items": []any{"one", map[string]any{"content": "two", "items": []any{"three"}}}}},
		{Type: "code", Data: map[string]any{"code": "const x = 1"}},
		{Type: "table", Data: map[string]any{"content": []any{[]any{"a", "b"}}}},
		{Type: "delimiter", Data: map[string]any{}},
	}}
	r := Parse(models.DocContent(doc))
	if r.Title != "Hooks guide" {
		t.Errorf("title = %q", r.Title)
	}
	for _, want := range []string{"memo & callback", "one", "two", "three", "const x = 1", "a", "b"} {
		if !strings.Contains(r.Text, want) {
			t.Errorf("text %q missing %q", r.Text, want)
		}
	}
	if strings.Contains(r.Text, "<b>") {
		t.Errorf("html not stripped: %q", r.Text)
	}
}

func TestParse_ExcerptTruncatesRunes(t *testing.T) {
	long := strings.Repeat("文", 300)
	r := Parse(models.RawContent(long))
	if got := len([]rune(r.Excerpt)); got != excerptRunes+1 {
		t.Errorf("excerpt runes = %d, want %d", got, excerptRunes+1)
	}
}

func TestSearchText_KeepsRawMarkup(t *testing.T) {
	raw := "# Tips\n\nNotes for C# developers: use *ptr to dereference."
	if got := SearchText(models.RawContent(raw)); got != raw {
		t.Errorf("SearchText = %q, want raw content", got)
	}

	doc := models.DocContent(models.EditorData{Blocks: []models.Block{
		{Type: "paragraph", Data: map[string]any{"text": "F# <i>pipes</i>"}},
	}})
	if got := SearchText(doc); got != "F# pipes" {
		t.Errorf("SearchText(doc) = %q", got)
	}
}

package api

import (
	"github.com/dustin/go-humanize"

	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/parser"
	"github.com/starford/techhub/internal/style"
)

// ListResponse is the body of every list view.
type ListResponse[T any] struct {
	Items    []T                 `json:"items"`
	Total    int                 `json:"total"`
	Query    string              `json:"query"`
	Selected map[string][]string `json:"selected"`
	Facets   []catalog.FacetInfo `json:"facets"`
}

// Display maps a facet name to the style of the record's value.
type Display map[string]style.Style

func display(pairs ...string) Display {
	d := make(Display, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if r := style.ForFacet(pairs[i]); r != nil {
			d[pairs[i]] = r.Resolve(pairs[i+1])
		}
	}
	return d
}

// ArticleItem is an article in a list.
type ArticleItem struct {
	models.Article
	Excerpt string `json:"excerpt"`
}

// ArticleDetail is a single article with its extracted text.
type ArticleDetail struct {
	ArticleItem
	Text string `json:"text"`
}

func articleItem(a models.Article) ArticleItem {
	return ArticleItem{Article: a, Excerpt: parser.Parse(a.Content).Excerpt}
}

func articleDetail(a models.Article) ArticleDetail {
	res := parser.Parse(a.Content)
	return ArticleDetail{
		ArticleItem: ArticleItem{Article: a, Excerpt: res.Excerpt},
		Text:        res.Text,
	}
}

// IssueItem is an issue with its status and priority styles.
type IssueItem struct {
	models.Issue
	Display Display `json:"display"`
}

func issueItem(i models.Issue) IssueItem {
	return IssueItem{
		Issue: i,
		Display: display(
			catalog.FacetStatus, string(i.Status),
			catalog.FacetPriority, string(i.Priority),
		),
	}
}

// DocumentItem is a document with a human-readable size.
type DocumentItem struct {
	models.Document
	SizeLabel string  `json:"size_label"`
	Display   Display `json:"display"`
}

func documentItem(d models.Document) DocumentItem {
	var size uint64
	if d.Size > 0 {
		size = uint64(d.Size)
	}
	return DocumentItem{
		Document:  d,
		SizeLabel: humanize.IBytes(size),
		Display:   display(catalog.FacetFileType, string(d.FileType)),
	}
}

// EventItem is a timeline entry with its type and importance styles.
type EventItem struct {
	models.Event
	Display Display `json:"display"`
}

func eventItem(e models.Event) EventItem {
	return EventItem{
		Event: e,
		Display: display(
			catalog.FacetType, string(e.Type),
			catalog.FacetImportance, string(e.Importance),
		),
	}
}

// OverviewResponse is the landing page summary.
type OverviewResponse struct {
	Revision     int64                `json:"revision"`
	Counts       map[catalog.View]int `json:"counts"`
	RecentEvents []EventItem          `json:"recent_events"`
}

// UploadResponse describes a simulated upload.
type UploadResponse struct {
	URL       string `json:"url"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	SizeLabel string `json:"size_label"`
}

package catalog

import (
	"fmt"
	"strings"

	"github.com/starford/techhub/internal/apperr"
	"github.com/starford/techhub/internal/filter"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/parser"
)

// Facet names accepted by the views.
const (
	FacetTag        = "tag"
	FacetStatus     = "status"
	FacetPriority   = "priority"
	FacetCategory   = "category"
	FacetFileType   = "file_type"
	FacetType       = "type"
	FacetImportance = "importance"
)

// View names one list page.
type View string

const (
	ViewArticles  View = "articles"
	ViewIssues    View = "issues"
	ViewDocuments View = "documents"
	ViewEvents    View = "events"
)

// Views lists every view in display order.
var Views = []View{ViewArticles, ViewIssues, ViewDocuments, ViewEvents}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", apperr.ErrInvalid, s)
}

var (
	articleFilter = filter.New(
		filter.WithFacets(
			filter.Many(FacetTag, func(a models.Article) []string { return a.Tags }),
		),
		filter.WithSearch(func(a models.Article) []string {
			return []string{a.Title, parser.SearchText(a.Content)}
		}),
	)

	issueFilter = filter.New(
		filter.WithFacets(
			filter.One(FacetStatus, func(i models.Issue) string { return string(i.Status) }),
			filter.One(FacetPriority, func(i models.Issue) string { return string(i.Priority) }),
			filter.Many(FacetTag, func(i models.Issue) []string { return i.Tags }),
		),
		filter.WithSearch(func(i models.Issue) []string {
			return []string{i.Title, i.Description}
		}),
	)

	documentFilter = filter.New(
		filter.WithFacets(
			filter.One(FacetCategory, func(d models.Document) string { return d.Category }),
			filter.One(FacetFileType, func(d models.Document) string { return string(d.FileType) }),
		),
		filter.WithSearch(func(d models.Document) []string {
			return []string{d.Title, d.Description}
		}),
	)

	// Events are shown most recent first.
	eventFilter = filter.New(
		filter.WithFacets(
			filter.One(FacetType, func(e models.Event) string { return string(e.Type) }),
			filter.One(FacetImportance, func(e models.Event) string { return string(e.Importance) }),
		),
		filter.WithSearch(func(e models.Event) []string {
			return []string{e.Title, e.Description}
		}),
		filter.WithOrder(func(a, b models.Event) int { return b.Date.Compare(a.Date) }),
	)
)

// FacetNames returns the facets v filters on, in display order.
func (v View) FacetNames() []string {
	switch v {
	case ViewArticles:
		return articleFilter.FacetNames()
	case ViewIssues:
		return issueFilter.FacetNames()
	case ViewDocuments:
		return documentFilter.FacetNames()
	case ViewEvents:
		return eventFilter.FacetNames()
	}
	return nil
}

// Criteria builds filter criteria for v from a query string and raw facet
// parameters. Each raw value may carry several comma-separated selections.
// Parameters that are not facets of v are dropped.
func (v View) Criteria(query string, raw map[string][]string) filter.Criteria {
	c := filter.Criteria{Query: query, Selections: map[string][]string{}}
	for _, name := range v.FacetNames() {
		var sel []string
		for _, r := range raw[name] {
			for _, part := range strings.Split(r, ",") {
				if part = strings.TrimSpace(part); part != "" {
					sel = append(sel, part)
				}
			}
		}
		if len(sel) > 0 {
			c.Selections[name] = sel
		}
	}
	return c
}

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/editor"
	"github.com/starford/techhub/internal/filter"
	"github.com/starford/techhub/internal/index"
	"github.com/starford/techhub/internal/models"
)

// Editor performs the simulated saves.
type Editor interface {
	PublishArticle(ctx context.Context, d editor.ArticleDraft) (models.Article, error)
	AutoSave(d editor.ArticleDraft)
	UploadImage(ctx context.Context, name string, size int64) (string, error)
	CreateIssue(ctx context.Context, d editor.IssueDraft) (models.Issue, error)
}

// Searcher answers cross-collection queries.
type Searcher interface {
	Search(query string, limit int) ([]index.Hit, error)
}

// ViewObserver records list view results.
type ViewObserver interface {
	ObserveView(view string, n int)
}

// Handler holds API route handlers.
type Handler struct {
	store    *catalog.Store
	editor   Editor
	search   Searcher
	observer ViewObserver
}

// NewHandler creates a Handler. observer may be nil.
func NewHandler(store *catalog.Store, ed Editor, search Searcher, observer ViewObserver) *Handler {
	return &Handler{store: store, editor: ed, search: search, observer: observer}
}

// listView filters one collection with the request's query parameters and
// writes the items together with the view's facet vocabularies.
func listView[T, I any](h *Handler, w http.ResponseWriter, r *http.Request, v catalog.View, run func(*catalog.Snapshot, filter.Criteria) []T, present func(T) I) {
	q := r.URL.Query()
	c := v.Criteria(q.Get("q"), q)

	snap := h.snapshot(w)
	records := run(snap, c)
	items := make([]I, len(records))
	for i, rec := range records {
		items[i] = present(rec)
	}

	facets, err := snap.Facets(v)
	if err != nil {
		writeError(w, r, "facets", err)
		return
	}
	if h.observer != nil {
		h.observer.ObserveView(string(v), len(items))
	}
	writeJSON(w, http.StatusOK, ListResponse[I]{
		Items:    items,
		Total:    len(items),
		Query:    c.Query,
		Selected: c.Selections,
		Facets:   facets,
	})
}

func detail[T, I any](h *Handler, w http.ResponseWriter, r *http.Request, lookup func(*catalog.Snapshot, string) (T, error), present func(T) I) {
	rec, err := lookup(h.snapshot(w), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "lookup", err)
		return
	}
	writeJSON(w, http.StatusOK, present(rec))
}

// ListArticles handles GET /articles.
//
//	@Summary	List articles filtered by query and tags
//	@Param		q	query	string	false	"Case-insensitive text in title or content"
//	@Param		tag	query	string	false	"Tag, repeatable or comma-separated"
//	@Success	200	{object}	ListResponse[ArticleItem]
//	@Router		/articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	listView(h, w, r, catalog.ViewArticles, (*catalog.Snapshot).FilterArticles, articleItem)
}

// GetArticle handles GET /articles/{id}.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	detail(h, w, r, (*catalog.Snapshot).Article, articleDetail)
}

// PublishArticle handles POST /articles.
//
//	@Summary	Publish a new article (not persisted)
//	@Accept		json
//	@Success	201	{object}	ArticleDetail
//	@Failure	400	{object}	errResponse
//	@Router		/articles [post]
func (h *Handler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	var d editor.ArticleDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = ""
	a, err := h.editor.PublishArticle(r.Context(), d)
	if err != nil {
		writeError(w, r, "publish article", err)
		return
	}
	writeJSON(w, http.StatusCreated, articleDetail(a))
}

// UpdateArticle handles PUT /articles/{id}.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var d editor.ArticleDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = chi.URLParam(r, "id")
	a, err := h.editor.PublishArticle(r.Context(), d)
	if err != nil {
		writeError(w, r, "update article", err)
		return
	}
	writeJSON(w, http.StatusOK, articleDetail(a))
}

// AutoSave handles POST /articles/autosave. The save happens later.
func (h *Handler) AutoSave(w http.ResponseWriter, r *http.Request) {
	var d editor.ArticleDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	h.editor.AutoSave(d)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// ListIssues handles GET /issues.
//
//	@Summary	List technical issues
//	@Param		q			query	string	false	"Text in title or description"
//	@Param		status		query	string	false	"open, in-progress, resolved"
//	@Param		priority	query	string	false	"low, medium, high"
//	@Param		tag			query	string	false	"Tag, repeatable or comma-separated"
//	@Success	200	{object}	ListResponse[IssueItem]
//	@Router		/issues [get]
func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	listView(h, w, r, catalog.ViewIssues, (*catalog.Snapshot).FilterIssues, issueItem)
}

// GetIssue handles GET /issues/{id}.
func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	detail(h, w, r, (*catalog.Snapshot).Issue, issueItem)
}

// CreateIssue handles POST /issues.
func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	var d editor.IssueDraft
	if !decodeJSON(w, r, &d) {
		return
	}
	is, err := h.editor.CreateIssue(r.Context(), d)
	if err != nil {
		writeError(w, r, "create issue", err)
		return
	}
	writeJSON(w, http.StatusCreated, issueItem(is))
}

// ListDocuments handles GET /documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	listView(h, w, r, catalog.ViewDocuments, (*catalog.Snapshot).FilterDocuments, documentItem)
}

// GetDocument handles GET /documents/{id}.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	detail(h, w, r, (*catalog.Snapshot).Document, documentItem)
}

// ListEvents handles GET /events. Results are most recent first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	listView(h, w, r, catalog.ViewEvents, (*catalog.Snapshot).FilterEvents, eventItem)
}

// GetEvent handles GET /events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	detail(h, w, r, (*catalog.Snapshot).Event, eventItem)
}

// Facets handles GET /facets/{view}.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	v, err := catalog.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, "facets", err)
		return
	}
	facets, err := h.snapshot(w).Facets(v)
	if err != nil {
		writeError(w, r, "facets", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"view": v, "facets": facets})
}

// Overview handles GET /overview.
func (h *Handler) Overview(w http.ResponseWriter, _ *http.Request) {
	o := h.snapshot(w).Overview()
	recent := make([]EventItem, len(o.RecentEvents))
	for i, e := range o.RecentEvents {
		recent[i] = eventItem(e)
	}
	writeJSON(w, http.StatusOK, OverviewResponse{
		Revision:     o.Revision,
		Counts:       o.Counts,
		RecentEvents: recent,
	})
}

// Search handles GET /search.
//
//	@Summary	Search every collection
//	@Param		q		query	string	true	"Search query"
//	@Param		limit	query	int		false	"Max results"
//	@Success	200	{object}	map[string][]index.Hit
//	@Failure	400	{object}	errResponse
//	@Router		/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.search.Search(q, limit)
	if err != nil {
		writeError(w, r, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

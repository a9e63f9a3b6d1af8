package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/techhub/internal/catalog"
)

// Deps are the components the router serves.
type Deps struct {
	Store   *catalog.Store
	Editor  Editor
	Search  Searcher
	Metrics interface {
		ViewObserver
		Handler() http.Handler
	}
	// Events streams change notifications; optional.
	Events http.Handler
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(d Deps) chi.Router {
	var observer ViewObserver
	if d.Metrics != nil {
		observer = d.Metrics
	}
	h := NewHandler(d.Store, d.Editor, d.Search, observer)

	r := chi.NewRouter()
	r.Use(RevisionMiddleware(d.Store.Revision))

	r.Get("/overview", h.Overview)
	r.Get("/facets/{view}", h.Facets)
	r.Get("/search", h.Search)

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.ListArticles)
		r.Post("/", h.PublishArticle)
		r.Post("/autosave", h.AutoSave)
		r.Get("/{id}", h.GetArticle)
		r.Put("/{id}", h.UpdateArticle)
	})

	r.Route("/issues", func(r chi.Router) {
		r.Get("/", h.ListIssues)
		r.Post("/", h.CreateIssue)
		r.Get("/{id}", h.GetIssue)
	})

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.ListDocuments)
		r.Get("/{id}", h.GetDocument)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		if d.Events != nil {
			r.Get("/stream", d.Events.ServeHTTP)
		}
		r.Get("/{id}", h.GetEvent)
	})

	r.Post("/uploads", h.Upload)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	return r
}

// Package api implements the techhub HTTP API using chi.
package api

import (
	"net/http"
	"strconv"

	"github.com/starford/techhub/internal/catalog"
)

// RevisionHeader carries the catalog revision that served a response.
const RevisionHeader = "X-Catalog-Revision"

// RevisionMiddleware stamps each response with the current catalog revision
// so clients can notice reloads.
func RevisionMiddleware(revision func() int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(RevisionHeader, strconv.FormatInt(revision(), 10))
			next.ServeHTTP(w, r)
		})
	}
}

// snapshot takes the snapshot that answers the whole request and stamps its
// revision over the one set by RevisionMiddleware.
func (h *Handler) snapshot(w http.ResponseWriter) *catalog.Snapshot {
	snap := h.store.Snapshot()
	w.Header().Set(RevisionHeader, strconv.FormatInt(snap.Revision, 10))
	return snap
}

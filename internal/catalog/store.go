package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/starford/techhub/internal/apperr"
	"github.com/starford/techhub/internal/filter"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/storage"
	"github.com/starford/techhub/internal/style"
)

// Store holds the current snapshot and answers view queries against it.
// Readers always see one complete snapshot; Replace swaps it wholesale.
type Store struct {
	current  atomic.Pointer[Snapshot]
	revision atomic.Int64
}

// NewStore creates a store serving s.
func NewStore(s *Snapshot) *Store {
	st := &Store{}
	st.Replace(s)
	return st
}

// Snapshot returns the current snapshot. Callers that answer one request
// from several reads should take it once and query it directly.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Revision returns a counter bumped on every Replace.
func (s *Store) Revision() int64 {
	return s.revision.Load()
}

// Replace installs a copy of snap stamped with the next revision and
// returns that revision.
func (s *Store) Replace(snap *Snapshot) int64 {
	next := *snap
	next.Revision = s.revision.Add(1)
	s.current.Store(&next)
	return next.Revision
}

// Reload loads p and installs the result if its checksum differs from the
// current snapshot. It reports whether a new snapshot was installed.
func (s *Store) Reload(p storage.Provider) (bool, error) {
	snap, err := Load(p)
	if err != nil {
		return false, err
	}
	if cur := s.Snapshot(); cur != nil && cur.Checksum == snap.Checksum {
		return false, nil
	}
	s.Replace(snap)
	return true, nil
}

// Articles returns the articles matching c.
func (s *Store) Articles(c filter.Criteria) []models.Article { return s.Snapshot().FilterArticles(c) }

// Issues returns the issues matching c.
func (s *Store) Issues(c filter.Criteria) []models.Issue { return s.Snapshot().FilterIssues(c) }

// Documents returns the documents matching c.
func (s *Store) Documents(c filter.Criteria) []models.Document {
	return s.Snapshot().FilterDocuments(c)
}

// Events returns the events matching c, most recent first.
func (s *Store) Events(c filter.Criteria) []models.Event { return s.Snapshot().FilterEvents(c) }

// Article looks up an article by id.
func (s *Store) Article(id string) (models.Article, error) { return s.Snapshot().Article(id) }

// Issue looks up an issue by id.
func (s *Store) Issue(id string) (models.Issue, error) { return s.Snapshot().Issue(id) }

// Document looks up a document by id.
func (s *Store) Document(id string) (models.Document, error) { return s.Snapshot().Document(id) }

// Event looks up an event by id.
func (s *Store) Event(id string) (models.Event, error) { return s.Snapshot().Event(id) }

// Facets returns the facet vocabularies of v over the current snapshot.
func (s *Store) Facets(v View) ([]FacetInfo, error) { return s.Snapshot().Facets(v) }

// Overview summarizes the current snapshot.
func (s *Store) Overview() Overview { return s.Snapshot().Overview() }

// FilterArticles returns the articles of snap matching c.
func (snap *Snapshot) FilterArticles(c filter.Criteria) []models.Article {
	return articleFilter.Apply(snap.Articles, c)
}

// FilterIssues returns the issues of snap matching c.
func (snap *Snapshot) FilterIssues(c filter.Criteria) []models.Issue {
	return issueFilter.Apply(snap.Issues, c)
}

// FilterDocuments returns the documents of snap matching c.
func (snap *Snapshot) FilterDocuments(c filter.Criteria) []models.Document {
	return documentFilter.Apply(snap.Documents, c)
}

// FilterEvents returns the events of snap matching c, most recent first.
func (snap *Snapshot) FilterEvents(c filter.Criteria) []models.Event {
	return eventFilter.Apply(snap.Events, c)
}

// Article looks up an article by id.
func (snap *Snapshot) Article(id string) (models.Article, error) {
	return find(snap.Articles, id, func(a models.Article) string { return a.ID })
}

// Issue looks up an issue by id.
func (snap *Snapshot) Issue(id string) (models.Issue, error) {
	return find(snap.Issues, id, func(i models.Issue) string { return i.ID })
}

// Document looks up a document by id.
func (snap *Snapshot) Document(id string) (models.Document, error) {
	return find(snap.Documents, id, func(d models.Document) string { return d.ID })
}

// Event looks up an event by id.
func (snap *Snapshot) Event(id string) (models.Event, error) {
	return find(snap.Events, id, func(e models.Event) string { return e.ID })
}

func find[T any](records []T, id string, key func(T) string) (T, error) {
	for _, r := range records {
		if key(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", apperr.ErrNotFound, id)
}

// FacetValue is one selectable value of a facet.
type FacetValue struct {
	Value string       `json:"value"`
	Style *style.Style `json:"style,omitempty"`
}

// FacetInfo is the vocabulary of one facet.
type FacetInfo struct {
	Name   string       `json:"name"`
	Values []FacetValue `json:"values"`
}

// Facets returns the selectable values of every facet of v. Open-ended facets
// (tags, categories) are derived from the current collection in first-seen
// order; enumerated facets list their declared values.
func (snap *Snapshot) Facets(v View) ([]FacetInfo, error) {
	var out []FacetInfo
	for _, name := range v.FacetNames() {
		var values []string
		switch {
		case v == ViewArticles && name == FacetTag:
			values = articleFilter.Vocabulary(snap.Articles, name)
		case v == ViewIssues && name == FacetTag:
			values = issueFilter.Vocabulary(snap.Issues, name)
		case name == FacetCategory:
			values = documentFilter.Vocabulary(snap.Documents, name)
		case name == FacetStatus:
			values = models.Strings(models.Statuses)
		case name == FacetPriority:
			values = models.Strings(models.Priorities)
		case name == FacetFileType:
			values = models.Strings(models.FileTypes)
		case name == FacetType:
			values = models.Strings(models.EventTypes)
		case name == FacetImportance:
			values = models.Strings(models.Importances)
		}
		out = append(out, FacetInfo{Name: name, Values: styled(name, values)})
	}
	if out == nil {
		return nil, fmt.Errorf("%w: unknown view %q", apperr.ErrInvalid, v)
	}
	return out, nil
}

func styled(facet string, values []string) []FacetValue {
	r := style.ForFacet(facet)
	out := make([]FacetValue, len(values))
	for i, v := range values {
		out[i] = FacetValue{Value: v}
		if r != nil {
			st := r.Resolve(v)
			out[i].Style = &st
		}
	}
	return out
}

// Overview summarizes the catalog for the landing page.
type Overview struct {
	Revision     int64          `json:"revision"`
	Counts       map[View]int   `json:"counts"`
	RecentEvents []models.Event `json:"recent_events"`
}

const overviewEvents = 3

// Overview returns collection counts and the most recent events.
func (snap *Snapshot) Overview() Overview {
	recent := eventFilter.Apply(snap.Events, filter.Criteria{})
	if len(recent) > overviewEvents {
		recent = recent[:overviewEvents]
	}
	return Overview{
		Revision: snap.Revision,
		Counts: map[View]int{
			ViewArticles:  len(snap.Articles),
			ViewIssues:    len(snap.Issues),
			ViewDocuments: len(snap.Documents),
			ViewEvents:    len(snap.Events),
		},
		RecentEvents: recent,
	}
}

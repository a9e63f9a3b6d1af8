// Package filter implements the facet-parameterized filter engine shared by
// every list view.
//
// A record passes when it matches the free-text query and every active facet.
// Within a facet the selected values are OR-ed; across facets they are AND-ed.
// A facet with an empty selection is inactive and matches everything.
package filter

import (
	"slices"
	"strings"
)

// Facet extracts the values a record carries for one filter dimension.
// Single-valued fields return at most one value; a record with no value never
// matches a non-empty selection.
type Facet[T any] struct {
	Name   string
	Values func(T) []string
}

// One declares a facet over a single-valued field. Empty field values are
// treated as missing.
func One[T any](name string, get func(T) string) Facet[T] {
	return Facet[T]{Name: name, Values: func(r T) []string {
		if v := get(r); v != "" {
			return []string{v}
		}
		return nil
	}}
}

// Many declares a facet over a multi-valued field such as tags.
func Many[T any](name string, get func(T) []string) Facet[T] {
	return Facet[T]{Name: name, Values: get}
}

// Criteria is the set of active predicates for one view.
type Criteria struct {
	Query      string
	Selections map[string][]string
}

// Select returns a copy of c with the selection for facet replaced.
func (c Criteria) Select(facet string, values ...string) Criteria {
	sel := make(map[string][]string, len(c.Selections)+1)
	for k, v := range c.Selections {
		sel[k] = v
	}
	sel[facet] = values
	return Criteria{Query: c.Query, Selections: sel}
}

// Empty reports whether c filters nothing.
func (c Criteria) Empty() bool {
	if c.Query != "" {
		return false
	}
	for _, v := range c.Selections {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Option configures an Engine.
type Option[T any] func(*Engine[T])

// WithFacets declares the facets a view filters on.
func WithFacets[T any](facets ...Facet[T]) Option[T] {
	return func(e *Engine[T]) {
		e.facets = append(e.facets, facets...)
	}
}

// WithSearch sets the fields the free-text query is matched against.
func WithSearch[T any](fields func(T) []string) Option[T] {
	return func(e *Engine[T]) {
		e.search = fields
	}
}

// WithOrder sorts survivors with cmp. The sort is stable, so records that
// compare equal keep their original relative order.
func WithOrder[T any](cmp func(a, b T) int) Option[T] {
	return func(e *Engine[T]) {
		e.order = cmp
	}
}

// Engine filters one record kind. It holds no per-call state and is safe for
// concurrent use.
type Engine[T any] struct {
	facets []Facet[T]
	search func(T) []string
	order  func(a, b T) int
}

// New builds an engine from options.
func New[T any](opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FacetNames returns the declared facet names in declaration order.
func (e *Engine[T]) FacetNames() []string {
	out := make([]string, len(e.facets))
	for i, f := range e.facets {
		out[i] = f.Name
	}
	return out
}

func (e *Engine[T]) facet(name string) (Facet[T], bool) {
	for _, f := range e.facets {
		if f.Name == name {
			return f, true
		}
	}
	return Facet[T]{}, false
}

// Apply returns the records matching c, in original order unless the engine
// has an ordering. The input slice is never modified.
func (e *Engine[T]) Apply(records []T, c Criteria) []T {
	m := e.compile(c)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	if e.order != nil {
		slices.SortStableFunc(out, e.order)
	}
	return out
}

// Vocabulary returns the distinct values of facet across records in
// first-seen order. Unknown facets yield an empty list.
func (e *Engine[T]) Vocabulary(records []T, facet string) []string {
	f, ok := e.facet(facet)
	if !ok {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		for _, v := range f.Values(r) {
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

type activeFacet[T any] struct {
	values   func(T) []string
	selected map[string]struct{}
}

type matcher[T any] struct {
	query  string
	search func(T) []string
	facets []activeFacet[T]
}

// compile resolves c against the declared facets. Selections naming
// undeclared facets are ignored.
func (e *Engine[T]) compile(c Criteria) matcher[T] {
	m := matcher[T]{search: e.search}
	if c.Query != "" && e.search != nil {
		m.query = strings.ToLower(c.Query)
	}
	for _, f := range e.facets {
		sel := c.Selections[f.Name]
		if len(sel) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(sel))
		for _, v := range sel {
			set[v] = struct{}{}
		}
		m.facets = append(m.facets, activeFacet[T]{values: f.Values, selected: set})
	}
	return m
}

func (m matcher[T]) match(r T) bool {
	if m.query != "" && !m.matchQuery(r) {
		return false
	}
	for _, f := range m.facets {
		if !f.match(r) {
			return false
		}
	}
	return true
}

func (m matcher[T]) matchQuery(r T) bool {
	for _, field := range m.search(r) {
		if strings.Contains(strings.ToLower(field), m.query) {
			return true
		}
	}
	return false
}

func (f activeFacet[T]) match(r T) bool {
	for _, v := range f.values(r) {
		if _, ok := f.selected[v]; ok {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with value appended when absent and removed
// when present. sel is not modified.
func Toggle(sel []string, value string) []string {
	out := make([]string, 0, len(sel)+1)
	removed := false
	for _, v := range sel {
		if v == value {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, value)
	}
	return out
}

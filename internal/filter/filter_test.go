package filter

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

type item struct {
	id     string
	title  string
	desc   string
	tags   []string
	status string
	kind   string
	date   time.Time
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func testEngine() *Engine[item] {
	return New(
		WithFacets(
			Many("tag", func(i item) []string { return i.tags }),
			One("status", func(i item) string { return i.status }),
			One("kind", func(i item) string { return i.kind }),
		),
		WithSearch(func(i item) []string { return []string{i.title, i.desc} }),
	)
}

func fixtures() []item {
	return []item{
		{id: "1", title: "React 18 新特性详解", tags: []string{"React", "Frontend"}, status: "resolved", kind: "pdf"},
		{id: "2", title: "TypeScript 类型报错", desc: "泛型组件类型推导失败", tags: []string{"TypeScript"}, status: "in-progress", kind: "word"},
		{id: "3", title: "Context 性能优化", desc: "react context rerenders", tags: []string{"React", "Performance"}, status: "resolved", kind: "zip"},
		{id: "4", title: "Untagged", status: "open"},
	}
}

func TestApply_EmptyCriteriaReturnsInputInOrder(t *testing.T) {
	in := fixtures()
	got := testEngine().Apply(in, Criteria{})
	if !reflect.DeepEqual(ids(got), []string{"1", "2", "3", "4"}) {
		t.Errorf("ids = %v", ids(got))
	}
	got[0].id = "mutated"
	if in[0].id != "1" {
		t.Error("Apply must not alias the input slice")
	}
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	e := New(WithSearch(func(i item) []string { return []string{i.title} }))
	in := []item{{id: "a", title: "React 18 新特性详解"}, {id: "b", title: "TypeScript 类型报错"}}
	got := e.Apply(in, Criteria{Query: "react"})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Errorf("ids = %v, want [a]", ids(got))
	}
}

func TestApply_SearchMatchesSecondaryField(t *testing.T) {
	got := testEngine().Apply(fixtures(), Criteria{Query: "泛型"})
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Errorf("ids = %v, want [2]", ids(got))
	}
}

func TestApply_MultiTagIsUnion(t *testing.T) {
	c := Criteria{}.Select("tag", "TypeScript", "Performance")
	got := testEngine().Apply(fixtures(), c)
	if !reflect.DeepEqual(ids(got), []string{"2", "3"}) {
		t.Errorf("ids = %v, want [2 3]", ids(got))
	}
}

func TestApply_EmptyTagSetNeverMatchesSelection(t *testing.T) {
	got := testEngine().Apply(fixtures(), Criteria{}.Select("tag", "React", "TypeScript", "Performance", "Frontend"))
	for _, id := range ids(got) {
		if id == "4" {
			t.Fatal("record without tags matched a tag selection")
		}
	}
}

func TestApply_FacetsIntersect(t *testing.T) {
	e := testEngine()
	tagOnly := Criteria{}.Select("tag", "React")
	statusOnly := Criteria{}.Select("status", "resolved", "open")
	both := tagOnly.Select("status", "resolved", "open")

	a := map[string]bool{}
	for _, id := range ids(e.Apply(fixtures(), tagOnly)) {
		a[id] = true
	}
	var want []string
	for _, id := range ids(e.Apply(fixtures(), statusOnly)) {
		if a[id] {
			want = append(want, id)
		}
	}
	got := ids(e.Apply(fixtures(), both))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("combined = %v, want intersection %v", got, want)
	}
}

func TestApply_Idempotent(t *testing.T) {
	e := testEngine()
	c := Criteria{Query: "r"}.Select("tag", "React", "TypeScript")
	once := e.Apply(fixtures(), c)
	twice := e.Apply(once, c)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("once = %v, twice = %v", ids(once), ids(twice))
	}
}

func TestApply_UnknownValueExcludedByKnownSelection(t *testing.T) {
	got := testEngine().Apply(fixtures(), Criteria{}.Select("kind", "pdf", "word", "excel", "ppt"))
	if !reflect.DeepEqual(ids(got), []string{"1", "2"}) {
		t.Errorf("ids = %v, want [1 2]", ids(got))
	}
	got = testEngine().Apply(fixtures(), Criteria{}.Select("kind", "zip"))
	if !reflect.DeepEqual(ids(got), []string{"3"}) {
		t.Errorf("unknown value should still filter by equality, got %v", ids(got))
	}
}

func TestApply_UndeclaredFacetIgnored(t *testing.T) {
	got := testEngine().Apply(fixtures(), Criteria{}.Select("color", "red"))
	if len(got) != 4 {
		t.Errorf("len = %d, want 4", len(got))
	}
}

func TestApply_StableDescendingOrder(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	e := New(WithOrder(func(a, b item) int { return b.date.Compare(a.date) }))
	in := []item{
		{id: "a", date: day(1)},
		{id: "b", date: day(20)},
		{id: "c", date: day(10)},
		{id: "d", date: day(10)},
	}
	got := e.Apply(in, Criteria{})
	if !reflect.DeepEqual(ids(got), []string{"b", "c", "d", "a"}) {
		t.Errorf("ids = %v, want [b c d a]", ids(got))
	}
}

func TestVocabulary_FirstSeenOrder(t *testing.T) {
	got := testEngine().Vocabulary(fixtures(), "tag")
	want := []string{"React", "Frontend", "TypeScript", "Performance"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("vocab = %v, want %v", got, want)
	}
	if v := testEngine().Vocabulary(fixtures(), "missing"); len(v) != 0 {
		t.Errorf("unknown facet vocab = %v", v)
	}
}

func TestVocabulary_RecomputedFromCollection(t *testing.T) {
	e := testEngine()
	more := append(fixtures(), item{id: "5", tags: []string{"Go"}})
	got := e.Vocabulary(more, "tag")
	if got[len(got)-1] != "Go" {
		t.Errorf("vocab = %v, want trailing Go", got)
	}
}

func TestToggle(t *testing.T) {
	sel := []string{"a", "b"}
	added := Toggle(sel, "c")
	if strings.Join(added, ",") != "a,b,c" {
		t.Errorf("added = %v", added)
	}
	removed := Toggle(added, "a")
	if strings.Join(removed, ",") != "b,c" {
		t.Errorf("removed = %v", removed)
	}
	if strings.Join(sel, ",") != "a,b" {
		t.Errorf("input mutated: %v", sel)
	}
}

func TestCriteriaEmpty(t *testing.T) {
	if !(Criteria{}).Empty() {
		t.Error("zero criteria should be empty")
	}
	if !(Criteria{Selections: map[string][]string{"tag": nil}}).Empty() {
		t.Error("empty selection should be empty")
	}
	if (Criteria{Query: "x"}).Empty() {
		t.Error("query should make criteria non-empty")
	}
}

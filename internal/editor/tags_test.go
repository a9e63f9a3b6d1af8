package editor

import (
	"slices"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"React", " react", "", "  ", "React", "Go"})
	want := []string{"React", "react", "Go"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if NormalizeTags(nil) == nil {
		t.Error("nil result")
	}
}

func TestAddRemoveTag(t *testing.T) {
	base := []string{"Go", "Backend"}

	added := AddTag(base, " SQL ")
	if !slices.Equal(added, []string{"Go", "Backend", "SQL"}) {
		t.Errorf("AddTag = %v", added)
	}
	if again := AddTag(added, "Go"); !slices.Equal(again, added) {
		t.Errorf("duplicate add = %v", again)
	}

	removed := RemoveTag(added, "Backend")
	if !slices.Equal(removed, []string{"Go", "SQL"}) {
		t.Errorf("RemoveTag = %v", removed)
	}
	if !slices.Equal(base, []string{"Go", "Backend"}) {
		t.Errorf("input mutated: %v", base)
	}
}

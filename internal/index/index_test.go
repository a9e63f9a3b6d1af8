package index

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/techhub/internal/apperr"
	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var sample = []Record{
	{Kind: models.KindArticle, ID: "1", Title: "Kubernetes operators", Body: "writing controllers in Go", Tags: []string{"Go"}},
	{Kind: models.KindIssue, ID: "1", Title: "Pod eviction", Body: "kubernetes evicts pods under memory pressure"},
	{Kind: models.KindDocument, ID: "7", Title: "Runbook", Body: "on-call handbook", Tags: []string{"ops"}},
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&count); err != nil {
		t.Fatalf("records table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM meta`).Scan(&count); err != nil {
		t.Fatalf("meta table missing: %v", err)
	}
}

func TestOpenMemory(t *testing.T) {
	db, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if err := db.Rebuild(sample, "c1"); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n, _ := db.Count(); n != len(sample) {
		t.Errorf("count = %d, want %d", n, len(sample))
	}
}

func TestRebuildReplacesEverything(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(sample, "c1"); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if err := db.Rebuild(sample[2:], "c2"); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if cs, _ := db.Checksum(); cs != "c2" {
		t.Errorf("checksum = %q", cs)
	}
	hits, err := db.Search("Kubernetes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("stale hits: %+v", hits)
	}
}

func TestRebuildRejectsDuplicates(t *testing.T) {
	db := testDB(t)
	if err := db.Rebuild(sample, "c1"); err != nil {
		t.Fatal(err)
	}
	dup := append([]Record{}, sample[0], sample[0])
	if err := db.Rebuild(dup, "c2"); err == nil {
		t.Fatal("expected error for duplicate kind/id")
	}
	// The failed rebuild is rolled back.
	if n, _ := db.Count(); n != len(sample) {
		t.Errorf("count after rollback = %d", n)
	}
	if cs, _ := db.Checksum(); cs != "c1" {
		t.Errorf("checksum after rollback = %q", cs)
	}
}

func TestChecksumEmpty(t *testing.T) {
	db := testDB(t)
	cs, err := db.Checksum()
	if err != nil || cs != "" {
		t.Errorf("Checksum = %q, %v", cs, err)
	}
}

func TestSearchAcrossKinds(t *testing.T) {
	db := testDB(t)
	_ = db.Rebuild(sample, "c1")

	hits, err := db.Search("kubernetes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	kinds := map[models.Kind]bool{}
	for _, h := range hits {
		kinds[h.Kind] = true
		if h.Snippet == "" && h.Kind == models.KindIssue {
			t.Errorf("empty snippet for %+v", h)
		}
	}
	if !kinds[models.KindArticle] || !kinds[models.KindIssue] {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestSearchTagsAndLimit(t *testing.T) {
	db := testDB(t)
	_ = db.Rebuild(sample, "c1")

	hits, _ := db.Search("ops", 10)
	if len(hits) != 1 || hits[0].ID != "7" {
		t.Errorf("tag hits = %+v", hits)
	}
	hits, _ = db.Search("kubernetes", 1)
	if len(hits) != 1 {
		t.Errorf("limited hits = %d", len(hits))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	db := testDB(t)
	if _, err := db.Search("  ", 10); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestSyncSkipsUnchangedSnapshot(t *testing.T) {
	db := testDB(t)
	snap, err := catalog.Load(storage.NewEmbedded())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rebuilt, err := Sync(db, snap, quietLogger())
	if err != nil || !rebuilt {
		t.Fatalf("first Sync = %v, %v", rebuilt, err)
	}
	want := len(snap.Articles) + len(snap.Issues) + len(snap.Documents) + len(snap.Events)
	if n, _ := db.Count(); n != want {
		t.Errorf("count = %d, want %d", n, want)
	}

	rebuilt, err = Sync(db, snap, quietLogger())
	if err != nil || rebuilt {
		t.Errorf("second Sync = %v, %v", rebuilt, err)
	}
}

func TestRecordsFlattenSnapshot(t *testing.T) {
	snap, err := catalog.Load(storage.NewEmbedded())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	recs := Records(snap)
	if recs[0].Kind != models.KindArticle || recs[len(recs)-1].Kind != models.KindEvent {
		t.Errorf("order = %s..%s", recs[0].Kind, recs[len(recs)-1].Kind)
	}
	for _, r := range recs {
		if r.Kind == models.KindArticle && r.ID == "2" && r.Body == "" {
			t.Error("editor document article has no body text")
		}
	}
}

// failingIndex refuses every rebuild.
type failingIndex struct{ *DB }

func (failingIndex) Rebuild([]Record, string) error { return errors.New("disk full") }

func TestSyncReportsRebuildFailure(t *testing.T) {
	snap := &catalog.Snapshot{Checksum: "c1"}
	rebuilt, err := Sync(failingIndex{testDB(t)}, snap, quietLogger())
	if err == nil || rebuilt {
		t.Errorf("Sync = %v, %v, want error", rebuilt, err)
	}
}

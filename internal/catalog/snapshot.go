// Package catalog loads fixture collections into immutable snapshots and
// serves the filtered views over them.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/techhub/internal/checksum"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/storage"
)

// Fixture file names, one per collection.
const (
	ArticlesFile  = "articles.yaml"
	IssuesFile    = "issues.yaml"
	DocumentsFile = "documents.yaml"
	EventsFile    = "events.yaml"
)

// Snapshot is one immutable generation of all four collections. It is never
// mutated after Load returns; changes produce a new Snapshot.
type Snapshot struct {
	Articles  []models.Article
	Issues    []models.Issue
	Documents []models.Document
	Events    []models.Event
	Checksum  string
	LoadedAt  time.Time
	// Revision is assigned by the Store that serves the snapshot.
	Revision int64
}

// Load reads and validates every fixture file from p. A missing file yields
// an empty collection.
func Load(p storage.Provider) (*Snapshot, error) {
	metas, err := p.List()
	if err != nil {
		return nil, err
	}
	sums := make(map[string]string, len(metas))
	for _, m := range metas {
		sums[m.Name] = m.Checksum
	}

	s := &Snapshot{Checksum: checksum.Combine(sums), LoadedAt: time.Now()}
	if s.Articles, err = loadFile[models.Article](p, ArticlesFile, validateArticle); err != nil {
		return nil, err
	}
	if s.Issues, err = loadFile[models.Issue](p, IssuesFile, validateIssue); err != nil {
		return nil, err
	}
	if s.Documents, err = loadFile[models.Document](p, DocumentsFile, validateDocument); err != nil {
		return nil, err
	}
	if s.Events, err = loadFile[models.Event](p, EventsFile, validateEvent); err != nil {
		return nil, err
	}
	return s, nil
}

func loadFile[T any](p storage.Provider, name string, validate func(*T) (string, error)) ([]T, error) {
	data, err := p.Read(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}
	var records []T
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	seen := make(map[string]int, len(records))
	for i := range records {
		id, err := validate(&records[i])
		if err != nil {
			return nil, fmt.Errorf("catalog: %s record %d: %w", name, i, err)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("catalog: %s: duplicate id %q at records %d and %d", name, id, prev, i)
		}
		seen[id] = i
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func validateArticle(a *models.Article) (string, error) {
	return a.ID, validation.ValidateStruct(a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.Title, validation.Required),
	)
}

func validateIssue(i *models.Issue) (string, error) {
	return i.ID, validation.ValidateStruct(i,
		validation.Field(&i.ID, validation.Required),
		validation.Field(&i.Title, validation.Required),
	)
}

func validateDocument(d *models.Document) (string, error) {
	return d.ID, validation.ValidateStruct(d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Size, validation.Min(int64(0))),
	)
}

func validateEvent(e *models.Event) (string, error) {
	return e.ID, validation.ValidateStruct(e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Title, validation.Required),
	)
}

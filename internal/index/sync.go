package index

import (
	"log/slog"
	"strings"

	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/models"
	"github.com/starford/techhub/internal/parser"
)

// Sync brings the index up to date with snap. It does nothing when the index
// already holds snap's generation, and reports whether it rebuilt.
func Sync(idx Index, snap *catalog.Snapshot, logger *slog.Logger) (bool, error) {
	current, err := idx.Checksum()
	if err != nil {
		return false, err
	}
	if current != "" && current == snap.Checksum {
		logger.Debug("index: up to date", slog.String("checksum", current))
		return false, nil
	}

	records := Records(snap)
	if err := idx.Rebuild(records, snap.Checksum); err != nil {
		return false, err
	}
	logger.Info("index: rebuilt", slog.Int("records", len(records)))
	return true, nil
}

// Records flattens every collection of snap into searchable records.
func Records(snap *catalog.Snapshot) []Record {
	out := make([]Record, 0, len(snap.Articles)+len(snap.Issues)+len(snap.Documents)+len(snap.Events))
	for _, a := range snap.Articles {
		out = append(out, Record{
			Kind:  models.KindArticle,
			ID:    a.ID,
			Title: a.Title,
			Body:  parser.SearchText(a.Content),
			Tags:  a.Tags,
		})
	}
	for _, i := range snap.Issues {
		out = append(out, Record{
			Kind:  models.KindIssue,
			ID:    i.ID,
			Title: i.Title,
			Body:  joinNonEmpty(i.Description, i.Solution),
			Tags:  i.Tags,
		})
	}
	for _, d := range snap.Documents {
		out = append(out, Record{
			Kind:  models.KindDocument,
			ID:    d.ID,
			Title: d.Title,
			Body:  d.Description,
			Tags:  nonEmpty(d.Category),
		})
	}
	for _, e := range snap.Events {
		out = append(out, Record{
			Kind:  models.KindEvent,
			ID:    e.ID,
			Title: e.Title,
			Body:  e.Description,
			Tags:  nonEmpty(string(e.Type)),
		})
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

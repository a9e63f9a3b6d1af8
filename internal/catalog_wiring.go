package internal

import (
	"fmt"
	"log/slog"

	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/index"
	"github.com/starford/techhub/internal/metrics"
	"github.com/starford/techhub/internal/sse"
	"github.com/starford/techhub/internal/storage"
)

// openProvider returns the fixture source selected by cfg.
func openProvider(cfg FixturesConfig) (storage.Provider, error) {
	if cfg.Embedded() {
		return storage.NewEmbedded(), nil
	}
	p, err := storage.NewFS(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("init fixtures: %w", err)
	}
	return p, nil
}

// openCatalog loads the first snapshot and builds the search index over it.
func openCatalog(p storage.Provider, dsn string, logger *slog.Logger) (*catalog.Store, *index.DB, error) {
	snap, err := catalog.Load(p)
	if err != nil {
		return nil, nil, fmt.Errorf("load fixtures: %w", err)
	}
	db, err := index.Open(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}
	if _, err := index.Sync(db, snap, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("build index: %w", err)
	}
	logger.Info("Catalog loaded",
		slog.Int("articles", len(snap.Articles)),
		slog.Int("issues", len(snap.Issues)),
		slog.Int("documents", len(snap.Documents)),
		slog.Int("events", len(snap.Events)))
	return catalog.NewStore(snap), db, nil
}

// reloader swaps in a new snapshot when the fixtures change, rebuilds the
// index and tells subscribers. A failed load keeps the current snapshot.
type reloader struct {
	provider storage.Provider
	store    *catalog.Store
	index    index.Index
	broker   *sse.Broker
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func (r *reloader) reload() {
	changed, err := r.store.Reload(r.provider)
	if err != nil {
		r.metrics.ObserveReload(metrics.ReloadFailed)
		r.logger.Warn("fixture reload failed, keeping current snapshot", slog.String("error", err.Error()))
		return
	}
	if !changed {
		r.metrics.ObserveReload(metrics.ReloadUnchanged)
		return
	}

	if _, err := index.Sync(r.index, r.store.Snapshot(), r.logger); err != nil {
		r.logger.Warn("index rebuild failed", slog.String("error", err.Error()))
	}
	rev := r.store.Revision()
	r.metrics.ObserveReload(metrics.ReloadApplied)
	r.broker.PublishChange(sse.TypeCatalogReloaded, map[string]any{"revision": rev})
	r.logger.Info("Catalog reloaded", slog.Int64("revision", rev))
}

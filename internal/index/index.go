package index

// Index is the search index as seen by Sync and the catalog reloader.
type Index interface {
	Rebuild(records []Record, checksum string) error
	Checksum() (string, error)
	Search(query string, limit int) ([]Hit, error)
	Close() error
}

var _ Index = (*DB)(nil)

package storage

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/starford/techhub/internal/checksum"
)

//go:embed fixtures/*.yaml
var builtin embed.FS

// Embedded implements Provider over the fixtures compiled into the binary.
type Embedded struct {
	fsys fs.FS
}

// NewEmbedded returns the built-in fixture provider.
func NewEmbedded() *Embedded {
	sub, err := fs.Sub(builtin, "fixtures")
	if err != nil {
		panic(err)
	}
	return &Embedded{fsys: sub}
}

// List returns metadata for every built-in fixture file.
func (e *Embedded) List() ([]FileMeta, error) {
	entries, err := fs.ReadDir(e.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("storage: list embedded: %w", err)
	}
	var out []FileMeta
	for _, ent := range entries {
		if ent.IsDir() || !IsFixture(ent.Name()) {
			continue
		}
		data, err := fs.ReadFile(e.fsys, ent.Name())
		if err != nil {
			return nil, fmt.Errorf("storage: read embedded %s: %w", ent.Name(), err)
		}
		out = append(out, FileMeta{Name: ent.Name(), Checksum: checksum.Sum(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Read returns the raw bytes of a built-in fixture file.
func (e *Embedded) Read(name string) ([]byte, error) {
	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("storage: invalid name: %s", name)
	}
	data, err := fs.ReadFile(e.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("storage: read embedded %s: %w", name, err)
	}
	return data, nil
}

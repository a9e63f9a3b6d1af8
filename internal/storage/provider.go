// Package storage defines the read-only fixture source.
package storage

import (
	"strings"
	"time"
)

// FileMeta describes one fixture file.
type FileMeta struct {
	Name      string    `json:"name"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for fixture file access.
type Provider interface {
	// List returns metadata for every .yaml file at the provider root.
	List() ([]FileMeta, error)
	// Read returns the raw bytes of the named file (relative to the root).
	Read(name string) ([]byte, error)
}

// IsFixture reports whether name has a fixture file extension.
func IsFixture(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

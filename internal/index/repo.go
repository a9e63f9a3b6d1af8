package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/techhub/internal/models"
)

const defaultLimit = 20

const checksumKey = "snapshot_checksum"

// Record is one searchable catalog entry.
type Record struct {
	Kind  models.Kind
	ID    string
	Title string
	Body  string
	Tags  []string
}

// Hit is one search result.
type Hit struct {
	Kind    models.Kind `json:"kind"`
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Snippet string      `json:"snippet"`
}

// Rebuild replaces every indexed record with records and stores checksum as
// the generation they came from. It runs in one transaction.
func (db *DB) Rebuild(records []Record, checksum string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("index: clear records: %w", err)
	}
	if err := ftsReset(tx); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO records (kind, id, title, body, tags) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		tags := strings.Join(r.Tags, " ")
		if _, err := stmt.Exec(string(r.Kind), r.ID, r.Title, r.Body, tags); err != nil {
			return fmt.Errorf("index: insert %s/%s: %w", r.Kind, r.ID, err)
		}
		if err := ftsInsert(tx, r, tags); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, checksumKey, checksum)
	if err != nil {
		return fmt.Errorf("index: store checksum: %w", err)
	}

	return tx.Commit()
}

// Checksum returns the snapshot checksum of the last Rebuild, or "" if the
// index is empty.
func (db *DB) Checksum() (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, checksumKey).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: checksum: %w", err)
	}
	return cs, nil
}

// Count returns the number of indexed records.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

func scanHits(rows *sql.Rows) ([]Hit, error) {
	defer rows.Close()
	out := []Hit{}
	for rows.Next() {
		var h Hit
		var kind string
		if err := rows.Scan(&kind, &h.ID, &h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		h.Kind = models.Kind(kind)
		out = append(out, h)
	}
	return out, rows.Err()
}

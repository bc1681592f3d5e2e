// Package catalog maintains a SQLite-backed mirror of indexed songs for
// listing and stats, kept alongside — never instead of — the in-process
// binary index. It is never consulted during matching: the index remains
// the sole source of truth for lookups.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a thin wrapper around a SQLite connection holding song
// metadata.
type Catalog struct {
	db *sql.DB
}

// Open creates (if needed) and opens the catalog database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id               INTEGER PRIMARY KEY,
	name             TEXT NOT NULL,
	fingerprint_count INTEGER NOT NULL DEFAULT 0,
	indexed_at       DATETIME NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: migrate: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close releases the underlying connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RegisterSong upserts a song's metadata mirror row.
func (c *Catalog) RegisterSong(songID uint32, name string, fingerprintCount int) error {
	_, err := c.db.Exec(
		`INSERT INTO songs (id, name, fingerprint_count, indexed_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			fingerprint_count = excluded.fingerprint_count,
			indexed_at = excluded.indexed_at`,
		songID, name, fingerprintCount, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("catalog: register song %d: %w", songID, err)
	}
	return nil
}

// Song is one catalog row.
type Song struct {
	ID               uint32
	Name             string
	FingerprintCount int
	IndexedAt        time.Time
}

// List returns every song in the catalog, ordered by id.
func (c *Catalog) List() ([]Song, error) {
	rows, err := c.db.Query(`SELECT id, name, fingerprint_count, indexed_at FROM songs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	defer rows.Close()

	var out []Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.Name, &s.FingerprintCount, &s.IndexedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Stats summarizes the catalog for the `stats` CLI command.
type Stats struct {
	SongCount       int
	TotalFingerprints int
}

// Stats computes the aggregate song/fingerprint counts.
func (c *Catalog) Stats() (Stats, error) {
	var s Stats
	row := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(fingerprint_count), 0) FROM songs`)
	if err := row.Scan(&s.SongCount, &s.TotalFingerprints); err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	return s, nil
}

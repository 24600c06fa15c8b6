// Package sqlite exports a corpus store as a SQLite database, supporting
// both pure Go (modernc.org/sqlite) and CGO (mattn/go-sqlite3) drivers.
//
// Build modes:
//   - Default (CGO_ENABLED=0): Uses pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): Uses mattn/go-sqlite3
//
// Use Open() instead of sql.Open() to ensure the correct driver is used.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/whoisashraf/quran-api/core/corpus"
)

// DriverName returns the SQL driver name in use.
func DriverName() string {
	return driverName
}

// DriverType returns "purego" for modernc.org/sqlite, "cgo" for
// mattn/go-sqlite3.
func DriverType() string {
	return driverType
}

// Open opens a SQLite database using the appropriate driver.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// OpenReadOnly opens a SQLite database in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open(path + "?mode=ro")
}

const schema = `
CREATE TABLE surahs (
	number     INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	ayah_count INTEGER NOT NULL
);
CREATE TABLE ayahs (
	surah INTEGER NOT NULL REFERENCES surahs(number),
	ayah  INTEGER NOT NULL,
	text  TEXT NOT NULL,
	juz   INTEGER NOT NULL,
	page  INTEGER NOT NULL,
	PRIMARY KEY (surah, ayah)
);
CREATE INDEX idx_ayahs_juz ON ayahs(juz);
CREATE INDEX idx_ayahs_page ON ayahs(page);
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Export writes a snapshot of the store to a new SQLite database at path.
// The whole export runs in one transaction; a failed export leaves no
// partial database content behind.
func Export(ctx context.Context, store *corpus.Store, path string) error {
	db, err := Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	surahStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO surahs (number, name, ayah_count) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing surah insert: %w", err)
	}
	defer surahStmt.Close()

	ayahStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO ayahs (surah, ayah, text, juz, page) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing ayah insert: %w", err)
	}
	defer ayahStmt.Close()

	for _, ch := range store.Chapters() {
		if _, err := surahStmt.ExecContext(ctx, ch.Number, ch.Name, ch.VerseCount()); err != nil {
			return fmt.Errorf("inserting surah %d: %w", ch.Number, err)
		}
		for _, v := range ch.Verses {
			if _, err := ayahStmt.ExecContext(ctx, ch.Number, v.Number, v.Text, v.Juz, v.Page); err != nil {
				return fmt.Errorf("inserting ayah %d:%d: %w", ch.Number, v.Number, err)
			}
		}
	}

	meta := map[string]string{
		"checksum":     store.Checksum(),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("inserting meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

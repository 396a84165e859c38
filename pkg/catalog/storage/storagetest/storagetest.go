// Package storagetest creates throwaway SQLite catalogs for tests.
//
// The schema mirrors the tables the SafeTube application creates on first start,
// so jobs can be exercised against a real database file without the application.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"safetube/cleanup/pkg/catalog"
	"safetube/cleanup/pkg/catalog/storage"
)

// Schema is the subset of the SafeTube application schema used by maintenance jobs.
const Schema = `
CREATE TABLE IF NOT EXISTS videos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL DEFAULT '',
    youtube_url TEXT,
    local_path TEXT,
    thumbnail_path TEXT,
    subtitle_path TEXT,
    duration_seconds INTEGER,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Catalog is a temporary catalog database.
type Catalog struct {
	t    testing.TB
	Path string
	DB   *sqlx.DB
}

// New creates an empty catalog with the SafeTube schema in t.TempDir().
// The database is closed when the test ends.
func New(t testing.TB) *Catalog {
	t.Helper()

	path := filepath.Join(t.TempDir(), "safetube.db")

	db, err := sqlx.Open(storage.DriverModernc, path)
	if err != nil {
		t.Fatalf("failed to open test catalog: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return &Catalog{t: t, Path: path, DB: db}
}

// Config returns a store configuration pointing at the catalog file.
func (c *Catalog) Config() *storage.SQLiteConfig {
	return &storage.SQLiteConfig{
		Path:        c.Path,
		Driver:      storage.DriverModernc,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// Opener returns an opener for the catalog file.
func (c *Catalog) Opener() catalog.Opener {
	return storage.NewSQLiteOpener(c.Config())
}

// SetSetting upserts a settings row.
func (c *Catalog) SetSetting(key, value string) {
	c.t.Helper()

	_, err := c.DB.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		c.t.Fatalf("failed to set setting %q: %v", key, err)
	}
}

// DeleteSetting removes a settings row.
func (c *Catalog) DeleteSetting(key string) {
	c.t.Helper()

	if _, err := c.DB.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		c.t.Fatalf("failed to delete setting %q: %v", key, err)
	}
}

// InsertVideo inserts a video row. Empty paths are stored as NULL.
// A zero ID lets SQLite assign one; the stored ID is returned.
func (c *Catalog) InsertVideo(v catalog.Video) int64 {
	c.t.Helper()

	result, err := c.DB.Exec(`INSERT INTO videos (id, local_path, thumbnail_path, subtitle_path, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		nullInt(v.ID), nullString(v.LocalPath), nullString(v.ThumbnailPath), nullString(v.SubtitlePath), v.CreatedAt)
	if err != nil {
		c.t.Fatalf("failed to insert video: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		c.t.Fatalf("failed to read inserted video id: %v", err)
	}
	return id
}

// VideoIDs returns the IDs of all video rows, ascending.
func (c *Catalog) VideoIDs() []int64 {
	c.t.Helper()

	ids := []int64{}
	if err := c.DB.Select(&ids, `SELECT id FROM videos ORDER BY id`); err != nil {
		c.t.Fatalf("failed to list videos: %v", err)
	}
	return ids
}

// HasVideo reports whether a row with the given id exists.
func (c *Catalog) HasVideo(id int64) bool {
	c.t.Helper()

	var n int
	if err := c.DB.Get(&n, `SELECT COUNT(*) FROM videos WHERE id = ?`, id); err != nil {
		c.t.Fatalf("failed to count videos: %v", err)
	}
	return n > 0
}

// Store opens a store on the catalog and closes it when the test ends.
func (c *Catalog) Store() catalog.Store {
	c.t.Helper()

	store, err := c.Opener().Open(context.Background())
	if err != nil {
		c.t.Fatalf("failed to open store: %v", err)
	}
	c.t.Cleanup(func() { store.Close() })
	return store
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: i != 0}
}

package gamedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gameid/internal/platform"
)

// Cache persists imported metadata in SQLite so identification works
// offline once a snapshot has been fetched.
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache initializes or connects to the metadata cache at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{db: db, path: path}
	if err := cache.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

// Path returns the filesystem location of the cache database.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS games (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    platform TEXT NOT NULL,
    serial TEXT NOT NULL,
    title TEXT NOT NULL,
    developer TEXT NOT NULL DEFAULT '',
    publisher TEXT NOT NULL DEFAULT '',
    rating TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL DEFAULT '',
    release_date TEXT NOT NULL DEFAULT '',
    canonical_id TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_games_platform_serial ON games (platform, serial);
`
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ReplacePlatform swaps in a fresh snapshot for one platform atomically.
func (c *Cache) ReplacePlatform(ctx context.Context, tag platform.Tag, recs []Record) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE platform = ?`, string(tag)); err != nil {
		return fmt.Errorf("clear %s records: %w", tag, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO games (
        platform, serial, title, developer, publisher, rating, region, release_date, canonical_id
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			string(tag), rec.Serial, rec.Title, rec.Developer, rec.Publisher,
			rec.Rating, rec.Region, rec.ReleaseDate, rec.CanonicalID,
		); err != nil {
			return fmt.Errorf("insert record %q: %w", rec.Serial, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// LoadIndex builds the in-memory lookup index from the cache. An empty
// cache yields an index marked unavailable: a lookup against nothing should
// say so instead of reporting every serial as unknown.
func (c *Cache) LoadIndex(ctx context.Context) (*Index, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT
        platform, serial, title, developer, publisher, rating, region, release_date, canonical_id
    FROM games`)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	defer rows.Close()

	ix := NewIndex()
	count := 0
	for rows.Next() {
		var rec Record
		var tag string
		if err := rows.Scan(&tag, &rec.Serial, &rec.Title, &rec.Developer, &rec.Publisher,
			&rec.Rating, &rec.Region, &rec.ReleaseDate, &rec.CanonicalID); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Platform = platform.Tag(tag)
		ix.Add(rec)
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	if count == 0 {
		ix.SetUnavailable(fmt.Errorf("%w: cache %s holds no records; run a database update",
			ErrDatabaseUnavailable, c.path))
	}
	return ix, nil
}

// Stats reports how many records each platform has in the cache.
func (c *Cache) Stats(ctx context.Context) (map[platform.Tag]int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT platform, COUNT(*) FROM games GROUP BY platform`)
	if err != nil {
		return nil, fmt.Errorf("cache stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[platform.Tag]int)
	for rows.Next() {
		var tag string
		var n int
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[platform.Tag(tag)] = n
	}
	return stats, rows.Err()
}

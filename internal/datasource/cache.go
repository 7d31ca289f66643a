// Package datasource caches aggregated calendar collections in SQLite so
// repeated runs against the same ICS export skip parsing. Entries are keyed
// by source path plus a content hash; a changed file is a cache miss.
package datasource

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/dfmore/calviz/pkg/model"
)

// ErrCacheMiss is returned when no cached collection matches the source file.
var ErrCacheMiss = errors.New("datasource: cache miss")

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	source     TEXT NOT NULL,
	hash       TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (source, hash)
);
`

// Cache is a SQLite-backed store of aggregated collections.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db, path: path}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the cached collection for the source file, or ErrCacheMiss
// when the file changed since it was cached or was never cached.
func (c *Cache) Get(sourcePath string) (*model.Collection, error) {
	hash, err := hashFile(sourcePath)
	if err != nil {
		return nil, err
	}
	var payload []byte
	row := c.db.QueryRow(
		`SELECT payload FROM collections WHERE source = ? AND hash = ?`,
		sourcePath, hash,
	)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	var coll model.Collection
	if err := json.Unmarshal(payload, &coll); err != nil {
		return nil, fmt.Errorf("decode cached collection: %w", err)
	}
	return &coll, nil
}

// Put stores the collection under the source file's current content hash.
// Stale entries for the same source are dropped.
func (c *Cache) Put(sourcePath string, coll *model.Collection) error {
	hash, err := hashFile(sourcePath)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(coll)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM collections WHERE source = ?`, sourcePath); err != nil {
		return fmt.Errorf("evict stale entries: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO collections (source, hash, payload, created_at) VALUES (?, ?, ?, ?)`,
		sourcePath, hash, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return tx.Commit()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash source file: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash source file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/lobster/pkg/ports"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS cache (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Cache implements ports.Cache on a single SQLite table.
// Values survive restarts, unlike the memory and Redis defaults.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// GetString reads the value for key.
func (c *Cache) GetString(ctx context.Context, key string) (string, error) {
	var val string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM cache WHERE key = ?`, key).Scan(&val)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ports.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to read from sqlite: %w", err)
	}
	return val, nil
}

// SetString upserts the value for key in one statement.
func (c *Cache) SetString(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write to sqlite: %w", err)
	}
	return nil
}

// Remove deletes key.
func (c *Cache) Remove(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete from sqlite: %w", err)
	}
	return nil
}

// Keys returns the keys starting with prefix.
func (c *Cache) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT key FROM cache WHERE key LIKE ? ESCAPE '\' ORDER BY key`, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list sqlite keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan sqlite key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

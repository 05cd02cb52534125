// Package cache persists the client-visible standup list between runs, the
// way the original browser client kept it in local storage. Entries are
// stored as JSON rows in a small sqlite database so their order survives.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"standup-tracker/internal/domain/entity"
)

// Cache is a local, ordered store of standup entries.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS standups (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			data TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// List returns all cached entries in stored order.
func (c *Cache) List() ([]entity.StandupEntry, error) {
	rows, err := c.db.Query(`SELECT data FROM standups ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	defer rows.Close()

	var entries []entity.StandupEntry
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan cache row: %w", err)
		}
		var entry entity.StandupEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode cached entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache rows: %w", err)
	}
	return entries, nil
}

// ReplaceAll atomically swaps the cache contents for the given list,
// preserving slice order.
func (c *Cache) ReplaceAll(entries []entity.StandupEntry) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM standups`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO standups (id, data) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to encode entry %s: %w", entry.ID, err)
		}
		if _, err := stmt.Exec(entry.ID.String(), string(data)); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache: %w", err)
	}
	return nil
}

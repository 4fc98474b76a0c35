// Package db holds the on-disk cache of Steam Workshop metadata. Everything
// in it is derived state; deleting the file only costs a refetch.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache is the workshop metadata store, one SQLite file per data directory.
// It embeds the sql handle, so callers can query it directly.
type Cache struct {
	*sql.DB
}

// Open opens the cache at path, creating it if needed, and brings the schema
// up to date.
func Open(path string) (*Cache, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata cache: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := handle.Exec(pragma); err != nil {
			handle.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	c := &Cache{DB: handle}
	if err := c.applyMigrations(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("migrating metadata cache: %w", err)
	}
	return c, nil
}

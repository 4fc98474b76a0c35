package db

import "fmt"

// A migration is applied once, inside its own transaction, in version order.
// schema_migrations records which versions have already run, so opening an
// old cache file upgrades it in place.
type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE workshop_metadata (
				steam_id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				creator TEXT,
				file_size INTEGER DEFAULT 0,
				time_created INTEGER DEFAULT 0,
				time_updated INTEGER DEFAULT 0,
				fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX idx_workshop_metadata_fetched ON workshop_metadata(fetched_at)`,
		},
	},
}

func (c *Cache) applyMigrations() error {
	if _, err := c.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	var current int
	if err := c.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := c.applyOne(m); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
	}
	return nil
}

func (c *Cache) applyOne(m migration) error {
	tx, err := c.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return err
	}
	return tx.Commit()
}

package db

import (
	"fmt"
	"strings"
	"time"

	"twmm/internal/workshop"
)

// UpsertWorkshopItems inserts or refreshes cached workshop metadata in one
// transaction.
func (c *Cache) UpsertWorkshopItems(items []workshop.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := c.Begin()
	if err != nil {
		return fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO workshop_metadata (steam_id, title, creator, file_size, time_created, time_updated, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(steam_id) DO UPDATE SET
			title = excluded.title,
			creator = excluded.creator,
			file_size = excluded.file_size,
			time_created = excluded.time_created,
			time_updated = excluded.time_updated,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, item := range items {
		if _, err := stmt.Exec(
			item.SteamID, item.Title, item.Creator, item.FileSize,
			item.TimeCreated.Unix(), item.TimeUpdated.Unix(), now,
		); err != nil {
			return fmt.Errorf("upserting workshop item %s: %w", item.SteamID, err)
		}
	}

	return tx.Commit()
}

// GetWorkshopItems returns the cached metadata for the given ids, keyed by
// steam id. Ids with no cached row are simply absent.
func (c *Cache) GetWorkshopItems(ids []string) (map[string]workshop.Item, error) {
	items := make(map[string]workshop.Item)
	if len(ids) == 0 {
		return items, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := c.Query(fmt.Sprintf(`
		SELECT steam_id, title, creator, file_size, time_created, time_updated
		FROM workshop_metadata
		WHERE steam_id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("querying workshop metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item workshop.Item
		var created, updated int64
		if err := rows.Scan(&item.SteamID, &item.Title, &item.Creator, &item.FileSize, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning workshop metadata: %w", err)
		}
		item.TimeCreated = time.Unix(created, 0)
		item.TimeUpdated = time.Unix(updated, 0)
		items[item.SteamID] = item
	}

	return items, rows.Err()
}

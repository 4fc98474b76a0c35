package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"twmm/internal/domain"
)

// LoadOrder reads the persisted load order for one game. A missing file means
// the game has never been resolved; it starts out in automatic mode.
func LoadOrder(dataDir, gameKey string) (domain.LoadOrder, error) {
	order := domain.LoadOrder{Automatic: true}

	path := filepath.Join(dataDir, fmt.Sprintf("loadorder_%s.json", gameKey))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return order, nil
		}
		return order, fmt.Errorf("reading load order: %w", err)
	}

	if err := json.Unmarshal(data, &order); err != nil {
		return domain.LoadOrder{Automatic: true}, fmt.Errorf("parsing load order %s: %w", filepath.Base(path), err)
	}

	return order, nil
}

// SaveOrder writes the load order document for one game.
func SaveOrder(dataDir, gameKey string, order domain.LoadOrder) error {
	data, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling load order: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, fmt.Sprintf("loadorder_%s.json", gameKey))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing load order: %w", err)
	}

	return nil
}

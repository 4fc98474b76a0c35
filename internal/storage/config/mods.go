package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"twmm/internal/domain"
)

// LoadGameConfig reads the mod registry document for one game. A missing file
// yields a fresh empty config; whatever is loaded is normalized before use.
func LoadGameConfig(dataDir, gameKey string) (*domain.GameConfig, error) {
	path := filepath.Join(dataDir, fmt.Sprintf("mods_%s.json", gameKey))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewGameConfig(gameKey), nil
		}
		return nil, fmt.Errorf("reading mod registry: %w", err)
	}

	cfg := &domain.GameConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing mod registry %s: %w", filepath.Base(path), err)
	}
	cfg.Game = gameKey
	cfg.Normalize()

	return cfg, nil
}

// SaveGameConfig writes the mod registry document for one game.
func SaveGameConfig(dataDir string, cfg *domain.GameConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling mod registry: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, fmt.Sprintf("mods_%s.json", cfg.Game))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing mod registry: %w", err)
	}

	return nil
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"twmm/internal/domain"
)

// profilePath returns where one profile document lives. Profiles sit in a
// per-game subtree, so ids only need to be unique within a game.
func profilePath(dataDir, gameKey, id string) string {
	return filepath.Join(dataDir, "profiles", gameKey, id+".json")
}

// SaveProfile writes one profile document, replacing any snapshot already
// saved under the same id.
func SaveProfile(dataDir string, profile *domain.Profile) error {
	if profile.ID == "" {
		return domain.ErrEmptyProfileName
	}

	path := profilePath(dataDir, profile.Game, profile.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile %q: %w", profile.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing profile %q: %w", profile.ID, err)
	}
	return nil
}

// LoadProfile reads one profile document back.
func LoadProfile(dataDir, gameKey, id string) (*domain.Profile, error) {
	data, err := os.ReadFile(profilePath(dataDir, gameKey, id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile %q: %w", id, err)
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile %q: %w", id, err)
	}
	return &profile, nil
}

// ListProfiles returns the saved profile ids for a game in sorted order. A
// game that never saved anything has no profiles directory and no profiles.
func ListProfiles(dataDir, gameKey string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dataDir, "profiles", gameKey))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}

// DeleteProfile removes one saved profile.
func DeleteProfile(dataDir, gameKey, id string) error {
	err := os.Remove(profilePath(dataDir, gameKey, id))
	if errors.Is(err, os.ErrNotExist) {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting profile %q: %w", id, err)
	}
	return nil
}

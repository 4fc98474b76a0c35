// Package config persists the application's documents: YAML settings and the
// per-game JSON documents (mod registry, load order, profiles). Missing files
// come back as usable zero values; corrupt files surface as errors.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GamePaths holds the per-game directory overrides. Anything left empty is
// derived from the Steam install when possible.
type GamePaths struct {
	InstallPath  string `yaml:"install_path"`
	SecondaryDir string `yaml:"secondary_mod_dir,omitempty"`
	ContentDir   string `yaml:"content_dir,omitempty"`
	ScriptPath   string `yaml:"script_path,omitempty"`
}

// Settings holds global application settings
type Settings struct {
	DefaultGame string                `yaml:"default_game,omitempty"`
	SteamRoot   string                `yaml:"steam_root,omitempty"`
	Games       map[string]*GamePaths `yaml:"games"`
}

// LoadSettings reads settings from the given directory
func LoadSettings(configDir string) (*Settings, error) {
	s := &Settings{
		Games: make(map[string]*GamePaths),
	}

	settingsPath := filepath.Join(configDir, "settings.yaml")
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil // Return defaults
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	if s.Games == nil {
		s.Games = make(map[string]*GamePaths)
	}
	s.SteamRoot = expandPath(s.SteamRoot)
	for _, gp := range s.Games {
		gp.InstallPath = expandPath(gp.InstallPath)
		gp.SecondaryDir = expandPath(gp.SecondaryDir)
		gp.ContentDir = expandPath(gp.ContentDir)
		gp.ScriptPath = expandPath(gp.ScriptPath)
	}

	return s, nil
}

// Save writes settings to the given directory
func (s *Settings) Save(configDir string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	settingsPath := filepath.Join(configDir, "settings.yaml")
	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}

// Game returns the path overrides for one game, creating the entry so callers
// can assign through it before saving.
func (s *Settings) Game(key string) *GamePaths {
	if s.Games == nil {
		s.Games = make(map[string]*GamePaths)
	}
	gp, ok := s.Games[key]
	if !ok {
		gp = &GamePaths{}
		s.Games[key] = gp
	}
	return gp
}

// expandPath expands a leading ~ to the user's home directory
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

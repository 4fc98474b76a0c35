// Package extract manages the on-disk tree of files pulled out of the
// resolved packs. The tree is a derived artifact: it is wiped and repopulated
// on every resolve, so downstream tooling always sees exactly the winning
// file versions of the current load order.
package extract

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"twmm/internal/pack"
)

// Tree manages the extraction tree rooted at basePath
type Tree struct {
	basePath string
}

// New creates a new extraction tree manager
func New(basePath string) *Tree {
	return &Tree{basePath: basePath}
}

// GamePath returns the extraction directory for one game
func (t *Tree) GamePath(gameKey string) string {
	return filepath.Join(t.basePath, gameKey)
}

// Rebuild wipes the game's extraction directory and repopulates it from the
// given packs in order. When several packs carry the same file, the last one
// wins, matching the engine's load semantics.
func (t *Tree) Rebuild(gameKey string, packs []*pack.Pack) error {
	gamePath := t.GamePath(gameKey)
	if err := os.RemoveAll(gamePath); err != nil {
		return fmt.Errorf("wiping extraction tree: %w", err)
	}
	if err := os.MkdirAll(gamePath, 0755); err != nil {
		return fmt.Errorf("creating extraction tree: %w", err)
	}

	for _, p := range packs {
		if p == nil {
			continue
		}
		for name, content := range p.Files {
			fullPath := filepath.Join(gamePath, filepath.FromSlash(name))
			if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				return fmt.Errorf("creating extraction dir: %w", err)
			}
			if err := os.WriteFile(fullPath, content, 0644); err != nil {
				return fmt.Errorf("writing extracted file %s: %w", name, err)
			}
		}
	}

	return nil
}

// ListFiles returns the relative paths of all extracted files for a game,
// sorted.
func (t *Tree) ListFiles(gameKey string) ([]string, error) {
	gamePath := t.GamePath(gameKey)
	if _, err := os.Stat(gamePath); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(gamePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(gamePath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing extracted files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Wipe removes a game's extraction directory entirely
func (t *Tree) Wipe(gameKey string) error {
	if err := os.RemoveAll(t.GamePath(gameKey)); err != nil {
		return fmt.Errorf("wiping extraction tree: %w", err)
	}
	return nil
}

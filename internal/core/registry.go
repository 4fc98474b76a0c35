package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"twmm/internal/domain"
)

// RefreshOptions controls a registry rescan.
type RefreshOptions struct {
	// SkipNetwork suppresses the asynchronous workshop metadata refresh.
	// Cached metadata is still applied.
	SkipNetwork bool
}

// discovered is one mod id found on disk during a scan, with every copy in
// location-priority order (data, then secondary, then workshop content).
type discovered struct {
	paths   []domain.ModPath
	steamID string
}

// RefreshMods rescans the install locations and reconciles the registry:
// newly found mods land in the default category, mods with no remaining copy
// are dropped, existing mods keep their checkbox and category. It does not
// touch the load order; callers resolve afterwards.
//
// Unless skipped, a metadata refresh is started in the background and its
// result delivered on the returned channel; nil means no refresh was started.
// The caller may ignore the channel entirely.
func (s *Session) RefreshMods(ctx context.Context, opts RefreshOptions) (<-chan MetadataResult, error) {
	found, err := s.scanLocations()
	if err != nil {
		return nil, err
	}

	// Classify new packs before taking the write lock; opens are file I/O.
	s.cfgMu.RLock()
	types := make(map[string]domain.PackType, len(found))
	for id := range found {
		if m, ok := s.cfg.Mods[id]; ok {
			types[id] = m.PackType
		}
	}
	s.cfgMu.RUnlock()
	for id, d := range found {
		if _, ok := types[id]; !ok {
			types[id] = s.classifyPack(d.paths[0].Path)
		}
	}

	s.cfgMu.Lock()
	var added, removed int
	for id, d := range found {
		if m, ok := s.cfg.Mods[id]; ok {
			m.Paths = d.paths
			m.PackType = types[id]
			if d.steamID != "" {
				m.SteamID = d.steamID
			}
			continue
		}
		s.cfg.InsertMod(&domain.Mod{
			ID:       id,
			Name:     id,
			Paths:    d.paths,
			PackType: types[id],
			SteamID:  d.steamID,
		})
		added++
	}
	var gone []string
	for id := range s.cfg.Mods {
		if _, ok := found[id]; !ok {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		s.cfg.RemoveMod(id)
		removed++
	}
	s.cfgMu.Unlock()

	s.logger.Info("mod scan complete",
		zap.String("game", s.game.Key),
		zap.Int("known", len(found)),
		zap.Int("added", added),
		zap.Int("removed", removed))

	// Stale metadata is better than none; the network result, if any,
	// arrives later on the channel.
	s.applyCachedMetadata()

	if opts.SkipNetwork || s.provider == nil {
		return nil, nil
	}
	var steamIDs []string
	for _, d := range found {
		if d.steamID != "" {
			steamIDs = append(steamIDs, d.steamID)
		}
	}
	if len(steamIDs) == 0 {
		return nil, nil
	}
	return s.refreshMetadata(ctx, steamIDs), nil
}

// scanLocations walks the three recognized install locations. The content
// directory is only consulted for titles that can load packs from it.
func (s *Session) scanLocations() (map[string]*discovered, error) {
	dataDir := s.DataPath()
	secondaryDir := s.SecondaryPath()
	contentDir := ""
	if s.game.SupportsContentLoading {
		contentDir = s.ContentPath()
	}
	if dataDir == "" && secondaryDir == "" && contentDir == "" {
		return nil, domain.ErrGameNotInstalled
	}

	found := make(map[string]*discovered)
	add := func(id, path string, loc domain.Location, steamID string) {
		d, ok := found[id]
		if !ok {
			d = &discovered{}
			found[id] = d
		}
		d.paths = append(d.paths, domain.ModPath{Path: path, Location: loc})
		if steamID != "" {
			d.steamID = steamID
		}
	}

	for _, dir := range []struct {
		path string
		loc  domain.Location
	}{
		{dataDir, domain.LocationData},
		{secondaryDir, domain.LocationSecondary},
	} {
		if dir.path == "" {
			continue
		}
		entries, err := os.ReadDir(dir.path)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".pack") {
				continue
			}
			add(e.Name(), filepath.Join(dir.path, e.Name()), dir.loc, "")
		}
	}

	if contentDir != "" {
		items, err := os.ReadDir(contentDir)
		if err == nil {
			for _, item := range items {
				if !item.IsDir() {
					continue
				}
				itemID := item.Name()
				itemDir := filepath.Join(contentDir, itemID)
				entries, err := os.ReadDir(itemDir)
				if err != nil {
					continue
				}
				for _, e := range entries {
					if e.IsDir() {
						continue
					}
					switch {
					case strings.HasSuffix(e.Name(), ".pack"):
						add(e.Name(), filepath.Join(itemDir, e.Name()), domain.LocationContent, itemID)
					case strings.HasSuffix(e.Name(), ".bin"):
						// Legacy binary-wrapped upload; the workshop item id
						// is the only stable identity it has.
						add(itemID+".bin", filepath.Join(itemDir, e.Name()), domain.LocationContent, itemID)
					}
				}
			}
		}
	}

	return found, nil
}

// classifyPack reads the container header to determine the pack type.
// Wrapped legacy uploads and unreadable packs default to the mod type.
func (s *Session) classifyPack(path string) domain.PackType {
	if strings.HasSuffix(path, ".bin") {
		return domain.PackMod
	}
	p, err := s.opener.Open(path)
	if err != nil {
		s.logger.Debug("pack classification failed", zap.String("path", path), zap.Error(err))
		return domain.PackMod
	}
	return p.Type
}

// SetModEnabled flips a mod's checkbox. The change takes effect on the next
// resolve.
func (s *Session) SetModEnabled(id string, enabled bool) error {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.cfg.SetChecked(id, enabled)
}

// CreateCategory adds a new category.
func (s *Session) CreateCategory(name string) error {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.cfg.CreateCategory(name)
}

// RenameCategory renames a category, keeping its members and position.
func (s *Session) RenameCategory(oldName, newName string) error {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.cfg.RenameCategory(oldName, newName)
}

// DeleteCategory removes a category; members move to the default category.
func (s *Session) DeleteCategory(name string) error {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.cfg.DeleteCategory(name)
}

// MoveModToCategory reassigns one mod to another category.
func (s *Session) MoveModToCategory(id, category string) error {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	return s.cfg.MoveToCategory(id, category)
}
